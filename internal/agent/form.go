package agent

import (
	"net/url"
	"strconv"

	"kunlun/internal/domain"
)

// EncodeSnapshot renders a snapshot as the form body the receiver expects.
// CPU percent carries two decimals, memory values one.
func EncodeSnapshot(s domain.Snapshot) url.Values {
	v := url.Values{}
	v.Set(domain.FieldMachineID, s.MachineID)
	v.Set(domain.FieldName, s.Name)
	v.Set(domain.FieldSystem, s.System)
	v.Set(domain.FieldLocation, s.Location)
	v.Set(domain.FieldUptime, strconv.FormatUint(s.UptimeSeconds, 10))
	v.Set(domain.FieldCPUPercent, strconv.FormatFloat(s.CPUPercent, 'f', 2, 64))
	v.Set(domain.FieldNetTx, strconv.FormatUint(s.NetTxBytes, 10))
	v.Set(domain.FieldNetRx, strconv.FormatUint(s.NetRxBytes, 10))
	v.Set(domain.FieldDisksTotalKB, strconv.FormatUint(s.DisksTotalKB, 10))
	v.Set(domain.FieldDisksAvailKB, strconv.FormatUint(s.DisksAvailKB, 10))
	v.Set(domain.FieldCPUNumCores, strconv.Itoa(s.CPUNumCores))
	v.Set(domain.FieldMemTotal, formatMiB(s.MemTotalMiB))
	v.Set(domain.FieldMemFree, formatMiB(s.MemFreeMiB))
	v.Set(domain.FieldMemUsed, formatMiB(s.MemUsedMiB))
	v.Set(domain.FieldSwapTotal, formatMiB(s.SwapTotalMiB))
	v.Set(domain.FieldSwapFree, formatMiB(s.SwapFreeMiB))
	v.Set(domain.FieldProcessCount, strconv.Itoa(s.ProcessCount))
	v.Set(domain.FieldConnectionCount, strconv.Itoa(s.ConnectionCount))
	return v
}

func formatMiB(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
