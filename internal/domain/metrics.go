package domain

import "time"

// Form keys of a status report, shared by the agent encoder and the
// receiver decoder.
const (
	FieldMachineID       = "machine_id"
	FieldName            = "name"
	FieldSystem          = "system"
	FieldLocation        = "location"
	FieldUptime          = "uptime"
	FieldCPUPercent      = "cpu_percent"
	FieldNetTx           = "net_tx"
	FieldNetRx           = "net_rx"
	FieldDisksTotalKB    = "disks_total_kb"
	FieldDisksAvailKB    = "disks_avail_kb"
	FieldCPUNumCores     = "cpu_num_cores"
	FieldMemTotal        = "mem_total"
	FieldMemFree         = "mem_free"
	FieldMemUsed         = "mem_used"
	FieldSwapTotal       = "swap_total"
	FieldSwapFree        = "swap_free"
	FieldProcessCount    = "process_count"
	FieldConnectionCount = "connection_count"
)

const (
	DefaultName     = "未命名"
	DefaultLocation = "未知"
)

// Snapshot is one sampling cycle. Memory values are MiB, disk values KiB and
// network values cumulative bytes since boot.
type Snapshot struct {
	MachineID string `json:"machine_id"`
	Name      string `json:"name"`
	System    string `json:"system"`
	Location  string `json:"location"`

	UptimeSeconds uint64  `json:"uptime"`
	CPUPercent    float64 `json:"cpu_percent"`
	CPUNumCores   int     `json:"cpu_num_cores"`

	NetTxBytes uint64 `json:"net_tx"`
	NetRxBytes uint64 `json:"net_rx"`

	DisksTotalKB uint64 `json:"disks_total_kb"`
	DisksAvailKB uint64 `json:"disks_avail_kb"`

	MemTotalMiB  float64 `json:"mem_total"`
	MemFreeMiB   float64 `json:"mem_free"`
	MemUsedMiB   float64 `json:"mem_used"`
	SwapTotalMiB float64 `json:"swap_total"`
	SwapFreeMiB  float64 `json:"swap_free"`

	ProcessCount    int `json:"process_count"`
	ConnectionCount int `json:"connection_count"`

	CollectedAt time.Time `json:"-"`
}
