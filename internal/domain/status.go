package domain

import (
	"context"
	"time"
)

// StatusReport is a report as received, before sanitizing. Pointer fields
// distinguish an absent key from an empty value.
type StatusReport struct {
	MachineID *string `form:"machine_id" validate:"required,min=1"`
	Name      *string `form:"name" validate:"required"`
	System    *string `form:"system" validate:"required"`
	Uptime    *string `form:"uptime" validate:"required"`

	Location        string `form:"location"`
	CPUPercent      string `form:"cpu_percent"`
	NetTx           string `form:"net_tx"`
	NetRx           string `form:"net_rx"`
	DisksTotalKB    string `form:"disks_total_kb"`
	DisksAvailKB    string `form:"disks_avail_kb"`
	CPUNumCores     string `form:"cpu_num_cores"`
	MemTotal        string `form:"mem_total"`
	MemFree         string `form:"mem_free"`
	MemUsed         string `form:"mem_used"`
	SwapTotal       string `form:"swap_total"`
	SwapFree        string `form:"swap_free"`
	ProcessCount    string `form:"process_count"`
	ConnectionCount string `form:"connection_count"`
}

type Client struct {
	ID        int64  `json:"id"`
	MachineID string `json:"machine_id"`
	Name      string `json:"name"`
}

// Status is a stored report.
type Status struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"client_id"`
	MachineID  string `json:"machine_id"`
	InsertedAt int64  `json:"insert_utc_ts"`

	Name     string `json:"name"`
	System   string `json:"system"`
	Location string `json:"location"`

	Uptime          int64   `json:"uptime"`
	CPUPercent      float64 `json:"cpu_percent"`
	NetTx           int64   `json:"net_tx"`
	NetRx           int64   `json:"net_rx"`
	DisksTotalKB    int64   `json:"disks_total_kb"`
	DisksAvailKB    int64   `json:"disks_avail_kb"`
	CPUNumCores     int64   `json:"cpu_num_cores"`
	MemTotal        float64 `json:"mem_total"`
	MemFree         float64 `json:"mem_free"`
	MemUsed         float64 `json:"mem_used"`
	SwapTotal       float64 `json:"swap_total"`
	SwapFree        float64 `json:"swap_free"`
	ProcessCount    int64   `json:"process_count"`
	ConnectionCount int64   `json:"connection_count"`
}

type IngestResult struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type StatusService interface {
	Ingest(ctx context.Context, report StatusReport) (*IngestResult, error)
	Latest(ctx context.Context) ([]Status, error)
	Cleanup(ctx context.Context, maxAge time.Duration) (int64, error)
}

type StatusRepository interface {
	UpsertClient(ctx context.Context, machineID, name string) (int64, error)
	Insert(ctx context.Context, s *Status) error
	Latest(ctx context.Context) ([]Status, error)
	Prune(ctx context.Context, keep int) error
	DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error)
}
