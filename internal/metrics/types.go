// Package metrics assembles best-effort host telemetry snapshots. Every
// numeric field on a record is independently optional: nil means the
// value could not be determined this sample, and consumers render it as
// N/A rather than zero.
package metrics

import "sysglance/internal/gpu"

// CPU describes the processor. Name is always present and defaults to
// "Unknown CPU".
type CPU struct {
	Name         string   `json:"name"`
	TotalCores   *int     `json:"total_cores"`
	TotalThreads *int     `json:"total_threads"`
	TemperatureC *float64 `json:"temperature_c"`
	FrequencyMHz *float64 `json:"frequency_mhz"`
	UsagePercent *float64 `json:"usage_percent"`
}

// RAM carries the memory totals; usage percent is derived, not stored.
type RAM struct {
	TotalKB     *int64 `json:"total_kb"`
	AvailableKB *int64 `json:"available_kb"`
}

// Disk carries capacity figures for a single mount point.
type Disk struct {
	MountPoint string  `json:"mount_point"`
	TotalBytes *uint64 `json:"total_bytes"`
	FreeBytes  *uint64 `json:"free_bytes"`
}

// Snapshot is one consistent cross-domain reading taken at a single
// instant. GPU order is significant: see gpu.PickDisplayIndex.
type Snapshot struct {
	CPU  CPU
	RAM  RAM
	Disk Disk
	GPUs []gpu.Metrics
}

func ptr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}
