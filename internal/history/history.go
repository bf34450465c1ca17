// Package history accumulates per-metric time series for the trend
// chart. Absent samples repeat the previous value so every series stays
// aligned tick for tick.
package history

import (
	"sysglance/internal/metrics"
)

// DefaultMaxPoints bounds each series when the caller passes no limit.
const DefaultMaxPoints = 2048

// History holds one ring of samples per charted metric. All series grow
// in lockstep: every Update appends exactly one point to each.
type History struct {
	CPUUsage       []float64
	CPUTemperature []float64
	RAMUsage       []float64
	GPUUsage       []float64
	VRAMUsage      []float64
	DiskBusy       []float64
}

// Update appends the derivable percentages of snap to every series,
// trimming each to maxPoints. A non-positive maxPoints is a no-op.
// diskBusy comes from a separate sampler because the snapshot carries
// capacity, not activity; when the sampler has nothing the series falls
// back to the static capacity percent.
func (h *History) Update(snap metrics.Snapshot, maxPoints int, diskBusy *float64) {
	if maxPoints <= 0 {
		return
	}
	disk := diskBusy
	if disk == nil {
		disk = metrics.DiskUsagePercent(snap)
	}
	h.CPUUsage = appendValue(h.CPUUsage, snap.CPU.UsagePercent, maxPoints)
	h.CPUTemperature = appendValue(h.CPUTemperature, snap.CPU.TemperatureC, maxPoints)
	h.RAMUsage = appendValue(h.RAMUsage, metrics.RAMUsagePercent(snap), maxPoints)
	h.GPUUsage = appendValue(h.GPUUsage, metrics.GPUUsagePercent(snap), maxPoints)
	h.VRAMUsage = appendValue(h.VRAMUsage, metrics.GPUVRAMPercent(snap), maxPoints)
	h.DiskBusy = appendValue(h.DiskBusy, disk, maxPoints)
}

// appendValue pushes one sample onto series. A nil sample carries the
// last value forward, or 0 when the series is still empty. Values clamp
// to [0, 100] and the oldest points fall off past maxPoints.
func appendValue(series []float64, sample *float64, maxPoints int) []float64 {
	value := 0.0
	switch {
	case sample != nil:
		value = metrics.ClampPercent(*sample)
	case len(series) > 0:
		value = series[len(series)-1]
	}
	series = append(series, value)
	if excess := len(series) - maxPoints; excess > 0 {
		series = series[excess:]
	}
	return series
}
