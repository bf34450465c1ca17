// Package gpu discovers graphics devices from a vendor CLI and from the
// DRM sysfs tree, and reconciles the two sources into one ranked list.
package gpu

import "sort"

// Metrics is one device's telemetry. Every numeric field is independently
// optional: nil means the value could not be determined this sample.
type Metrics struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	InUse  *bool  `json:"in_use"`

	TemperatureC             *float64 `json:"temperature_c"`
	CoreClockMHz             *float64 `json:"core_clock_mhz"`
	UtilizationPercent       *float64 `json:"utilization_percent"`
	PowerW                   *float64 `json:"power_w"`
	MemoryUsedMiB            *float64 `json:"memory_used_mib"`
	MemoryTotalMiB           *float64 `json:"memory_total_mib"`
	MemoryUtilizationPercent *float64 `json:"memory_utilization_percent"`
}

// Score weighs how much telemetry a record carries. Utilization is the
// strongest signal; the memory pair counts once.
func Score(m Metrics) int {
	score := 0
	if m.UtilizationPercent != nil {
		score += 3
	}
	if m.TemperatureC != nil {
		score += 2
	}
	if m.CoreClockMHz != nil {
		score += 2
	}
	if m.PowerW != nil {
		score += 2
	}
	if m.MemoryUsedMiB != nil && m.MemoryTotalMiB != nil {
		score += 2
	}
	if m.MemoryUtilizationPercent != nil {
		score += 1
	}
	return score
}

// HasTelemetry reports whether the record carries any measurement at all.
func HasTelemetry(m Metrics) bool {
	return m.TemperatureC != nil || m.CoreClockMHz != nil || m.UtilizationPercent != nil ||
		m.PowerW != nil || m.MemoryUsedMiB != nil || m.MemoryTotalMiB != nil ||
		m.MemoryUtilizationPercent != nil
}

func sortByScore(list []Metrics) {
	sort.SliceStable(list, func(i, j int) bool {
		si, sj := Score(list[i]), Score(list[j])
		if si != sj {
			return si > sj
		}
		return list[i].Name < list[j].Name
	})
}

func deriveMemoryUtilization(m *Metrics) {
	if m.MemoryUtilizationPercent != nil {
		return
	}
	if m.MemoryUsedMiB == nil || m.MemoryTotalMiB == nil || *m.MemoryTotalMiB <= 0 {
		return
	}
	util := 100 * *m.MemoryUsedMiB / *m.MemoryTotalMiB
	m.MemoryUtilizationPercent = &util
}

func ptr(value float64) *float64 {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}
