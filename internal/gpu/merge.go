package gpu

import "strings"

// Merge reconciles the vendor-tool and sysfs discovery results. When the
// vendor tool saw at least one device it is authoritative for identity;
// each of its records is supplemented from at most one sysfs record,
// preferring sysfs entries that look NVIDIA, then any unmatched entry in
// order. Supplementation only fills absent fields. Sysfs records the
// merge never consumed are appended as independent entries.
//
// The pairing is positional best-effort, not identity matching: when the
// two sources disagree on device count the outcome depends on
// enumeration order.
func Merge(vendor, sysfs []Metrics, fallbackPower *float64) []Metrics {
	if len(vendor) == 0 {
		return sysfs
	}

	merged := make([]Metrics, len(vendor))
	copy(merged, vendor)

	consumed := make([]bool, len(sysfs))
	for i := range merged {
		idx := pickSupplement(sysfs, consumed)
		if idx < 0 {
			break
		}
		consumed[idx] = true
		supplement(&merged[i], sysfs[idx])
	}

	for i := range merged {
		if merged[i].PowerW == nil {
			merged[i].PowerW = fallbackPower
		}
		deriveMemoryUtilization(&merged[i])
	}

	for j, used := range consumed {
		if !used {
			merged = append(merged, sysfs[j])
		}
	}

	sortByScore(merged)
	return merged
}

func pickSupplement(sysfs []Metrics, consumed []bool) int {
	for j, m := range sysfs {
		if !consumed[j] && mentionsNvidia(m) {
			return j
		}
	}
	for j := range sysfs {
		if !consumed[j] {
			return j
		}
	}
	return -1
}

func supplement(base *Metrics, extra Metrics) {
	if base.TemperatureC == nil {
		base.TemperatureC = extra.TemperatureC
	}
	if base.CoreClockMHz == nil {
		base.CoreClockMHz = extra.CoreClockMHz
	}
	if base.UtilizationPercent == nil {
		base.UtilizationPercent = extra.UtilizationPercent
	}
	if base.PowerW == nil {
		base.PowerW = extra.PowerW
	}
	if base.MemoryUsedMiB == nil {
		base.MemoryUsedMiB = extra.MemoryUsedMiB
	}
	if base.MemoryTotalMiB == nil {
		base.MemoryTotalMiB = extra.MemoryTotalMiB
	}
	if base.MemoryUtilizationPercent == nil {
		base.MemoryUtilizationPercent = extra.MemoryUtilizationPercent
	}
	if base.InUse == nil {
		base.InUse = extra.InUse
	}
}

func mentionsNvidia(m Metrics) bool {
	return strings.Contains(strings.ToLower(m.Name), "nvidia") ||
		strings.Contains(strings.ToLower(m.Source), "nvidia")
}
