package metrics

import "sysglance/internal/gpu"

// ClampPercent pins a value into the displayable [0, 100] range.
func ClampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// RAMUsagePercent derives used memory percent from the totals, or nil
// when the totals are unavailable.
func RAMUsagePercent(s Snapshot) *float64 {
	if s.RAM.TotalKB == nil || s.RAM.AvailableKB == nil || *s.RAM.TotalKB <= 0 {
		return nil
	}
	available := *s.RAM.AvailableKB
	if available < 0 {
		available = 0
	}
	used := *s.RAM.TotalKB - available
	if used < 0 {
		used = 0
	}
	return ptr(100 * float64(used) / float64(*s.RAM.TotalKB))
}

// GPUUsagePercent reports utilization of the display GPU.
func GPUUsagePercent(s Snapshot) *float64 {
	if len(s.GPUs) == 0 {
		return nil
	}
	return s.GPUs[gpu.PickDisplayIndex(s.GPUs)].UtilizationPercent
}

// GPUVRAMPercent reports VRAM utilization of the display GPU, deriving
// it from the memory pair when the direct figure is absent.
func GPUVRAMPercent(s Snapshot) *float64 {
	if len(s.GPUs) == 0 {
		return nil
	}
	m := s.GPUs[gpu.PickDisplayIndex(s.GPUs)]
	if m.MemoryUtilizationPercent != nil {
		return m.MemoryUtilizationPercent
	}
	if m.MemoryUsedMiB != nil && m.MemoryTotalMiB != nil && *m.MemoryTotalMiB > 0 {
		return ptr(100 * *m.MemoryUsedMiB / *m.MemoryTotalMiB)
	}
	return nil
}

// DiskUsagePercent reports used capacity percent of the snapshot's mount.
func DiskUsagePercent(s Snapshot) *float64 {
	if s.Disk.TotalBytes == nil || s.Disk.FreeBytes == nil || *s.Disk.TotalBytes == 0 {
		return nil
	}
	total := *s.Disk.TotalBytes
	free := *s.Disk.FreeBytes
	if free > total {
		free = total
	}
	used := total - free
	return ptr(100 * float64(used) / float64(total))
}
