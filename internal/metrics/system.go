package metrics

import (
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// collectRAM queries the system memory totals. Both fields stay absent
// when the query fails; consumers must not treat that as zero.
func collectRAM() RAM {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Total == 0 {
		return RAM{}
	}
	total := int64(vm.Total / 1024)
	available := int64(vm.Available / 1024)
	return RAM{TotalKB: &total, AvailableKB: &available}
}

// collectDisk queries filesystem capacity for the mount point.
func collectDisk(mountPoint string) Disk {
	if mountPoint == "" {
		mountPoint = "/"
	}
	result := Disk{MountPoint: mountPoint}

	usage, err := disk.Usage(mountPoint)
	if err != nil || usage == nil {
		return result
	}
	total := usage.Total
	free := usage.Free
	result.TotalBytes = &total
	result.FreeBytes = &free
	return result
}
