package metrics

import (
	"testing"

	"sysglance/internal/gpu"
)

func int64Ptr(v int64) *int64 { return &v }

func uint64Ptr(v uint64) *uint64 { return &v }

func TestClampPercent(t *testing.T) {
	t.Parallel()

	if got := ClampPercent(-3); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ClampPercent(101.5); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := ClampPercent(42.5); got != 42.5 {
		t.Fatalf("expected 42.5, got %v", got)
	}
}

func TestRAMUsagePercent(t *testing.T) {
	t.Parallel()

	s := Snapshot{RAM: RAM{TotalKB: int64Ptr(1000), AvailableKB: int64Ptr(400)}}
	assertFloat(t, RAMUsagePercent(s), 60)

	zero := Snapshot{RAM: RAM{TotalKB: int64Ptr(0), AvailableKB: int64Ptr(0)}}
	if got := RAMUsagePercent(zero); got != nil {
		t.Fatalf("zero total should yield nil, got %v", *got)
	}

	if got := RAMUsagePercent(Snapshot{}); got != nil {
		t.Fatalf("absent totals should yield nil, got %v", *got)
	}
}

func TestGPUPercentsUseDisplayGPU(t *testing.T) {
	t.Parallel()

	s := Snapshot{GPUs: []gpu.Metrics{
		{Name: "AMD Radeon RX 6600", Source: "sysfs/amdgpu"},
		{
			Name:                     "Intel UHD Graphics",
			Source:                   "sysfs/i915",
			UtilizationPercent:       ptr(37),
			MemoryUsedMiB:            ptr(512),
			MemoryTotalMiB:           ptr(2048),
			MemoryUtilizationPercent: ptr(25),
		},
	}}

	assertFloat(t, GPUUsagePercent(s), 37)
	assertFloat(t, GPUVRAMPercent(s), 25)
}

func TestGPUVRAMPercentDerivedFromPair(t *testing.T) {
	t.Parallel()

	s := Snapshot{GPUs: []gpu.Metrics{{
		Name:           "NVIDIA GeForce RTX 3060",
		Source:         "nvidia-smi",
		MemoryUsedMiB:  ptr(3072),
		MemoryTotalMiB: ptr(12288),
	}}}
	assertFloat(t, GPUVRAMPercent(s), 25)

	if got := GPUUsagePercent(Snapshot{}); got != nil {
		t.Fatalf("no GPUs should yield nil, got %v", *got)
	}
}

func TestDiskUsagePercent(t *testing.T) {
	t.Parallel()

	s := Snapshot{Disk: Disk{MountPoint: "/", TotalBytes: uint64Ptr(1000), FreeBytes: uint64Ptr(250)}}
	assertFloat(t, DiskUsagePercent(s), 75)

	// Free space over-reporting must not underflow the unsigned math.
	weird := Snapshot{Disk: Disk{TotalBytes: uint64Ptr(100), FreeBytes: uint64Ptr(150)}}
	assertFloat(t, DiskUsagePercent(weird), 0)

	if got := DiskUsagePercent(Snapshot{}); got != nil {
		t.Fatalf("absent totals should yield nil, got %v", *got)
	}
}
