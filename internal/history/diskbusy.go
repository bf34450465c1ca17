package history

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskBusySampler turns the kernel's cumulative io-time counter for one
// device into a busy percentage over the interval between calls.
type DiskBusySampler struct {
	device string

	ioCounters func(names ...string) (map[string]disk.IOCountersStat, error)
	now        func() time.Time

	prevIoTimeMs uint64
	prevAt       time.Time
	initialized  bool
}

// NewDiskBusySampler resolves the block device backing mountPoint. An
// unresolvable mount still yields a working sampler that always reports
// absent.
func NewDiskBusySampler(mountPoint string) *DiskBusySampler {
	return &DiskBusySampler{
		device:     deviceForMount(mountPoint),
		ioCounters: disk.IOCounters,
		now:        time.Now,
	}
}

// Sample reports the fraction of wall time the device spent with I/O in
// flight since the previous call. The first call only baselines.
func (s *DiskBusySampler) Sample() *float64 {
	if s.device == "" {
		return nil
	}
	counters, err := s.ioCounters(s.device)
	if err != nil {
		return nil
	}
	stat, ok := counters[s.device]
	if !ok {
		return nil
	}

	at := s.now()
	defer func() {
		s.prevIoTimeMs = stat.IoTime
		s.prevAt = at
		s.initialized = true
	}()

	if !s.initialized || stat.IoTime < s.prevIoTimeMs {
		return nil
	}
	elapsedMs := float64(at.Sub(s.prevAt)) / float64(time.Millisecond)
	if elapsedMs <= 0 {
		return nil
	}
	busy := 100 * float64(stat.IoTime-s.prevIoTimeMs) / elapsedMs
	if busy < 0 {
		busy = 0
	}
	if busy > 100 {
		busy = 100
	}
	return &busy
}

// deviceForMount maps a mount point to its backing device name, with
// partitions collapsed to the whole disk so the busy figure covers the
// drive rather than one slice of it.
func deviceForMount(mountPoint string) string {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return ""
	}
	for _, p := range partitions {
		if p.Mountpoint != mountPoint {
			continue
		}
		return trimPartitionSuffix(filepath.Base(p.Device))
	}
	return ""
}

// trimPartitionSuffix strips the partition number: nvme0n1p2 becomes
// nvme0n1, sda3 becomes sda. Device names without a recognizable
// partition suffix pass through unchanged.
func trimPartitionSuffix(name string) string {
	if strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk") {
		if idx := strings.LastIndexByte(name, 'p'); idx > 0 && name[idx+1:] != "" && allDigits(name[idx+1:]) {
			return name[:idx]
		}
		return name
	}
	trimmed := strings.TrimRight(name, "0123456789")
	if trimmed == "" {
		return name
	}
	return trimmed
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
