package metrics

import (
	"log/slog"

	"sysglance/internal/gpu"
)

// Collector assembles full-system snapshots. It owns the CPU usage
// tracker, the only cross-tick state in the package; everything else is
// recomputed from scratch each call.
type Collector struct {
	ProcRoot   string
	SysfsRoot  string
	MountPoint string
	GPU        *gpu.Collector
	Logger     *slog.Logger

	usage UsageTracker
}

// Snapshot collects one reading from every domain. It never fails: each
// field degrades to absent independently.
func (c *Collector) Snapshot() Snapshot {
	snapshot := Snapshot{
		CPU:  collectCPU(c.procRoot(), c.sysfsRoot(), &c.usage),
		RAM:  collectRAM(),
		Disk: collectDisk(c.MountPoint),
	}
	if c.GPU != nil {
		snapshot.GPUs = c.GPU.Collect()
	}
	if c.Logger != nil {
		c.Logger.Debug("snapshot collected", "gpus", len(snapshot.GPUs))
	}
	return snapshot
}

func (c *Collector) procRoot() string {
	if c.ProcRoot == "" {
		return "/proc"
	}
	return c.ProcRoot
}

func (c *Collector) sysfsRoot() string {
	if c.SysfsRoot == "" {
		return "/sys"
	}
	return c.SysfsRoot
}
