package gpu

import (
	"log/slog"

	"sysglance/internal/readers"
	"sysglance/internal/sensors"
)

// Collector runs both discovery paths and merges their results.
type Collector struct {
	SysfsRoot string
	NvidiaSMI string
	Run       readers.CommandRunner
	Sensors   *sensors.Cache
	Logger    *slog.Logger
}

// Collect returns the reconciled device list for one sampling tick.
func (c *Collector) Collect() []Metrics {
	vendor := CollectNvidiaSMI(c.NvidiaSMI, c.Run)

	sysfsCollector := SysfsCollector{Root: c.SysfsRoot, Sensors: c.Sensors, Logger: c.Logger}
	sysfs := sysfsCollector.Collect()

	var fallbackPower *float64
	if len(vendor) > 0 && c.Sensors != nil {
		fallbackPower = c.Sensors.Read().GPUPowerW
	}

	merged := Merge(vendor, sysfs, fallbackPower)
	if c.Logger != nil {
		c.Logger.Debug("gpu collection complete",
			"vendor", len(vendor), "sysfs", len(sysfs), "merged", len(merged))
	}
	return merged
}
