package ui

import "fmt"

const notAvailable = "N/A"

// formatPercent renders an optional percentage to one decimal place.
func formatPercent(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.1f%%", *value)
}

// formatTemperature renders an optional Celsius reading.
func formatTemperature(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.0f°C", *value)
}

// formatFrequency renders MHz, switching to GHz from 1000 MHz up.
func formatFrequency(mhz *float64) string {
	if mhz == nil {
		return notAvailable
	}
	if *mhz >= 1000 {
		return fmt.Sprintf("%.2f GHz", *mhz/1000)
	}
	return fmt.Sprintf("%.0f MHz", *mhz)
}

// formatPower renders watts to one decimal place.
func formatPower(watts *float64) string {
	if watts == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.1f W", *watts)
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(bytes *uint64) string {
	if bytes == nil {
		return notAvailable
	}
	value := float64(*bytes)
	for _, unit := range []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"} {
		if value < 1024 || unit == "PiB" {
			if unit == "B" {
				return fmt.Sprintf("%.0f %s", value, unit)
			}
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return notAvailable
}

// formatKB renders a kilobyte count with a binary unit suffix.
func formatKB(kb *int64) string {
	if kb == nil || *kb < 0 {
		return notAvailable
	}
	bytes := uint64(*kb) * 1024
	return formatBytes(&bytes)
}

// formatMiB renders a mebibyte figure, switching to GiB from 1024 up.
func formatMiB(mib *float64) string {
	if mib == nil {
		return notAvailable
	}
	if *mib >= 1024 {
		return fmt.Sprintf("%.1f GiB", *mib/1024)
	}
	return fmt.Sprintf("%.0f MiB", *mib)
}

// formatTopology renders "8C / 16T" from the optional core/thread counts.
func formatTopology(cores, threads *int) string {
	if cores == nil && threads == nil {
		return notAvailable
	}
	c, t := notAvailable, notAvailable
	if cores != nil {
		c = fmt.Sprintf("%dC", *cores)
	}
	if threads != nil {
		t = fmt.Sprintf("%dT", *threads)
	}
	return c + " / " + t
}

// formatInUse renders the tri-state card activity flag.
func formatInUse(inUse *bool) string {
	switch {
	case inUse == nil:
		return "unknown"
	case *inUse:
		return "yes"
	default:
		return "no"
	}
}
