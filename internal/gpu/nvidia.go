package gpu

import (
	"strings"

	"sysglance/internal/readers"
)

// DefaultNvidiaSMI is the vendor query tool invoked when no override is
// configured.
const DefaultNvidiaSMI = "nvidia-smi"

const nvidiaQueryFields = "name,temperature.gpu,clocks.sm,utilization.gpu,power.draw,memory.used,memory.total"

// CollectNvidiaSMI queries the vendor CLI and parses its CSV output, one
// device per line. Unparseable numeric fields become absent, never a
// record failure; a missing tool yields an empty list.
func CollectNvidiaSMI(binary string, run readers.CommandRunner) []Metrics {
	if binary == "" {
		binary = DefaultNvidiaSMI
	}
	if run == nil {
		run = readers.RunCommand
	}

	output := run(binary, "--query-gpu="+nvidiaQueryFields, "--format=csv,noheader,nounits")
	return parseNvidiaSMI(output)
}

func parseNvidiaSMI(output string) []Metrics {
	if strings.TrimSpace(output) == "" {
		return nil
	}

	var gpus []Metrics
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 7 {
			continue
		}

		m := Metrics{
			Name:               strings.TrimSpace(fields[0]),
			Source:             "nvidia-smi",
			TemperatureC:       parseField(fields[1]),
			CoreClockMHz:       parseField(fields[2]),
			UtilizationPercent: parseField(fields[3]),
			PowerW:             parseField(fields[4]),
			MemoryUsedMiB:      parseField(fields[5]),
			MemoryTotalMiB:     parseField(fields[6]),
		}
		deriveMemoryUtilization(&m)
		gpus = append(gpus, m)
	}
	return gpus
}

func parseField(field string) *float64 {
	value, ok := readers.ParseFloat(field)
	if !ok {
		return nil
	}
	return &value
}
