// Package sensors extracts CPU and GPU fan/power readings from the output
// of a general purpose hardware sensor report (lm-sensors). It is a last
// resort source: the values here only fill fields that nothing more direct
// could supply.
package sensors

import (
	"regexp"
	"strings"
	"time"

	"sysglance/internal/readers"
)

// DefaultBinary is the sensor report command invoked when no override is
// configured.
const DefaultBinary = "sensors"

const cacheTTL = 900 * time.Millisecond

// Reading holds the best candidate per axis found in one report.
type Reading struct {
	CPUFanRPM *float64
	CPUPowerW *float64
	GPUFanRPM *float64
	GPUPowerW *float64
}

// Cache wraps report collection with a short TTL so rapid redraws (for
// example during a terminal resize) do not spawn a subprocess per frame.
// It is owned by a single goroutine; see the app wiring.
type Cache struct {
	binary string
	run    readers.CommandRunner
	now    func() time.Time

	last        Reading
	lastAt      time.Time
	initialized bool
}

// NewCache builds a cache around the given sensor binary. A nil runner
// falls back to the default subprocess runner.
func NewCache(binary string, run readers.CommandRunner) *Cache {
	if binary == "" {
		binary = DefaultBinary
	}
	if run == nil {
		run = readers.RunCommand
	}
	return &Cache{binary: binary, run: run, now: time.Now}
}

// Read returns the cached reading, refreshing it when the TTL has expired.
func (c *Cache) Read() Reading {
	now := c.now()
	if c.initialized && now.Sub(c.lastAt) < cacheTTL {
		return c.last
	}
	c.last = Parse(c.run(c.binary))
	c.lastAt = now
	c.initialized = true
	return c.last
}

var (
	numberPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)`)
	wattsPattern  = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*([mM]?)\s*[Ww]\b`)
)

// Parse classifies every fan and watt line of a sensor report by CPU and
// GPU likelihood and keeps the single highest scoring value per axis.
func Parse(output string) Reading {
	var result Reading
	bestCPUFan, bestCPUPower := -1, -1
	bestGPUFan, bestGPUPower := -1, -1

	chipName := ""
	for _, rawLine := range strings.Split(output, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		// Chip headers are unindented lines without a colon.
		indented := strings.HasPrefix(rawLine, " ") || strings.HasPrefix(rawLine, "\t")
		if !indented && !strings.Contains(line, ":") {
			chipName = strings.ToLower(line)
			continue
		}

		lower := strings.ToLower(line)

		if strings.Contains(lower, "rpm") {
			if rpm, ok := extractFirstNumber(lower); ok && rpm > 0 {
				cpuScore, gpuScore := scoreFanLine(lower, chipName)
				if cpuScore > bestCPUFan {
					bestCPUFan = cpuScore
					result.CPUFanRPM = ptr(rpm)
				}
				if gpuScore > bestGPUFan {
					bestGPUFan = gpuScore
					result.GPUFanRPM = ptr(rpm)
				}
			}
		}

		if watts, ok := extractWatts(lower); ok {
			cpuScore, gpuScore := scorePowerLine(lower, chipName)
			if cpuScore > bestCPUPower {
				bestCPUPower = cpuScore
				result.CPUPowerW = ptr(watts)
			}
			if gpuScore > bestGPUPower {
				bestGPUPower = gpuScore
				result.GPUPowerW = ptr(watts)
			}
		}
	}

	return result
}

func scoreFanLine(lowerLine, chipName string) (cpuScore, gpuScore int) {
	if strings.Contains(lowerLine, "cpu") {
		cpuScore += 120
	}
	if strings.Contains(lowerLine, "fan") {
		cpuScore += 10
		gpuScore += 10
	}
	if strings.Contains(lowerLine, "pump") {
		cpuScore -= 40
	}
	if strings.Contains(lowerLine, "gpu") {
		gpuScore += 120
	}
	if chipLooksGPU(chipName) {
		gpuScore += 60
	}
	if chipLooksBoard(chipName) {
		cpuScore += 25
	}
	if chipLooksCPU(chipName) {
		cpuScore += 20
	}
	return cpuScore, gpuScore
}

func scorePowerLine(lowerLine, chipName string) (cpuScore, gpuScore int) {
	for _, token := range []string{"cpu", "package", "ppt", "svi2", "socket"} {
		if strings.Contains(lowerLine, token) {
			cpuScore += 120
			break
		}
	}
	for _, token := range []string{"k10temp", "coretemp", "zenpower", "fam15h_power", "rapl"} {
		if strings.Contains(chipName, token) {
			cpuScore += 60
			break
		}
	}
	if strings.Contains(lowerLine, "gpu") {
		gpuScore += 120
	}
	if chipLooksGPU(chipName) {
		gpuScore += 60
	}
	return cpuScore, gpuScore
}

func chipLooksCPU(lowerName string) bool {
	for _, token := range []string{"k10temp", "coretemp", "zenpower", "cpu"} {
		if strings.Contains(lowerName, token) {
			return true
		}
	}
	return false
}

func chipLooksBoard(lowerName string) bool {
	for _, prefix := range []string{"nct", "it", "f718", "w83"} {
		if strings.HasPrefix(lowerName, prefix) {
			return true
		}
	}
	return strings.Contains(lowerName, "asus") || strings.Contains(lowerName, "gigabyte")
}

func chipLooksGPU(lowerName string) bool {
	for _, token := range []string{"amdgpu", "nvidia", "nouveau", "radeon"} {
		if strings.Contains(lowerName, token) {
			return true
		}
	}
	return false
}

func extractFirstNumber(input string) (float64, bool) {
	match := numberPattern.FindStringSubmatch(input)
	if match == nil {
		return 0, false
	}
	return readers.ParseFloat(match[1])
}

func extractWatts(input string) (float64, bool) {
	match := wattsPattern.FindStringSubmatch(input)
	if match == nil {
		return 0, false
	}
	watts, ok := readers.ParseFloat(match[1])
	if !ok {
		return 0, false
	}
	if match[2] != "" {
		watts /= 1000
	}
	if watts <= 0 || watts > 2000 {
		return 0, false
	}
	return watts, true
}

func ptr(value float64) *float64 {
	return &value
}
