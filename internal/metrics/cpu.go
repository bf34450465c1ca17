package metrics

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"sysglance/internal/readers"
)

// UsageTracker keeps the previous /proc/stat tick totals so consecutive
// snapshots can compute an instantaneous usage percentage. The zero value
// is ready to use; the first update only establishes the baseline.
type UsageTracker struct {
	prevIdle    uint64
	prevTotal   uint64
	initialized bool
}

// Update folds in the current idle and total tick counters. It returns
// nil on the first call and whenever the counters moved backwards
// (reset or wrap), re-baselining in both cases.
func (t *UsageTracker) Update(idleTicks, totalTicks uint64) *float64 {
	if !t.initialized || totalTicks < t.prevTotal || idleTicks < t.prevIdle {
		t.prevIdle = idleTicks
		t.prevTotal = totalTicks
		t.initialized = true
		return nil
	}

	totalDelta := totalTicks - t.prevTotal
	idleDelta := idleTicks - t.prevIdle
	t.prevIdle = idleTicks
	t.prevTotal = totalTicks

	if totalDelta == 0 {
		return nil
	}
	usage := 100 * (1 - float64(idleDelta)/float64(totalDelta))
	return ptr(ClampPercent(usage))
}

func collectCPU(procRoot, sysfsRoot string, tracker *UsageTracker) CPU {
	cpu := CPU{Name: cpuName(procRoot)}
	cpu.TotalCores = coreCount(procRoot, sysfsRoot)
	cpu.TotalThreads = threadCount(procRoot, sysfsRoot)
	// A detection race between topology and cpuinfo can make cores exceed
	// threads; clamp down.
	if cpu.TotalCores != nil && cpu.TotalThreads != nil && *cpu.TotalCores > *cpu.TotalThreads {
		cpu.TotalCores = cpu.TotalThreads
	}
	cpu.TemperatureC = cpuTemperature(sysfsRoot)
	cpu.FrequencyMHz = cpuFrequency(procRoot, sysfsRoot)
	cpu.UsagePercent = cpuUsage(procRoot, tracker)
	return cpu
}

func cpuName(procRoot string) string {
	file, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
	if err != nil {
		return "Unknown CPU"
	}
	defer file.Close()

	modelFallback := ""
	processorFallback := ""

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := splitCpuinfoLine(scanner.Text())
		if !ok || value == "" {
			continue
		}
		switch key {
		case "model name", "cpu model", "hardware":
			return value
		case "model":
			if modelFallback == "" && containsAlpha(value) {
				modelFallback = value
			}
		case "processor":
			if processorFallback == "" && containsAlpha(value) {
				processorFallback = value
			}
		}
	}

	if modelFallback != "" {
		return modelFallback
	}
	if processorFallback != "" {
		return processorFallback
	}
	return "Unknown CPU"
}

func threadCount(procRoot, sysfsRoot string) *int {
	count := 0
	for _, entry := range readers.DirEntries(filepath.Join(sysfsRoot, "devices/system/cpu")) {
		if isCPUDirName(filepath.Base(entry)) {
			count++
		}
	}
	if count > 0 {
		return intPtr(count)
	}

	file, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if key, _, ok := splitCpuinfoLine(scanner.Text()); ok && key == "processor" {
			count++
		}
	}
	if count > 0 {
		return intPtr(count)
	}
	return nil
}

func coreCount(procRoot, sysfsRoot string) *int {
	// Per-thread topology files de-duplicate hyperthreads when grouped by
	// (package, core) pair.
	uniqueCores := make(map[string]struct{})
	for _, entry := range readers.DirEntries(filepath.Join(sysfsRoot, "devices/system/cpu")) {
		if !isCPUDirName(filepath.Base(entry)) {
			continue
		}
		coreID, ok := readers.FirstLine(filepath.Join(entry, "topology/core_id"))
		if !ok {
			continue
		}
		packageID, ok := readers.FirstLine(filepath.Join(entry, "topology/physical_package_id"))
		if !ok {
			packageID = "0"
		}
		uniqueCores[packageID+":"+coreID] = struct{}{}
	}
	if len(uniqueCores) > 0 {
		return intPtr(len(uniqueCores))
	}

	return coreCountFromCpuinfo(procRoot)
}

func coreCountFromCpuinfo(procRoot string) *int {
	file, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
	if err != nil {
		return nil
	}
	defer file.Close()

	uniqueCores := make(map[string]struct{})
	physicalIDs := make(map[string]struct{})
	blockPhysicalID := ""
	blockCoreID := ""
	coresPerSocket := 0

	flushBlock := func() {
		if blockCoreID != "" {
			pkg := blockPhysicalID
			if pkg == "" {
				pkg = "0"
			}
			uniqueCores[pkg+":"+blockCoreID] = struct{}{}
		}
		blockPhysicalID = ""
		blockCoreID = ""
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flushBlock()
			continue
		}
		key, value, ok := splitCpuinfoLine(line)
		if !ok || value == "" {
			continue
		}
		switch key {
		case "physical id":
			blockPhysicalID = value
			physicalIDs[value] = struct{}{}
		case "core id":
			blockCoreID = value
		case "cpu cores":
			if parsed, err := strconv.Atoi(value); err == nil && parsed > coresPerSocket {
				coresPerSocket = parsed
			}
		}
	}
	flushBlock()

	if len(uniqueCores) > 0 {
		return intPtr(len(uniqueCores))
	}
	if coresPerSocket > 0 {
		sockets := len(physicalIDs)
		if sockets < 1 {
			sockets = 1
		}
		return intPtr(coresPerSocket * sockets)
	}
	return nil
}

// cpuTemperature searches the thermal-zone namespace first and the
// generic hwmon namespace only when no zone yielded a value. Within each
// namespace, readings whose label looks CPU-specific beat readings that
// merely sit on a CPU-named chip; the hottest reading of the winning
// class is reported.
func cpuTemperature(sysfsRoot string) *float64 {
	var preferredMax, fallbackMax *float64

	for _, zone := range readers.DirEntries(filepath.Join(sysfsRoot, "class/thermal")) {
		if !strings.HasPrefix(filepath.Base(zone), "thermal_zone") {
			continue
		}
		raw, ok := readers.Int64(filepath.Join(zone, "temp"))
		if !ok {
			continue
		}
		celsius := NormalizeTemperatureC(raw)
		if celsius == nil {
			continue
		}
		zoneType, _ := readers.FirstLine(filepath.Join(zone, "type"))
		if thermalZonePreferred(strings.ToLower(zoneType)) {
			preferredMax = maxOf(preferredMax, celsius)
		} else {
			fallbackMax = maxOf(fallbackMax, celsius)
		}
	}

	if preferredMax != nil {
		return preferredMax
	}
	if fallbackMax != nil {
		return fallbackMax
	}
	return cpuTemperatureFromHwmon(sysfsRoot)
}

func cpuTemperatureFromHwmon(sysfsRoot string) *float64 {
	var preferredMax, fallbackMax *float64

	for _, chip := range readers.DirEntries(filepath.Join(sysfsRoot, "class/hwmon")) {
		chipName, _ := readers.FirstLine(filepath.Join(chip, "name"))
		cpuChip := hwmonChipLooksCPU(strings.ToLower(chipName))

		for _, file := range readers.DirEntries(chip) {
			name := filepath.Base(file)
			if !strings.HasPrefix(name, "temp") || !strings.HasSuffix(name, "_input") {
				continue
			}
			raw, ok := readers.Int64(file)
			if !ok {
				continue
			}
			celsius := NormalizeTemperatureC(raw)
			if celsius == nil {
				continue
			}
			labelFile := strings.TrimSuffix(file, "_input") + "_label"
			label, _ := readers.FirstLine(labelFile)
			if hwmonLabelLooksCPU(strings.ToLower(label)) {
				preferredMax = maxOf(preferredMax, celsius)
			} else if cpuChip {
				fallbackMax = maxOf(fallbackMax, celsius)
			}
		}
	}

	if preferredMax != nil {
		return preferredMax
	}
	return fallbackMax
}

func cpuFrequency(procRoot, sysfsRoot string) *float64 {
	var mhzValues []float64
	for _, entry := range readers.DirEntries(filepath.Join(sysfsRoot, "devices/system/cpu")) {
		if !isCPUDirName(filepath.Base(entry)) {
			continue
		}
		if khz, ok := readers.Int64(filepath.Join(entry, "cpufreq/scaling_cur_freq")); ok && khz > 0 {
			mhzValues = append(mhzValues, float64(khz)/1000)
		}
	}

	if len(mhzValues) == 0 {
		file, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
		if err != nil {
			return nil
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			key, value, ok := splitCpuinfoLine(scanner.Text())
			if !ok || key != "cpu mhz" {
				continue
			}
			if mhz, ok := readers.ParseFloat(value); ok && mhz > 0 {
				mhzValues = append(mhzValues, mhz)
			}
		}
	}

	if len(mhzValues) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range mhzValues {
		sum += v
	}
	return ptr(sum / float64(len(mhzValues)))
}

func cpuUsage(procRoot string, tracker *UsageTracker) *float64 {
	line, ok := readers.FirstLine(filepath.Join(procRoot, "stat"))
	if !ok {
		return nil
	}
	fields := strings.Fields(line)
	if len(fields) < 9 || fields[0] != "cpu" {
		return nil
	}

	var ticks [8]uint64
	for i := range ticks {
		value, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return nil
		}
		ticks[i] = value
	}

	// user nice system idle iowait irq softirq steal
	idleTicks := ticks[3] + ticks[4]
	totalTicks := uint64(0)
	for _, t := range ticks {
		totalTicks += t
	}
	return tracker.Update(idleTicks, totalTicks)
}

// NormalizeTemperatureC converts a raw sensor integer to Celsius,
// dividing by 1000 when the magnitude suggests the millidegree
// convention. Results outside [0, 150] are rejected as sensor noise.
func NormalizeTemperatureC(raw int64) *float64 {
	celsius := float64(raw)
	if celsius > 1000 || celsius < -1000 {
		celsius /= 1000
	}
	if celsius < 0 || celsius > 150 {
		return nil
	}
	return ptr(celsius)
}

func thermalZonePreferred(lowerType string) bool {
	for _, token := range []string{"cpu", "package", "x86_pkg_temp", "tctl", "tdie"} {
		if strings.Contains(lowerType, token) {
			return true
		}
	}
	return false
}

func hwmonChipLooksCPU(lowerName string) bool {
	for _, token := range []string{"k10temp", "coretemp", "zenpower", "cpu"} {
		if strings.Contains(lowerName, token) {
			return true
		}
	}
	return false
}

func hwmonLabelLooksCPU(lowerLabel string) bool {
	for _, token := range []string{"cpu", "package", "tctl", "tdie", "die"} {
		if strings.Contains(lowerLabel, token) {
			return true
		}
	}
	return false
}

func splitCpuinfoLine(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return key, value, true
}

func isCPUDirName(name string) bool {
	if !strings.HasPrefix(name, "cpu") || len(name) <= 3 {
		return false
	}
	for _, r := range name[3:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsAlpha(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func maxOf(current, candidate *float64) *float64 {
	if candidate == nil {
		return current
	}
	if current == nil || *candidate > *current {
		return candidate
	}
	return current
}
