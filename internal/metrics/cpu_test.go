package metrics

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertFloat(t *testing.T, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %v, got nil", want)
	}
	if math.Abs(*got-want) > 0.01 {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestUsageTrackerBaselineThenDelta(t *testing.T) {
	t.Parallel()

	var tracker UsageTracker
	if got := tracker.Update(100, 1000); got != nil {
		t.Fatalf("first update should only baseline, got %v", *got)
	}

	assertFloat(t, tracker.Update(150, 1300), 83.33)
}

func TestUsageTrackerRebaselinesOnWrap(t *testing.T) {
	t.Parallel()

	var tracker UsageTracker
	tracker.Update(100, 1000)
	tracker.Update(150, 1300)

	if got := tracker.Update(10, 50); got != nil {
		t.Fatalf("counter wrap should re-baseline, got %v", *got)
	}
	assertFloat(t, tracker.Update(10, 150), 100)
}

func TestUsageTrackerZeroDelta(t *testing.T) {
	t.Parallel()

	var tracker UsageTracker
	tracker.Update(100, 1000)
	if got := tracker.Update(100, 1000); got != nil {
		t.Fatalf("zero total delta should yield nil, got %v", *got)
	}
}

func TestNormalizeTemperatureC(t *testing.T) {
	t.Parallel()

	assertFloat(t, NormalizeTemperatureC(45000), 45)
	assertFloat(t, NormalizeTemperatureC(55), 55)
	assertFloat(t, NormalizeTemperatureC(0), 0)
	assertFloat(t, NormalizeTemperatureC(150), 150)

	for _, raw := range []int64{220, -5, -5000, 151, 200000} {
		if got := NormalizeTemperatureC(raw); got != nil {
			t.Fatalf("raw %d should be rejected, got %v", raw, *got)
		}
	}
}

func TestCPUNamePrefersModelName(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	writeFile(t, filepath.Join(proc, "cpuinfo"), ""+
		"processor\t: 0\n"+
		"vendor_id\t: AuthenticAMD\n"+
		"model\t\t: 33\n"+
		"model name\t: AMD Ryzen 7 5800X 8-Core Processor\n")

	if got := cpuName(proc); got != "AMD Ryzen 7 5800X 8-Core Processor" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestCPUNameFallbacks(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	// ARM-style cpuinfo: no "model name", numeric "model", textual "processor".
	writeFile(t, filepath.Join(proc, "cpuinfo"), ""+
		"processor\t: ARMv8 Processor rev 4\n"+
		"model\t\t: 4\n")

	if got := cpuName(proc); got != "ARMv8 Processor rev 4" {
		t.Fatalf("unexpected name %q", got)
	}

	empty := t.TempDir()
	if got := cpuName(empty); got != "Unknown CPU" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestCoreCountFromTopology(t *testing.T) {
	t.Parallel()

	sysfs := t.TempDir()
	// Two physical cores, two threads each.
	for cpu, core := range map[int]int{0: 0, 1: 0, 2: 1, 3: 1} {
		base := filepath.Join(sysfs, "devices/system/cpu", fmt.Sprintf("cpu%d", cpu), "topology")
		writeFile(t, filepath.Join(base, "core_id"), fmt.Sprintf("%d\n", core))
		writeFile(t, filepath.Join(base, "physical_package_id"), "0\n")
	}

	got := coreCount(t.TempDir(), sysfs)
	if got == nil || *got != 2 {
		t.Fatalf("expected 2 cores, got %v", got)
	}

	threads := threadCount(t.TempDir(), sysfs)
	if threads == nil || *threads != 4 {
		t.Fatalf("expected 4 threads, got %v", threads)
	}
}

func TestCoreCountClampedToThreads(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	sysfs := t.TempDir()

	// Threads come from sysfs, cores from a cpuinfo that over-reports.
	cpuinfo := ""
	for i := 0; i < 8; i++ {
		os.MkdirAll(filepath.Join(sysfs, "devices/system/cpu", fmt.Sprintf("cpu%d", i)), 0o755)
		cpuinfo += fmt.Sprintf("processor\t: %d\ncpu cores\t: 16\n\n", i)
	}
	writeFile(t, filepath.Join(proc, "cpuinfo"), cpuinfo)
	writeFile(t, filepath.Join(proc, "stat"), "cpu  100 0 100 700 100 0 0 0 0 0\n")

	var tracker UsageTracker
	cpu := collectCPU(proc, sysfs, &tracker)
	if cpu.TotalThreads == nil || *cpu.TotalThreads != 8 {
		t.Fatalf("expected 8 threads, got %v", cpu.TotalThreads)
	}
	if cpu.TotalCores == nil || *cpu.TotalCores != 8 {
		t.Fatalf("expected cores clamped to 8, got %v", cpu.TotalCores)
	}
}

func TestCoreCountFromCpuinfoTwoSockets(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	cpuinfo := ""
	for i := 0; i < 4; i++ {
		cpuinfo += fmt.Sprintf("processor\t: %d\nphysical id\t: %d\ncore id\t\t: %d\n\n", i, i/2, i%2)
	}
	writeFile(t, filepath.Join(proc, "cpuinfo"), cpuinfo)

	got := coreCountFromCpuinfo(proc)
	if got == nil || *got != 4 {
		t.Fatalf("expected 4 cores across sockets, got %v", got)
	}
}

func TestCPUTemperaturePrefersCPUZones(t *testing.T) {
	t.Parallel()

	sysfs := t.TempDir()
	zones := filepath.Join(sysfs, "class/thermal")
	writeFile(t, filepath.Join(zones, "thermal_zone0/type"), "acpitz\n")
	writeFile(t, filepath.Join(zones, "thermal_zone0/temp"), "72000\n")
	writeFile(t, filepath.Join(zones, "thermal_zone1/type"), "x86_pkg_temp\n")
	writeFile(t, filepath.Join(zones, "thermal_zone1/temp"), "45000\n")

	assertFloat(t, cpuTemperature(sysfs), 45)
}

func TestCPUTemperatureFallsBackToHwmon(t *testing.T) {
	t.Parallel()

	sysfs := t.TempDir()
	chip := filepath.Join(sysfs, "class/hwmon/hwmon0")
	writeFile(t, filepath.Join(chip, "name"), "k10temp\n")
	writeFile(t, filepath.Join(chip, "temp1_input"), "61000\n")
	writeFile(t, filepath.Join(chip, "temp1_label"), "Tctl\n")
	writeFile(t, filepath.Join(chip, "temp2_input"), "55000\n")

	assertFloat(t, cpuTemperature(sysfs), 61)
}

func TestCPUTemperatureAbsent(t *testing.T) {
	t.Parallel()

	if got := cpuTemperature(t.TempDir()); got != nil {
		t.Fatalf("expected nil temperature, got %v", *got)
	}
}

func TestCPUFrequencyAveragesScalingFreq(t *testing.T) {
	t.Parallel()

	sysfs := t.TempDir()
	writeFile(t, filepath.Join(sysfs, "devices/system/cpu/cpu0/cpufreq/scaling_cur_freq"), "3000000\n")
	writeFile(t, filepath.Join(sysfs, "devices/system/cpu/cpu1/cpufreq/scaling_cur_freq"), "4000000\n")

	assertFloat(t, cpuFrequency(t.TempDir(), sysfs), 3500)
}

func TestCPUFrequencyFromCpuinfo(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	writeFile(t, filepath.Join(proc, "cpuinfo"), ""+
		"processor\t: 0\ncpu MHz\t\t: 2400.000\n\n"+
		"processor\t: 1\ncpu MHz\t\t: 2600.000\n\n")

	assertFloat(t, cpuFrequency(proc, t.TempDir()), 2500)
}

func TestCPUUsageFromStat(t *testing.T) {
	t.Parallel()

	proc := t.TempDir()
	var tracker UsageTracker

	writeFile(t, filepath.Join(proc, "stat"), "cpu  100 0 0 80 20 0 0 800 0 0\n")
	if got := cpuUsage(proc, &tracker); got != nil {
		t.Fatalf("first sample should only baseline, got %v", *got)
	}

	writeFile(t, filepath.Join(proc, "stat"), "cpu  200 0 100 110 40 0 0 850 0 0\n")
	assertFloat(t, cpuUsage(proc, &tracker), 83.33)
}

func TestIsCPUDirName(t *testing.T) {
	t.Parallel()

	valid := []string{"cpu0", "cpu12"}
	invalid := []string{"cpu", "cpufreq", "cpuidle", "cpu0a", "online"}
	for _, name := range valid {
		if !isCPUDirName(name) {
			t.Fatalf("%q should be a cpu dir", name)
		}
	}
	for _, name := range invalid {
		if isCPUDirName(name) {
			t.Fatalf("%q should not be a cpu dir", name)
		}
	}
}
