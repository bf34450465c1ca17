// sysglance-probe takes one snapshot without the dashboard, for checking
// what the collectors can see on a given machine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sysglance/internal/app"
	"sysglance/internal/config"
	"sysglance/internal/gpu"
	"sysglance/internal/metrics"
)

type options struct {
	sysfsRoot  string
	procRoot   string
	jsonOutput bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.sysfsRoot, "sysfs", envOrDefault("SYSGLANCE_SYSFS_ROOT", "/sys"), "Path to sysfs root")
	flag.StringVar(&opts.procRoot, "proc", envOrDefault("SYSGLANCE_PROC_ROOT", "/proc"), "Path to procfs root")
	flag.BoolVar(&opts.jsonOutput, "json", false, "Emit the snapshot as JSON")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg.SysfsRoot = opts.sysfsRoot
	cfg.ProcRoot = opts.procRoot

	collector := app.NewCollector(cfg, logger)
	snapshot := collector.Snapshot()

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshotReport(snapshot)); err != nil {
			logger.Error("encode snapshot", "err", err)
			os.Exit(1)
		}
		return
	}

	printSnapshot(snapshot)
}

// report mirrors the snapshot with pointer fields intact so absent
// values serialize as null.
type report struct {
	CPU  metrics.CPU   `json:"cpu"`
	RAM  metrics.RAM   `json:"ram"`
	Disk metrics.Disk  `json:"disk"`
	GPUs []gpu.Metrics `json:"gpus"`
}

func snapshotReport(s metrics.Snapshot) report {
	return report{CPU: s.CPU, RAM: s.RAM, Disk: s.Disk, GPUs: s.GPUs}
}

func printSnapshot(s metrics.Snapshot) {
	fmt.Printf("CPU: %s\n", s.CPU.Name)
	printOptInt("  cores", s.CPU.TotalCores)
	printOptInt("  threads", s.CPU.TotalThreads)
	printOptFloat("  temperature_c", s.CPU.TemperatureC)
	printOptFloat("  frequency_mhz", s.CPU.FrequencyMHz)
	printOptFloat("  usage_percent", s.CPU.UsagePercent)

	fmt.Println("RAM:")
	printOptInt64("  total_kb", s.RAM.TotalKB)
	printOptInt64("  available_kb", s.RAM.AvailableKB)

	fmt.Printf("Disk: %s\n", s.Disk.MountPoint)
	printOptUint64("  total_bytes", s.Disk.TotalBytes)
	printOptUint64("  free_bytes", s.Disk.FreeBytes)

	if len(s.GPUs) == 0 {
		fmt.Println("GPUs: none detected")
		return
	}
	display := gpu.PickDisplayIndex(s.GPUs)
	fmt.Printf("GPUs (%d, display index %d):\n", len(s.GPUs), display)
	for i, g := range s.GPUs {
		fmt.Printf("- [%d] %s (source: %s, score: %d)\n", i, g.Name, g.Source, gpu.Score(g))
		printOptFloat("    utilization_percent", g.UtilizationPercent)
		printOptFloat("    temperature_c", g.TemperatureC)
		printOptFloat("    core_clock_mhz", g.CoreClockMHz)
		printOptFloat("    power_w", g.PowerW)
		printOptFloat("    memory_used_mib", g.MemoryUsedMiB)
		printOptFloat("    memory_total_mib", g.MemoryTotalMiB)
		printOptFloat("    memory_utilization_percent", g.MemoryUtilizationPercent)
		if g.InUse != nil {
			fmt.Printf("    in_use: %t\n", *g.InUse)
		} else {
			fmt.Println("    in_use: unknown")
		}
	}
}

func printOptFloat(label string, value *float64) {
	if value == nil {
		fmt.Printf("%s: n/a\n", label)
		return
	}
	fmt.Printf("%s: %.2f\n", label, *value)
}

func printOptInt(label string, value *int) {
	if value == nil {
		fmt.Printf("%s: n/a\n", label)
		return
	}
	fmt.Printf("%s: %d\n", label, *value)
}

func printOptInt64(label string, value *int64) {
	if value == nil {
		fmt.Printf("%s: n/a\n", label)
		return
	}
	fmt.Printf("%s: %d\n", label, *value)
}

func printOptUint64(label string, value *uint64) {
	if value == nil {
		fmt.Printf("%s: n/a\n", label)
		return
	}
	fmt.Printf("%s: %d\n", label, *value)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
