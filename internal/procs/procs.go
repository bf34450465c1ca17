// Package procs lists the heaviest processes for the activity panel.
package procs

import (
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Info is one row of the process table. It is a transient snapshot,
// never tracked across ticks.
type Info struct {
	PID        int32
	CPUPercent float64
	MemPercent float64
	Command    string
}

// commandWidth bounds the command column so one long cmdline cannot
// dominate the panel.
const commandWidth = 60

// Top returns up to limit processes ordered by CPU usage descending.
// Kernel threads without a name are skipped; per-process read errors
// drop the row rather than the listing.
func Top(limit int) []Info {
	if limit <= 0 {
		return nil
	}
	procs, err := process.Processes()
	if err != nil {
		return nil
	}

	rows := make([]Info, 0, len(procs))
	for _, p := range procs {
		name, _ := p.Name()
		if name == "" {
			continue
		}
		cpuPct, _ := p.CPUPercent()
		memPct, _ := p.MemoryPercent()
		cmd, _ := p.Cmdline()
		if cmd == "" {
			cmd = name
		}
		rows = append(rows, Info{
			PID:        p.Pid,
			CPUPercent: cpuPct,
			MemPercent: float64(memPct),
			Command:    truncate(strings.TrimSpace(cmd), commandWidth),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CPUPercent > rows[j].CPUPercent })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
