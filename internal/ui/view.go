package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sysglance/internal/canvas"
	"sysglance/internal/gpu"
	"sysglance/internal/metrics"
)

// Gauge thresholds shared by every percentage bar.
const (
	warnThreshold = 65
	critThreshold = 85
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	critStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

// chartLayer binds one history series to its drawing color. Order is the
// z-order: later layers draw on top of earlier ones, so the volatile CPU
// usage series goes last.
type chartLayer struct {
	name   string
	style  lipgloss.Style
	values []float64
}

func (m *Model) chartLayers() []chartLayer {
	return []chartLayer{
		{"Disk", subtleStyle, m.hist.DiskBusy},
		{"RAM", lipgloss.NewStyle().Foreground(lipgloss.Color("141")), m.hist.RAMUsage},
		{"CPU Temp", critStyle, m.hist.CPUTemperature},
		{"GPU", okStyle, m.hist.GPUUsage},
		{"VRAM", warnStyle, m.hist.VRAMUsage},
		{"CPU", labelStyle, m.hist.CPUUsage},
	}
}

func (m *Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d, need %dx%d)", m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, subtleStyle.Render(msg))
	}

	header := titleStyle.Render("sysglance") + "  " +
		subtleStyle.Render(m.hostname) + "  " +
		subtleStyle.Render(m.now.Format("Mon Jan 2 15:04:05"))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.cpuCard(), m.ramCard(), m.gpuCard(), m.diskCard())

	footer := subtleStyle.Render("q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, top, m.activityPanel(), footer)
}

func (m *Model) cpuCard() string {
	cpu := m.snapshot.CPU
	lines := []string{
		truncate(cpu.Name, 32),
		gaugeBar(cpu.UsagePercent, 22),
		fmt.Sprintf("%s  %s  %s",
			formatTopology(cpu.TotalCores, cpu.TotalThreads),
			formatFrequency(cpu.FrequencyMHz),
			formatTemperature(cpu.TemperatureC)),
	}
	return card("CPU", strings.Join(lines, "\n"))
}

func (m *Model) ramCard() string {
	usage := metrics.RAMUsagePercent(m.snapshot)
	total := m.snapshot.RAM.TotalKB
	available := m.snapshot.RAM.AvailableKB

	var used *int64
	if total != nil && available != nil {
		u := *total - *available
		if u < 0 {
			u = 0
		}
		used = &u
	}
	lines := []string{
		gaugeBar(usage, 22),
		fmt.Sprintf("%s / %s", formatKB(used), formatKB(total)),
	}
	return card("RAM", strings.Join(lines, "\n"))
}

func (m *Model) gpuCard() string {
	gpus := m.snapshot.GPUs
	if len(gpus) == 0 {
		return card("GPU", notAvailable)
	}

	// With no telemetry anywhere there is nothing to gauge; list the
	// cards instead, tagging the one driving a display.
	if !gpu.AnyTelemetry(gpus) {
		inUse, ok := gpu.PickInUseIndex(gpus)
		lines := make([]string, 0, len(gpus))
		for i, g := range gpus {
			line := truncate(g.Name, 30)
			if ok && i == inUse {
				line += " (in use)"
			}
			lines = append(lines, line)
		}
		lines = append(lines, subtleStyle.Render("telemetry not exposed"))
		return card("GPU", strings.Join(lines, "\n"))
	}

	selected := gpu.PickDisplayIndex(gpus)
	g := gpus[selected]
	lines := []string{
		truncate(g.Name, 32),
		gaugeBar(g.UtilizationPercent, 22),
		fmt.Sprintf("%s  %s  %s  in use: %s",
			formatTemperature(g.TemperatureC),
			formatFrequency(g.CoreClockMHz),
			formatPower(g.PowerW),
			formatInUse(g.InUse)),
	}
	if g.MemoryUsedMiB == nil && g.MemoryTotalMiB == nil {
		lines = append(lines, subtleStyle.Render("VRAM source not exposed"))
	} else {
		lines = append(lines, fmt.Sprintf("VRAM %s / %s (%s)",
			formatMiB(g.MemoryUsedMiB), formatMiB(g.MemoryTotalMiB),
			formatPercent(g.MemoryUtilizationPercent)))
	}
	if more := gpu.CountAdditionalRelevant(gpus, selected); more > 0 {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("+%d more GPU(s)", more)))
	}
	return card("GPU", strings.Join(lines, "\n"))
}

func (m *Model) diskCard() string {
	disk := m.snapshot.Disk
	lines := []string{
		gaugeBar(metrics.DiskUsagePercent(m.snapshot), 22),
		fmt.Sprintf("%s free of %s on %s",
			formatBytes(disk.FreeBytes), formatBytes(disk.TotalBytes), disk.MountPoint),
	}
	return card("Disk", strings.Join(lines, "\n"))
}

// activityPanel stacks the trend chart, its legend and the process table
// into one full-width card.
func (m *Model) activityPanel() string {
	chartWidth := m.width - 12
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := m.height - 16
	if chartHeight < 5 {
		chartHeight = 5
	}
	if chartHeight > 12 {
		chartHeight = 12
	}

	sections := []string{
		m.renderChart(chartWidth, chartHeight),
		m.renderLegend(),
	}
	if table := m.renderProcessTable(); table != "" {
		sections = append(sections, "", table)
	}
	return card("Activity", strings.Join(sections, "\n"))
}

// renderChart rasterizes every series onto its own canvas and composites
// them cell by cell, topmost layer winning.
func (m *Model) renderChart(width, height int) string {
	layers := m.chartLayers()
	canvases := make([]*canvas.Canvas, len(layers))
	for i, layer := range layers {
		canvases[i] = canvas.New(width, height)
		canvases[i].PlotSeries(layer.values, 0, 100)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		b.WriteString(axisLabel(y, height))

		// Group consecutive cells of the same layer into one styled run.
		runLayer := -1
		var run strings.Builder
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runLayer < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(layers[runLayer].style.Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < width; x++ {
			cellLayer := -1
			var mask uint16
			for i := len(canvases) - 1; i >= 0; i-- {
				if cellMask := canvases[i].At(x, y); cellMask != 0 {
					cellLayer = i
					mask = cellMask
					break
				}
			}
			if cellLayer != runLayer {
				flush()
				runLayer = cellLayer
			}
			run.WriteRune(canvas.GlyphForMask(mask))
		}
		flush()
		if y < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// axisLabel marks the 100, 50 and 0 percent rows.
func axisLabel(row, height int) string {
	switch row {
	case 0:
		return "100│"
	case (height - 1) / 2:
		return " 50│"
	case height - 1:
		return "  0│"
	default:
		return "   │"
	}
}

func (m *Model) renderLegend() string {
	parts := make([]string, 0, 6)
	for _, layer := range m.chartLayers() {
		parts = append(parts, layer.style.Render("─ "+layer.name))
	}
	return "    " + strings.Join(parts, "  ")
}

func (m *Model) renderProcessTable() string {
	if len(m.processes) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %6s %6s  %s\n", "PID", "CPU%", "MEM%", "COMMAND")
	for _, p := range m.processes {
		fmt.Fprintf(&b, "%-8d %6.1f %6.1f  %s\n", p.PID, p.CPUPercent, p.MemPercent, p.Command)
	}
	return strings.TrimRight(b.String(), "\n")
}

// gaugeBar renders a threshold-colored fill bar for an optional percent.
func gaugeBar(pct *float64, width int) string {
	if pct == nil {
		return fmt.Sprintf("[%s] %s", strings.Repeat("░", width), notAvailable)
	}
	value := metrics.ClampPercent(*pct)
	filled := int(value / 100 * float64(width))
	if filled > width {
		filled = width
	}
	style := okStyle
	switch {
	case value >= critThreshold:
		style = critStyle
	case value >= warnThreshold:
		style = warnStyle
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		style.Render(strings.Repeat("█", filled)),
		strings.Repeat("░", width-filled),
		value)
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
