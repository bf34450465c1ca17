// Package ui renders the dashboard: bar-gauge summary panels on top and
// a scrolling multi-series trend chart with a process table below.
package ui

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sysglance/internal/config"
	"sysglance/internal/history"
	"sysglance/internal/metrics"
	"sysglance/internal/procs"
)

// Minimum terminal geometry; below this the view short-circuits to a
// hint instead of running the collectors.
const (
	minWidth  = 80
	minHeight = 18
)

// Model is the bubbletea state machine. One tick collects a snapshot,
// refreshes the process table and appends to history, all synchronously
// on the update goroutine.
type Model struct {
	cfg       config.Config
	collector *metrics.Collector
	diskBusy  *history.DiskBusySampler
	logger    *slog.Logger

	hist      history.History
	snapshot  metrics.Snapshot
	processes []procs.Info
	hostname  string
	now       time.Time

	width  int
	height int
}

// New wires a model around an assembled collector.
func New(cfg config.Config, collector *metrics.Collector, logger *slog.Logger) *Model {
	hostname, _ := os.Hostname()
	return &Model{
		cfg:       cfg,
		collector: collector,
		diskBusy:  history.NewDiskBusySampler(cfg.MountPoint),
		logger:    logger.With("component", "ui"),
		hostname:  hostname,
		width:     minWidth,
		height:    minHeight,
	}
}

type tickMsg time.Time

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.SampleInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.sample(time.Now())
	return m.tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.sample(time.Time(msg))
		return m, m.tickCmd()
	}
	return m, nil
}

// sample runs one collection tick.
func (m *Model) sample(at time.Time) {
	m.now = at
	m.snapshot = m.collector.Snapshot()
	m.processes = procs.Top(m.cfg.ProcessRows)
	m.hist.Update(m.snapshot, m.cfg.HistoryPoints, m.diskBusy.Sample())
	m.logger.Debug("tick", "gpus", len(m.snapshot.GPUs), "processes", len(m.processes))
}

// Run starts the program in the alternate screen.
func Run(cfg config.Config, collector *metrics.Collector, logger *slog.Logger) error {
	program := tea.NewProgram(New(cfg, collector, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
