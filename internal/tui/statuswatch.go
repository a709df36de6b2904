// Package tui renders the live status watch: a Bubble Tea loop that
// drives the health reconciler on a fixed tick and draws each rendered
// state, replacing polling-with-inline-sleep with a scheduled
// re-evaluation that stops the moment the operator stops watching.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcpotools/mcpoctl/pkg/health"
)

// RunStatusWatch blocks until the operator quits the watch.
func RunStatusWatch(reconciler *health.Reconciler, interval time.Duration, probeURL string) error {
	m := newStatusModel(reconciler, interval, probeURL)
	_, err := tea.NewProgram(m).Run()
	return err
}

// statusMsg carries one reconciliation result, including the workflow
// phase observed when it ran. The model renders only from these
// messages; it never touches the reconciler's session, which Tick
// mutates on the command goroutine.
type statusMsg health.Status

type tickMsg time.Time

type statusModel struct {
	reconciler *health.Reconciler
	interval   time.Duration
	probeURL   string

	spinner  spinner.Model
	latest   *health.Status
	checks   int
	quitting bool
}

func newStatusModel(reconciler *health.Reconciler, interval time.Duration, probeURL string) *statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &statusModel{
		reconciler: reconciler,
		interval:   interval,
		probeURL:   probeURL,
		spinner:    s,
	}
}

func (m *statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check())
}

// check runs one reconciliation pass off the UI loop; the probe blocks
// up to its timeout and must not freeze rendering. The scheduling chain
// (statusMsg, then tickMsg, then check) keeps at most one pass in
// flight, so Tick's session writes stay confined to this goroutine.
func (m *statusModel) check() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(m.reconciler.Tick(context.Background()))
	}
}

func (m *statusModel) scheduleNext() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case statusMsg:
		status := health.Status(msg)
		m.latest = &status
		m.checks++
		return m, m.scheduleNext()

	case tickMsg:
		return m, m.check()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *statusModel) View() string {
	if m.quitting {
		return ""
	}

	header := TitleStyle.Render("mcpo gateway") + DetailStyle.Render("  "+m.probeURL)

	if m.latest == nil {
		line := m.spinner.View() + PendingStyle.Render(" checking...")
		footer := FooterStyle.Render("q to quit")
		return fmt.Sprintf("\n %s\n\n %s\n\n %s\n", header, line, footer)
	}

	var line string
	switch m.latest.State {
	case health.StateOnline:
		line = OnlineStyle.Render(symbolOnline + " online")
	case health.StateDeploying:
		line = m.spinner.View() + PendingStyle.Render(" "+symbolDeploying+" deploying, waiting for restart")
	case health.StateStarting:
		line = m.spinner.View() + PendingStyle.Render(" "+symbolStarting+" starting")
	default:
		line = OfflineStyle.Render(symbolOffline + " offline")
	}
	if m.latest.Detail != "" {
		line += DetailStyle.Render("  (" + m.latest.Detail + ")")
	}

	meta := DetailStyle.Render(fmt.Sprintf("phase: %s   checks: %d", m.latest.Phase, m.checks))
	footer := FooterStyle.Render("q to quit")

	return fmt.Sprintf("\n %s\n\n %s\n\n %s\n %s\n", header, line, meta, footer)
}
