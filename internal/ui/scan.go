package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rtls-ctl/gwscan/internal/logging"
	"github.com/rtls-ctl/gwscan/internal/scanner"
)

// progressInterval limits how often progress updates reach the UI
const progressInterval = 50 * time.Millisecond

// ProgressMsg carries a scanner progress update into the model
type ProgressMsg scanner.Progress

// ScanDoneMsg tells the model the scan has returned
type ScanDoneMsg struct {
	Err error
}

// ScanModel renders a running scan: a spinner, a progress bar and counters.
// It quits once it receives ScanDoneMsg.
type ScanModel struct {
	Label       string
	Current     scanner.Progress
	Done        bool
	Interrupted bool
	Err         error

	spinner spinner.Model
	bar     progress.Model
	start   time.Time
	cancel  context.CancelFunc
}

// NewScanModel creates a scan model. cancel is called when the user
// interrupts the scan and may be nil.
func NewScanModel(label string, cancel context.CancelFunc) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barWidth(GetTerminalWidth())

	return ScanModel{
		Label:   label,
		spinner: s,
		bar:     bar,
		start:   time.Now(),
		cancel:  cancel,
	}
}

func barWidth(termWidth int) int {
	w := termWidth - 40 // Leave room for counters
	if w < 20 {
		w = 20
	}
	if w > 50 {
		w = 50
	}
	return w
}

// Init implements tea.Model
func (m ScanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Keep rendering until the scan drains its in-flight addresses
			if !m.Interrupted {
				m.Interrupted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case ProgressMsg:
		m.Current = scanner.Progress(msg)
		return m, nil

	case ScanDoneMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m ScanModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder

	label := m.Label
	if m.Interrupted {
		label = "Stopping, waiting for in-flight addresses..."
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(ProgressLabelStyle.Render(label))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.bar.ViewAs(m.Current.Percent()))
	b.WriteString(MutedStyle.Render(fmt.Sprintf("  %d/%d", m.Current.Done, m.Current.Total)))
	b.WriteString("  ")
	b.WriteString(FoundStyle.Render(fmt.Sprintf("%d found", m.Current.Found)))
	b.WriteString(MutedStyle.Render(fmt.Sprintf("  %s", time.Since(m.start).Round(time.Second))))
	b.WriteString("\n")

	return b.String()
}

// Throttle wraps a progress callback so it fires at most once per interval.
// The final update (Done == Total) is always delivered. The returned function
// must not be called concurrently; the scanner serializes its calls.
func Throttle(interval time.Duration, fn func(scanner.Progress)) func(scanner.Progress) {
	var last time.Time
	return func(p scanner.Progress) {
		now := time.Now()
		if p.Done < p.Total && now.Sub(last) < interval {
			return
		}
		last = now
		fn(p)
	}
}

// RunScan runs scan while rendering its progress on out. scan receives the
// callback to install as the scanner's progress hook. cancel is called if the
// user interrupts. RunScan returns only after scan has returned, and passes
// its error through. If the display fails the scan carries on without it.
func RunScan(out io.Writer, label string, cancel context.CancelFunc, scan func(onProgress func(scanner.Progress)) error) error {
	return runScan(tea.NewProgram(NewScanModel(label, cancel), tea.WithOutput(out)), cancel, scan)
}

// program is the part of *tea.Program that runScan drives
type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

func runScan(p program, cancel context.CancelFunc, scan func(onProgress func(scanner.Progress)) error) error {
	var scanErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		scanErr = scan(Throttle(progressInterval, func(pr scanner.Progress) {
			p.Send(ProgressMsg(pr))
		}))
		p.Send(ScanDoneMsg{Err: scanErr})
	}()

	_, err := p.Run()
	switch {
	case errors.Is(err, tea.ErrInterrupted):
		if cancel != nil {
			cancel()
		}
	case err != nil:
		logging.Warn("Progress display failed, continuing without it", zap.Error(err))
	}

	// Send is a no-op once Run has returned, so the scan cannot block here
	<-done
	return scanErr
}
