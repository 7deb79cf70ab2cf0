package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rtls-ctl/gwscan/internal/scanner"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result represents a result box (success, failure, or warning)
type Result struct {
	Type            ResultType // Success, failure, or warning
	Title           string     // e.g., "Scan complete"
	Details         []Param    // Key-value details to display, in order
	Error           error      // Error (for failure results)
	Troubleshooting []string   // Troubleshooting tips
	Width           int        // Terminal width
}

// NewScanResult summarizes a finished scan. An interrupted scan is a warning,
// any other error a failure.
func NewScanResult(p scanner.Progress, elapsed time.Duration, err error) *Result {
	r := &Result{
		Type:  ResultSuccess,
		Title: "Scan complete",
		Details: []Param{
			{Key: "Addresses", Value: fmt.Sprintf("%d/%d", p.Done, p.Total)},
			{Key: "Gateways", Value: fmt.Sprintf("%d", p.Found)},
			{Key: "Duration", Value: elapsed.Round(time.Millisecond).String()},
		},
		Width: GetTerminalWidth(),
	}

	switch {
	case err == nil:
		if p.Found == 0 {
			r.Troubleshooting = []string{
				"Check that this host is on the same subnet as the gateways",
				"Gateways that answer slowly may need a larger --race-timeout",
				"Raise verbosity with -vv to see why each address was excluded",
			}
		}
	case errors.Is(err, context.Canceled):
		r.Type = ResultWarning
		r.Title = "Scan interrupted"
	default:
		r.Type = ResultFailure
		r.Title = "Scan failed"
		r.Error = err
	}
	return r
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var (
		title lipgloss.Style
		color lipgloss.Color
		label string
	)
	switch r.Type {
	case ResultFailure:
		title, color, label = ErrorTitleStyle, ErrorColor, FailureMarker+"  FAILED"
	case ResultWarning:
		title, color, label = WarningTitleStyle, WarningColor, WarningMarker+"  WARNING"
	default:
		title, color, label = SuccessTitleStyle, SuccessColor, SuccessMarker+"  SUCCESS"
	}

	lines := []string{"", title.Render(fmt.Sprintf(" %s  ─  %s", label, r.Title)), ""}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render(" Error: "+r.Error.Error()), "")
	}

	for _, d := range r.Details {
		keyStyled := ResultKeyStyle.Render(" " + d.Key + ":")
		valueStyled := ResultValueStyle.Render(d.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, MutedStyle.Bold(true).Render(" Troubleshooting:"))
		for _, tip := range r.Troubleshooting {
			lines = append(lines, MutedStyle.Render("   • "+tip))
		}
		lines = append(lines, "")
	}

	return ResultBoxStyle(width, color).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
