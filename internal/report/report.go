package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
	"github.com/rtls-ctl/gwscan/internal/probe"
	"github.com/rtls-ctl/gwscan/internal/ui"
)

// Supported output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Formats lists every format Write accepts
var Formats = []string{FormatJSON, FormatTable}

// VendorLookup resolves a hardware address to a manufacturer name
type VendorLookup interface {
	Lookup(mac hwaddr.MAC) string
}

// Record is one detection as written to a report
type Record struct {
	probe.Detection
	Vendor string `json:"vendor,omitempty"`
}

// Records sorts detections by address and attaches vendor names when a
// lookup is given. The input slice is not modified.
func Records(detections []probe.Detection, vendors VendorLookup) []Record {
	sorted := slices.Clone(detections)
	slices.SortFunc(sorted, func(a, b probe.Detection) int {
		return a.IP.Compare(b.IP)
	})

	records := make([]Record, len(sorted))
	for i, det := range sorted {
		records[i] = Record{Detection: det}
		if vendors != nil {
			records[i].Vendor = vendors.Lookup(det.MAC)
		}
	}
	return records
}

// Write renders detections to w in the given format
func Write(w io.Writer, detections []probe.Detection, format string, vendors VendorLookup) error {
	records := Records(detections, vendors)

	switch format {
	case FormatJSON, "":
		return writeJSON(w, records)
	case FormatTable:
		return writeTable(w, records, vendors != nil)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, records []Record, withVendor bool) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, ui.MutedStyle.Render("No gateways found."))
		return err
	}

	headers := []string{"IP", "GATEWAY", "MAC"}
	if withVendor {
		headers = append(headers, "VENDOR")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.TableHeaderStyle
			}
			return ui.TableCellStyle
		})

	for _, rec := range records {
		row := []string{rec.IP.String(), rec.Gateway.String(), rec.MAC.String()}
		if withVendor {
			vendor := rec.Vendor
			if vendor == "" {
				vendor = "-"
			}
			row = append(row, vendor)
		}
		t.Row(row...)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	_, err := fmt.Fprintln(w, ui.MutedStyle.Render(fmt.Sprintf("%d gateway(s) found", len(records))))
	return err
}
