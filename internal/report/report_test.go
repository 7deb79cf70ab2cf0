package report

import (
	"bytes"
	"encoding/json"
	"net/netip"
	"strings"
	"testing"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
	"github.com/rtls-ctl/gwscan/internal/probe"
)

type fakeVendors map[hwaddr.MAC]string

func (f fakeVendors) Lookup(mac hwaddr.MAC) string {
	return f[mac]
}

func sampleDetections() []probe.Detection {
	return []probe.Detection{
		{
			IP:      netip.MustParseAddr("192.168.1.20"),
			Gateway: probe.GatewayMG3,
			MAC:     hwaddr.MustParse("AA:BB:CC:DD:EE:FF"),
		},
		{
			IP:      netip.MustParseAddr("192.168.1.3"),
			Gateway: probe.GatewayG1,
			MAC:     hwaddr.MustParse("00:03:93:01:02:03"),
		},
	}
}

func TestWrite_JSONEmpty(t *testing.T) {
	tests := []struct {
		name       string
		detections []probe.Detection
	}{
		{name: "nil", detections: nil},
		{name: "empty", detections: []probe.Detection{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.detections, FormatJSON, nil); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != "[]" {
				t.Errorf("Write() = %q, want []", got)
			}
		})
	}
}

func TestWrite_JSONSortedByAddress(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDetections(), FormatJSON, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}

	want := []map[string]string{
		{"ip": "192.168.1.3", "gateway": "G1", "mac": "00:03:93:01:02:03"},
		{"ip": "192.168.1.20", "gateway": "MG3", "mac": "AA:BB:CC:DD:EE:FF"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		for key, value := range want[i] {
			if got[i][key] != value {
				t.Errorf("record %d %s = %q, want %q", i, key, got[i][key], value)
			}
		}
		if _, ok := got[i]["vendor"]; ok {
			t.Errorf("record %d has a vendor key without a lookup", i)
		}
	}
}

func TestWrite_JSONWithVendor(t *testing.T) {
	vendors := fakeVendors{hwaddr.MustParse("00:03:93:01:02:03"): "Apple, Inc."}

	var buf bytes.Buffer
	if err := Write(&buf, sampleDetections(), FormatJSON, vendors); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if got[0]["vendor"] != "Apple, Inc." {
		t.Errorf("vendor = %q, want Apple, Inc.", got[0]["vendor"])
	}
	if _, ok := got[1]["vendor"]; ok {
		t.Error("unknown vendor should be omitted")
	}
}

func TestWrite_Table(t *testing.T) {
	vendors := fakeVendors{hwaddr.MustParse("00:03:93:01:02:03"): "Apple, Inc."}

	var buf bytes.Buffer
	if err := Write(&buf, sampleDetections(), FormatTable, vendors); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"IP", "VENDOR", "192.168.1.3", "MG3", "AA:BB:CC:DD:EE:FF", "Apple, Inc.", "2 gateway(s) found"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "192.168.1.3") > strings.Index(out, "192.168.1.20") {
		t.Error("table rows should be sorted by address")
	}
}

func TestWrite_TableWithoutVendor(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDetections(), FormatTable, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Contains(buf.String(), "VENDOR") {
		t.Error("vendor column should be hidden without a lookup")
	}
}

func TestWrite_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatTable, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No gateways found.") {
		t.Errorf("Write() = %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "xml", nil); err == nil {
		t.Error("Write() with an unknown format should fail")
	}
}

func TestRecords_DoesNotReorderInput(t *testing.T) {
	detections := sampleDetections()
	first := detections[0].IP

	Records(detections, nil)

	if detections[0].IP != first {
		t.Error("Records() modified its input")
	}
}
