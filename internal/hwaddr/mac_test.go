package hwaddr

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	want := MAC{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	tests := []struct {
		name    string
		input   string
		want    MAC
		wantErr error
	}{
		{name: "canonical", input: "AA:BB:CC:DD:EE:FF", want: want},
		{name: "lowercase with colons", input: "aa:bb:cc:dd:ee:ff", want: want},
		{name: "bare lowercase", input: "aabbccddeeff", want: want},
		{name: "bare mixed case", input: "AaBbCcDdEeFf", want: want},
		{name: "real device", input: "C4:BE:84:74:86:37", want: MAC{0xC4, 0xBE, 0x84, 0x74, 0x86, 0x37}},
		{name: "too short", input: "AA:BB:CC:DD:EE", wantErr: ErrInvalidLength},
		{name: "too long", input: "AA:BB:CC:DD:EE:FF:00", wantErr: ErrInvalidLength},
		{name: "odd digits", input: "aabbccddeef", wantErr: ErrInvalidLength},
		{name: "empty", input: "", wantErr: ErrInvalidLength},
		{name: "non hex", input: "GG:BB:CC:DD:EE:FF", wantErr: ErrInvalidHex},
		{name: "dash separators", input: "AA-BB-CC-DD-EE", wantErr: ErrInvalidHex},
		{name: "dash separators full length", input: "AA-BB-CC-DD-EE-FF", wantErr: ErrInvalidHex},
		{name: "odd length non hex", input: "zzzzzzzzzzz", wantErr: ErrInvalidHex},
		{name: "short non hex", input: "zz", wantErr: ErrInvalidHex},
		{name: "long non hex", input: "AA:BB:CC:DD:EE:FF:GG", wantErr: ErrInvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMAC_String(t *testing.T) {
	m := MAC{0x0a, 0x1b, 0x2c, 0x3d, 0x4e, 0x5f}
	if got := m.String(); got != "0A:1B:2C:3D:4E:5F" {
		t.Errorf("String() = %q, want 0A:1B:2C:3D:4E:5F", got)
	}

	if got := (MAC{}).String(); got != "00:00:00:00:00:00" {
		t.Errorf("zero String() = %q", got)
	}
}

func TestMAC_RoundTrip(t *testing.T) {
	// walk every byte value through every position
	for pos := 0; pos < Size; pos++ {
		for v := 0; v < 256; v++ {
			var m MAC
			m[pos] = byte(v)
			m[(pos+1)%Size] = byte(255 - v)

			got, err := Parse(m.String())
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", m.String(), err)
			}
			if got != m {
				t.Fatalf("round trip of %v gave %v", m, got)
			}
		}
	}
}

func TestParse_CaseAndSeparatorEquivalence(t *testing.T) {
	inputs := []string{"c4be84748637", "C4BE84748637", "c4:be:84:74:86:37", "C4:bE:84:74:86:37"}

	first := MustParse(inputs[0])
	for _, in := range inputs[1:] {
		if got := MustParse(in); got != first {
			t.Errorf("Parse(%q) = %v, want %v", in, got, first)
		}
	}
	if first.String() != strings.ToUpper("c4:be:84:74:86:37") {
		t.Errorf("canonical form = %q", first.String())
	}
}

func TestMAC_Equality(t *testing.T) {
	seen := map[MAC]int{}
	seen[MustParse("aabbccddeeff")]++
	seen[MustParse("AA:BB:CC:DD:EE:FF")]++

	if len(seen) != 1 {
		t.Errorf("equal addresses produced %d map keys, want 1", len(seen))
	}
}

func TestMAC_JSON(t *testing.T) {
	type record struct {
		MAC MAC `json:"mac"`
	}

	data, err := json.Marshal(record{MAC: MustParse("aabbccddeeff")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"mac":"AA:BB:CC:DD:EE:FF"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var r record
	if err := json.Unmarshal([]byte(`{"mac":"01:02:03:04:05:06"}`), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.MAC != (MAC{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Unmarshal() = %v", r.MAC)
	}

	if err := json.Unmarshal([]byte(`{"mac":"nope"}`), &r); err == nil {
		t.Error("Unmarshal() of invalid address should fail")
	}
}

func TestMAC_IsZero(t *testing.T) {
	if !(MAC{}).IsZero() {
		t.Error("zero MAC should report IsZero")
	}
	if MustParse("000000000001").IsZero() {
		t.Error("non-zero MAC should not report IsZero")
	}
}
