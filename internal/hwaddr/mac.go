package hwaddr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Size is the number of bytes in a hardware address
const Size = 6

var (
	// ErrInvalidLength is returned when the input does not decode to exactly Size bytes
	ErrInvalidLength = errors.New("hardware address must be 6 bytes")

	// ErrInvalidHex is returned when the input contains a non-hexadecimal character
	ErrInvalidHex = errors.New("hardware address contains non-hexadecimal characters")
)

// MAC is a 6-byte hardware address
type MAC [Size]byte

// Parse decodes a hardware address with or without ':' separators.
// Letter case is ignored. A non-hex character is reported as ErrInvalidHex
// even when the length is also wrong.
func Parse(s string) (MAC, error) {
	var m MAC

	digits := strings.ReplaceAll(s, ":", "")
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return m, fmt.Errorf("parse %q: %w", s, ErrInvalidHex)
		}
	}
	if len(digits) != 2*Size {
		return m, fmt.Errorf("parse %q: %w", s, ErrInvalidLength)
	}

	decoded, err := hex.DecodeString(digits)
	if err != nil {
		return m, fmt.Errorf("parse %q: %w", s, ErrInvalidHex)
	}

	copy(m[:], decoded)
	return m, nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) MAC {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the canonical form, e.g. "AA:BB:CC:DD:EE:FF"
func (m MAC) String() string {
	encoded := strings.ToUpper(hex.EncodeToString(m[:]))

	var b strings.Builder
	b.Grow(3*Size - 1)
	for i := 0; i < len(encoded); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(encoded[i : i+2])
	}
	return b.String()
}

// IsZero reports whether all bytes are zero
func (m MAC) IsZero() bool {
	return m == MAC{}
}

// MarshalText implements encoding.TextMarshaler
func (m MAC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *MAC) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
