package iprange

import (
	"fmt"
	"iter"
	"net"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// Separator splits the start and end address in the textual range form
const Separator = ".."

// Range is an inclusive range of IPv4 addresses
type Range struct {
	r netipx.IPRange
}

// New creates a range from start to end, both inclusive.
// Both addresses must be IPv4. If start > end the range is empty.
func New(start, end netip.Addr) (Range, error) {
	if !start.Is4() {
		return Range{}, fmt.Errorf("start address %s is not IPv4", start)
	}
	if !end.Is4() {
		return Range{}, fmt.Errorf("end address %s is not IPv4", end)
	}
	return Range{r: netipx.IPRangeFrom(start, end)}, nil
}

// Parse reads a range in the form "192.168.1.1..192.168.1.20"
func Parse(s string) (Range, error) {
	first, last, ok := strings.Cut(strings.TrimSpace(s), Separator)
	if !ok {
		return Range{}, &ParseError{Input: s, Reason: "range argument must contain '..'"}
	}

	start, err := netip.ParseAddr(first)
	if err != nil || !start.Is4() {
		return Range{}, &ParseError{Input: s, Reason: "error parsing start ip address, expected ipv4 address like '192.168.1.1'", Err: err}
	}
	end, err := netip.ParseAddr(last)
	if err != nil || !end.Is4() {
		return Range{}, &ParseError{Input: s, Reason: "error parsing end ip address, expected ipv4 address like '192.168.1.2'", Err: err}
	}

	return New(start, end)
}

// FromPrefix returns the range covering every address of an IPv4 prefix
func FromPrefix(p netip.Prefix) (Range, error) {
	if !p.Addr().Is4() {
		return Range{}, fmt.Errorf("prefix %s is not IPv4", p)
	}
	return Range{r: netipx.RangeOfPrefix(p.Masked())}, nil
}

// Start returns the first address of the range
func (r Range) Start() netip.Addr { return r.r.From() }

// End returns the last address of the range
func (r Range) End() netip.Addr { return r.r.To() }

// Empty reports whether the range yields no addresses
func (r Range) Empty() bool {
	return !r.r.IsValid()
}

// Len returns the number of addresses in the range
func (r Range) Len() uint64 {
	if r.Empty() {
		return 0
	}
	return uint64(toUint32(r.End())) - uint64(toUint32(r.Start())) + 1
}

// All yields every address from start to end in ascending order.
// Each call starts a fresh walk.
func (r Range) All() iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if r.Empty() {
			return
		}
		last := r.End()
		for addr := r.Start(); ; addr = addr.Next() {
			if !yield(addr) || addr == last {
				return
			}
		}
	}
}

// String returns the range in "start..end" form
func (r Range) String() string {
	return r.Start().String() + Separator + r.End().String()
}

// ParseError describes a malformed range argument
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid range %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid range %q: %s", e.Input, e.Reason)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

func toUint32(a netip.Addr) uint32 {
	b := a.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// addrFromIP converts a net.IP to a netip.Addr, unmapping IPv4-in-IPv6
func addrFromIP(ip net.IP) (netip.Addr, bool) {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
