package probe

import (
	"context"
	"net"
	"net/netip"
	"time"
)

const (
	// DefaultPort is the HTTP port gateways listen on
	DefaultPort = 80

	// DefaultConnectTimeout bounds a single reachability attempt
	DefaultConnectTimeout = 3 * time.Second
)

// TCPReachability checks that a host accepts TCP connections on Port
type TCPReachability struct {
	// Port is the TCP port to connect to
	Port uint16

	// Timeout bounds each connection attempt
	Timeout time.Duration

	dialer net.Dialer
}

// NewTCPReachability creates a reachability check for the given port and timeout
func NewTCPReachability(port uint16, timeout time.Duration) *TCPReachability {
	if port == 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return &TCPReachability{Port: port, Timeout: timeout}
}

// Check connects to addr and closes the connection immediately.
// Any failure yields an ErrTypeConnect *ScanError.
func (r *TCPReachability) Check(ctx context.Context, addr netip.Addr) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	conn, err := r.dialer.DialContext(ctx, "tcp", netip.AddrPortFrom(addr, r.Port).String())
	if err != nil {
		return ClassifyDialError(err, addr)
	}
	_ = conn.Close()
	return nil
}
