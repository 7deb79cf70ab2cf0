package iprange

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// ErrNoLocalIPv4 is returned when the host has no usable IPv4 address
var ErrNoLocalIPv4 = errors.New("cannot extract a local ipv4 address, please specify start and end ip range")

// probeTarget is only used to select the outbound interface. UDP "dial"
// sends no packets.
const probeTarget = "8.8.8.8:80"

// LocalIPv4 returns the IPv4 address of the interface used for outbound traffic
func LocalIPv4() (netip.Addr, error) {
	conn, err := net.Dial("udp", probeTarget)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error getting local ip address: %w", err)
	}
	defer func() { _ = conn.Close() }()

	udpAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return netip.Addr{}, ErrNoLocalIPv4
	}

	addr, ok := addrFromIP(udpAddr.IP)
	if !ok || !addr.Is4() {
		return netip.Addr{}, ErrNoLocalIPv4
	}
	return addr, nil
}

// AroundHost returns x.y.z.1..x.y.z.255 for a host address x.y.z.w
func AroundHost(host netip.Addr) (Range, error) {
	if !host.Is4() {
		return Range{}, ErrNoLocalIPv4
	}
	b := host.As4()
	start := netip.AddrFrom4([4]byte{b[0], b[1], b[2], 1})
	end := netip.AddrFrom4([4]byte{b[0], b[1], b[2], 255})
	return New(start, end)
}

// Default derives the scan range from the local IPv4 address
func Default() (Range, error) {
	host, err := LocalIPv4()
	if err != nil {
		return Range{}, err
	}
	return AroundHost(host)
}
