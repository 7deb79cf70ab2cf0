package probe

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
)

// GatewayType identifies which fingerprint matched a gateway
type GatewayType int

const (
	// GatewayG1 is matched by the authenticated status endpoint
	GatewayG1 GatewayType = iota + 1
	// GatewayMG3 is matched by the /hello endpoint
	GatewayMG3
)

// String returns the gateway family name
func (g GatewayType) String() string {
	switch g {
	case GatewayG1:
		return "G1"
	case GatewayMG3:
		return "MG3"
	default:
		return fmt.Sprintf("GatewayType(%d)", int(g))
	}
}

// MarshalText implements encoding.TextMarshaler
func (g GatewayType) MarshalText() ([]byte, error) {
	switch g {
	case GatewayG1, GatewayMG3:
		return []byte(g.String()), nil
	default:
		return nil, fmt.Errorf("unknown gateway type %d", int(g))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *GatewayType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "G1":
		*g = GatewayG1
	case "MG3":
		*g = GatewayMG3
	default:
		return fmt.Errorf("unknown gateway type %q", text)
	}
	return nil
}

// Detection is a gateway found at an address
type Detection struct {
	IP      netip.Addr  `json:"ip"`
	Gateway GatewayType `json:"gateway"`
	MAC     hwaddr.MAC  `json:"mac"`
}

// String returns a human-readable representation of the detection
func (d Detection) String() string {
	return fmt.Sprintf("%s gateway %s at %s", d.Gateway, d.MAC, d.IP)
}

// Prober fingerprints a single gateway family
type Prober interface {
	// Gateway returns the family this prober detects
	Gateway() GatewayType

	// Probe checks addr and returns a detection if it matches
	Probe(ctx context.Context, addr netip.Addr) (Detection, error)
}

// Reachability gates protocol probing on a host being reachable
type Reachability interface {
	Check(ctx context.Context, addr netip.Addr) error
}
