package probe

import (
	"context"
	"net/http"
	"net/netip"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
)

// MG3HelloPath is the unauthenticated identification endpoint of MG3 gateways
const MG3HelloPath = "/hello"

// MG3Prober detects MG3 gateways through their /hello endpoint
type MG3Prober struct {
	// Client performs the request; the context passed to Probe bounds it
	Client *http.Client

	// Port is the HTTP port of the gateway
	Port uint16
}

// NewMG3Prober creates an MG3 prober with its own probe HTTP client
func NewMG3Prober(port uint16) *MG3Prober {
	return &MG3Prober{Client: NewHTTPClient(), Port: port}
}

// Gateway implements Prober
func (p *MG3Prober) Gateway() GatewayType { return GatewayMG3 }

// Probe fetches /hello and checks the mac field
func (p *MG3Prober) Probe(ctx context.Context, addr netip.Addr) (Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL(addr, p.Port)+MG3HelloPath, nil)
	if err != nil {
		return Detection{}, NewMismatchError(GatewayMG3, addr, "failed to create hello request", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Detection{}, newRequestError(GatewayMG3, addr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	hello, err := decodeObject(resp)
	if err != nil {
		return Detection{}, NewMismatchError(GatewayMG3, addr, "invalid hello response", err)
	}

	raw, ok := lookup(hello, "mac")
	if !ok {
		return Detection{}, NewMismatchError(GatewayMG3, addr, "mac not found in response", nil)
	}
	text, ok := stringValue(raw)
	if !ok {
		return Detection{}, NewMismatchError(GatewayMG3, addr, "mac is not a string", nil)
	}

	mac, err := hwaddr.Parse(text)
	if err != nil {
		return Detection{}, NewMalformedAddressError(GatewayMG3, addr, err)
	}

	return Detection{IP: addr, Gateway: GatewayMG3, MAC: mac}, nil
}

// DefaultProbers returns one prober per supported gateway family
func DefaultProbers(port uint16) []Prober {
	client := NewHTTPClient()
	return []Prober{
		&G1Prober{Client: client, Port: port},
		&MG3Prober{Client: client, Port: port},
	}
}
