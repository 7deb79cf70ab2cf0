package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/netip"
	"strings"

	"github.com/rtls-ctl/gwscan/internal/hwaddr"
)

const (
	// G1StatusPath is the status endpoint of G1 gateways
	G1StatusPath = "/cgi-bin/cgic-statusget"

	// G1Authorization is the fixed credential G1 gateways accept ("admin" with an empty password)
	G1Authorization = "Basic YWRtaW46"

	// G1StatusRequest is the body posted to the status endpoint
	G1StatusRequest = `{"header":{"version":1}}`

	g1SuccessCode = "200"
)

// Exact key paths of the status reply
var (
	g1CodePath = []string{"header", "code"}
	g1MACPath  = []string{"body", "gateway", "status", "mac"}
)

// G1Prober detects G1 gateways through their authenticated status endpoint
type G1Prober struct {
	// Client performs the request; the context passed to Probe bounds it
	Client *http.Client

	// Port is the HTTP port of the gateway
	Port uint16
}

// NewG1Prober creates a G1 prober with its own probe HTTP client
func NewG1Prober(port uint16) *G1Prober {
	return &G1Prober{Client: NewHTTPClient(), Port: port}
}

// Gateway implements Prober
func (p *G1Prober) Gateway() GatewayType { return GatewayG1 }

// Probe posts the status request and checks header.code and body.gateway.status.mac
func (p *G1Prober) Probe(ctx context.Context, addr netip.Addr) (Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL(addr, p.Port)+G1StatusPath, strings.NewReader(G1StatusRequest))
	if err != nil {
		return Detection{}, NewMismatchError(GatewayG1, addr, "failed to create status request", err)
	}
	req.Header.Set("Authorization", G1Authorization)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return Detection{}, newRequestError(GatewayG1, addr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	status, err := decodeObject(resp)
	if err != nil {
		return Detection{}, NewMismatchError(GatewayG1, addr, "invalid status response", err)
	}

	code, _ := lookup(status, g1CodePath...)
	if string(code) != g1SuccessCode {
		return Detection{}, NewMismatchError(GatewayG1, addr,
			"unexpected header code "+codeOrMissing(code), nil)
	}

	raw, ok := lookup(status, g1MACPath...)
	if !ok {
		return Detection{}, NewMismatchError(GatewayG1, addr, "mac not found in response", nil)
	}
	text, ok := stringValue(raw)
	if !ok {
		return Detection{}, NewMismatchError(GatewayG1, addr, "mac is not a string", nil)
	}

	mac, err := hwaddr.Parse(text)
	if err != nil {
		return Detection{}, NewMalformedAddressError(GatewayG1, addr, err)
	}

	return Detection{IP: addr, Gateway: GatewayG1, MAC: mac}, nil
}

func codeOrMissing(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "(missing)"
	}
	return string(raw)
}
