package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"time"
)

// MaxResponseBytes caps how much of a response body a prober reads
const MaxResponseBytes = 1 << 20

// NewHTTPClient returns a client configured for gateway probing.
// Keep-alives are off since every host is contacted once, and proxies are
// ignored because targets are on the local network.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: nil,
			DialContext: (&net.Dialer{
				Timeout: DefaultConnectTimeout,
			}).DialContext,
			DisableKeepAlives:     true,
			ResponseHeaderTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// baseURL returns "http://<addr>" or "http://<addr>:<port>" for non-default ports
func baseURL(addr netip.Addr, port uint16) string {
	if port == 0 || port == DefaultPort {
		return "http://" + addr.String()
	}
	return "http://" + netip.AddrPortFrom(addr, port).String()
}

// decodeObject reads a bounded response body that must be a JSON object.
// Keys are kept verbatim so lookups match them exactly.
func decodeObject(resp *http.Response) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return obj, nil
}

// lookup follows path through nested objects, matching each key exactly.
// It reports false if a key is absent or an intermediate value is not an object.
func lookup(obj map[string]json.RawMessage, path ...string) (json.RawMessage, bool) {
	for i, key := range path {
		value, ok := obj[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return value, true
		}
		obj = nil
		if err := json.Unmarshal(value, &obj); err != nil || obj == nil {
			return nil, false
		}
	}
	return nil, false
}

// stringValue decodes raw only if it is a JSON string
func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
