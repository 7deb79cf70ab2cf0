// Package probe implements the per-address checks used to fingerprint gateways.
//
// Two stages run against every candidate address:
//
//  1. Reachability: a plain TCP connect to the HTTP port. Hosts that do not
//     accept the connection are dropped without any HTTP traffic.
//  2. Protocol fingerprinting: one HTTP request per gateway family. Each
//     Prober returns a Detection on success or a *ScanError describing why
//     the address did not match.
//
// # Gateway Families
//
//   - G1: POST /cgi-bin/cgic-statusget with a fixed Basic credential. The
//     response must carry header.code == 200 and body.gateway.status.mac.
//   - MG3: GET /hello. The response must carry a "mac" string.
//
// # Usage Example
//
//	reach := probe.NewTCPReachability(80, 3*time.Second)
//	if err := reach.Check(ctx, addr); err != nil {
//	    return err // not listening
//	}
//
//	det, err := probe.NewMG3Prober(80).Probe(ctx, addr)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(det.Gateway, det.MAC)
//
// # Cancellation
//
// Every check honours its context. Cancelling the context aborts the dial or
// the in-flight HTTP request and releases the connection.
package probe
