// Package scanner drives the gateway discovery pipeline over an address range.
//
// Each address passes through two stages:
//
//	reachability (TCP connect) ──ok──▶ race(G1, MG3, deadline) ──won──▶ Detection
//	        │                                   │
//	        └── excluded                        └── timed out: excluded
//
// # Scheduling
//
// Scanner walks the range lazily and hands addresses to a fixed-size ants
// worker pool, so at most Concurrency pipelines run at once. Results are
// gathered in completion order; callers should not rely on any ordering.
//
// # Racing
//
// Race starts every prober at once under a shared deadline. The first success
// wins and cancels the others. A failing prober does not end the race: its
// failure says nothing about the other gateway family, so the race keeps
// waiting until another prober succeeds or the deadline fires.
//
// # Usage Example
//
//	s := scanner.New(scanner.DefaultConfig(), logger)
//	detections, err := s.Scan(ctx, rng)
//	if err != nil {
//	    return err
//	}
//	for _, d := range detections {
//	    fmt.Println(d)
//	}
//
// # Errors
//
// Per-address failures never abort a scan. They are logged at debug level
// and the address is left out of the result.
package scanner
