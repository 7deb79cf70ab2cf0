// Package iprange produces the ordered sequence of IPv4 addresses a scan walks.
//
// A Range holds inclusive bounds and yields its addresses lazily, so a /8
// costs no more memory than a /24:
//
//	rng, err := iprange.Parse("192.168.1.1..192.168.1.20")
//	if err != nil {
//	    return err
//	}
//	for addr := range rng.All() {
//	    fmt.Println(addr)
//	}
//
// A range whose start is above its end is empty rather than an error.
package iprange
