// Package hwaddr provides the 6-byte hardware (MAC) address value used to
// validate and normalize gateway detections.
//
// # Text Form
//
// The canonical form is twelve uppercase hexadecimal digits grouped in pairs
// and separated by colons:
//
//	AA:BB:CC:DD:EE:FF
//
// Parse accepts the canonical form as well as the bare form reported by some
// gateways ("aabbccddeeff"), in any letter case:
//
//	mac, err := hwaddr.Parse("c4:be:84:74:86:37")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(mac) // C4:BE:84:74:86:37
//
// # Equality
//
// MAC is an array type, so two values holding the same bytes compare equal
// with == and can be used as map keys.
package hwaddr
