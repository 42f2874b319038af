package ipv4

import (
	"fmt"
	"math/bits"
)

// Netmask is a subnet mask: a contiguous run of leading one-bits.
// Values are only constructed through NetmaskFromPrefix and ParseNetmask,
// which enforce contiguity.
type Netmask uint32

// NetmaskFromPrefix converts a CIDR prefix length to a netmask.
func NetmaskFromPrefix(prefixLen int) (Netmask, error) {
	if prefixLen < 0 || prefixLen > 32 {
		return 0, fmt.Errorf("%w: prefix length %d must be in 0-32", ErrOutOfRange, prefixLen)
	}
	if prefixLen == 0 {
		return 0, nil
	}
	return Netmask(^uint32(0) << (32 - prefixLen)), nil
}

// ParseNetmask parses a dotted-decimal netmask, rejecting any bit
// pattern that is not a prefix of contiguous leading ones
// (e.g. 255.0.255.0).
func ParseNetmask(s string) (Netmask, error) {
	addr, err := ParseAddr(s)
	if err != nil {
		return 0, err
	}
	m := uint32(addr)
	ones := bits.LeadingZeros32(^m)
	expected, _ := NetmaskFromPrefix(ones)
	if uint32(expected) != m {
		return 0, fmt.Errorf("%w: %s is not a valid prefix mask", ErrNonContiguousMask, s)
	}
	return Netmask(m), nil
}

// Prefix returns the CIDR prefix length of the mask.
func (m Netmask) Prefix() int {
	return bits.OnesCount32(uint32(m))
}

// Wildcard returns the inverse (host) mask, e.g. 0.0.0.255 for /24.
func (m Netmask) Wildcard() Addr {
	return Addr(^uint32(m))
}

// String returns the dotted-decimal form.
func (m Netmask) String() string {
	return Addr(m).String()
}
