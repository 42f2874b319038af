package ipv4

import (
	"fmt"
	"strconv"
	"strings"
)

// maxSplitSubnets bounds Split fan-out so the UI stays responsive.
const maxSplitSubnets = 1024

// Subnet is a network address and prefix length. The network's host
// bits are always zero; construction canonicalizes them.
type Subnet struct {
	network Addr
	bits    int
}

// SubnetOf returns the subnet containing addr at the given prefix
// length. Host bits of addr are masked off.
func SubnetOf(addr Addr, prefixLen int) (Subnet, error) {
	mask, err := NetmaskFromPrefix(prefixLen)
	if err != nil {
		return Subnet{}, err
	}
	return Subnet{network: addr & Addr(mask), bits: prefixLen}, nil
}

// ParseSubnet parses CIDR notation such as "192.168.1.0/24".
// A host address is accepted and canonicalized to its network.
func ParseSubnet(s string) (Subnet, error) {
	base, bitsText, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return Subnet{}, fmt.Errorf("%w: %q is not in CIDR notation", ErrInvalidFormat, s)
	}
	addr, err := ParseAddr(base)
	if err != nil {
		return Subnet{}, err
	}
	prefixLen, err := strconv.Atoi(bitsText)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w: bad prefix length %q in %q", ErrInvalidFormat, bitsText, s)
	}
	return SubnetOf(addr, prefixLen)
}

// MustParseSubnet is ParseSubnet for constants in tests and fixtures.
func MustParseSubnet(s string) Subnet {
	sub, err := ParseSubnet(s)
	if err != nil {
		panic(err)
	}
	return sub
}

// Network returns the network address.
func (s Subnet) Network() Addr { return s.network }

// Bits returns the prefix length.
func (s Subnet) Bits() int { return s.bits }

// Netmask returns the subnet mask.
func (s Subnet) Netmask() Netmask {
	m, _ := NetmaskFromPrefix(s.bits)
	return m
}

// Broadcast returns the last address of the subnet.
func (s Subnet) Broadcast() Addr {
	return s.network | s.Netmask().Wildcard()
}

// TotalAddresses returns 2^(32-bits).
func (s Subnet) TotalAddresses() uint64 {
	return 1 << (32 - s.bits)
}

// Contains reports whether addr is inside the subnet.
func (s Subnet) Contains(addr Addr) bool {
	return addr&Addr(s.Netmask()) == s.network
}

// Overlaps reports whether the address ranges of the two subnets
// intersect. Symmetric and reflexive.
func (s Subnet) Overlaps(other Subnet) bool {
	return s.network <= other.Broadcast() && other.network <= s.Broadcast()
}

// String returns CIDR notation.
func (s Subnet) String() string {
	return fmt.Sprintf("%s/%d", s.network, s.bits)
}

// Info holds the derived facts about a subnet that the calculator
// pages display.
type Info struct {
	Subnet         Subnet
	Network        Addr
	Broadcast      Addr
	Netmask        Netmask
	Wildcard       Addr
	FirstUsable    Addr
	LastUsable     Addr
	TotalAddresses uint64
	UsableHosts    uint64
	NetworkBits    int
	HostBits       int
}

// Info computes the full detail record.
//
// Usable-host convention: total-2 for prefixes up to /30. For /31 and
// /32 usable hosts is 0 and the usable range collapses to
// network..broadcast; the RFC 3021 point-to-point convention is not
// applied.
func (s Subnet) Info() Info {
	info := Info{
		Subnet:         s,
		Network:        s.network,
		Broadcast:      s.Broadcast(),
		Netmask:        s.Netmask(),
		Wildcard:       s.Netmask().Wildcard(),
		TotalAddresses: s.TotalAddresses(),
		NetworkBits:    s.bits,
		HostBits:       32 - s.bits,
	}
	if s.bits <= 30 {
		info.FirstUsable = s.network + 1
		info.LastUsable = info.Broadcast - 1
		info.UsableHosts = info.TotalAddresses - 2
	} else {
		info.FirstUsable = s.network
		info.LastUsable = info.Broadcast
		info.UsableHosts = 0
	}
	return info
}

// Split divides the subnet into 2^(newBits-bits) contiguous children in
// ascending address order.
func (s Subnet) Split(newBits int) ([]Subnet, error) {
	if newBits > 32 {
		return nil, fmt.Errorf("%w: prefix length %d must be in 0-32", ErrOutOfRange, newBits)
	}
	if newBits <= s.bits {
		return nil, fmt.Errorf("%w: new prefix /%d must be longer than /%d", ErrOutOfRange, newBits, s.bits)
	}
	count := 1 << (newBits - s.bits)
	if count > maxSplitSubnets {
		return nil, fmt.Errorf("%w: splitting would create %d subnets, limit is %d", ErrOutOfRange, count, maxSplitSubnets)
	}
	step := Addr(1) << (32 - newBits)
	children := make([]Subnet, 0, count)
	network := s.network
	for i := 0; i < count; i++ {
		children = append(children, Subnet{network: network, bits: newBits})
		network += step
	}
	return children, nil
}

// OverlapReport returns whether two subnets overlap together with a
// human-readable explanation for the overlap checker page.
func OverlapReport(a, b Subnet) (bool, string) {
	if !a.Overlaps(b) {
		gap := uint32(b.network) - uint32(a.network)
		if a.network > b.network {
			gap = uint32(a.network) - uint32(b.network)
		}
		return false, fmt.Sprintf("Networks do not overlap. Network addresses are %d apart.", gap)
	}
	switch {
	case a == b:
		return true, fmt.Sprintf("Networks are identical: %s", a)
	case b.Contains(a.network) && b.bits < a.bits:
		return true, fmt.Sprintf("%s is a subnet of %s", a, b)
	case a.Contains(b.network) && a.bits < b.bits:
		return true, fmt.Sprintf("%s is a subnet of %s", b, a)
	default:
		return true, "Networks partially overlap"
	}
}
