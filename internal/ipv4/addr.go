package ipv4

import (
	"fmt"
	"strconv"
	"strings"
)

// Addr is a 32-bit IPv4 address. The zero value is 0.0.0.0.
type Addr uint32

// ParseAddr parses a dotted-decimal IPv4 address. The input must be
// exactly four dot-separated decimal integers, each in [0,255].
func ParseAddr(s string) (Addr, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: address %q must have four octets", ErrInvalidFormat, s)
	}
	var value uint32
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return 0, fmt.Errorf("%w: bad octet %q in %q", ErrInvalidFormat, part, s)
		}
		octet, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: bad octet %q in %q", ErrInvalidFormat, part, s)
		}
		if octet < 0 || octet > 255 {
			return 0, fmt.Errorf("%w: octet %d out of range 0-255 in %q", ErrInvalidFormat, octet, s)
		}
		value = value<<8 | uint32(octet)
	}
	return Addr(value), nil
}

// MustParseAddr is ParseAddr for constants in tests and fixtures.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the canonical dotted-decimal form.
func (a Addr) String() string {
	o := a.Octets()
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3])
}

// Octets returns the four octets, most significant first.
func (a Addr) Octets() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

// BinaryString returns the address as 32 '0'/'1' characters.
func (a Addr) BinaryString() string {
	return fmt.Sprintf("%032b", uint32(a))
}

// DottedBinaryString returns the binary form grouped by octet,
// e.g. "11000000.10101000.00000001.01100100".
func (a Addr) DottedBinaryString() string {
	o := a.Octets()
	return fmt.Sprintf("%08b.%08b.%08b.%08b", o[0], o[1], o[2], o[3])
}

// ParseBinary parses a 32-bit binary string. Octets may be separated
// by dots or spaces.
func ParseBinary(s string) (Addr, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if len(clean) != 32 {
		return 0, fmt.Errorf("%w: binary address must have 32 bits, got %d", ErrInvalidFormat, len(clean))
	}
	var value uint32
	for _, r := range clean {
		switch r {
		case '0':
			value <<= 1
		case '1':
			value = value<<1 | 1
		default:
			return 0, fmt.Errorf("%w: binary address may only contain '0' and '1', got %q", ErrInvalidFormat, r)
		}
	}
	return Addr(value), nil
}

// Private IPv4 ranges per RFC 1918.
var privateRanges = []Subnet{
	{network: 0x0A000000, bits: 8},  // 10.0.0.0/8
	{network: 0xAC100000, bits: 12}, // 172.16.0.0/12
	{network: 0xC0A80000, bits: 16}, // 192.168.0.0/16
}

// IsPrivate reports whether the address falls in 10.0.0.0/8,
// 172.16.0.0/12, or 192.168.0.0/16.
func (a Addr) IsPrivate() bool {
	for _, r := range privateRanges {
		if r.Contains(a) {
			return true
		}
	}
	return false
}
