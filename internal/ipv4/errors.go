package ipv4

import "errors"

// Sentinel errors for input validation. All failures are detected at the
// point of parsing and wrapped with context; match with errors.Is.
var (
	// ErrInvalidFormat reports malformed dotted-decimal or binary input.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange reports a prefix length outside [0,32] or a split
	// target that does not shrink the subnet.
	ErrOutOfRange = errors.New("out of range")

	// ErrNonContiguousMask reports a netmask whose bit pattern is not a
	// run of leading ones.
	ErrNonContiguousMask = errors.New("non-contiguous mask")
)
