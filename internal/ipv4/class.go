package ipv4

import "fmt"

// Class is the traditional address class by leading-bit pattern.
type Class int

const (
	ClassA Class = iota // 0xxxxxxx
	ClassB              // 10xxxxxx
	ClassC              // 110xxxxx
	ClassD              // 1110xxxx multicast
	ClassE              // 1111xxxx reserved
)

func (c Class) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	case ClassD:
		return "D (Multicast)"
	case ClassE:
		return "E (Reserved)"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Class returns the traditional class of the address.
func (a Addr) Class() Class {
	firstOctet := uint32(a) >> 24
	switch {
	case firstOctet < 128:
		return ClassA
	case firstOctet < 192:
		return ClassB
	case firstOctet < 224:
		return ClassC
	case firstOctet < 240:
		return ClassD
	default:
		return ClassE
	}
}

// ClassReport distinguishes the class suggested by the address range
// from the class suggested by the subnet size, and flags subnets that
// straddle class or private/public boundaries.
type ClassReport struct {
	RangeClass Class
	SizeClass  string // "A", "B", "C", or "Subnet" for /25 and longer
	Display    string
	Valid      bool
	Warnings   []string
}

// Well-known private subnets reused by the classifier display rules.
var (
	subnet10  = MustParseSubnet("10.0.0.0/8")
	subnet172 = MustParseSubnet("172.16.0.0/12")
	subnet192 = MustParseSubnet("192.168.0.0/16")
)

// Classify builds the classification report for a subnet, including
// boundary-violation warnings.
func Classify(s Subnet) ClassReport {
	report := ClassReport{
		RangeClass: s.Network().Class(),
		Valid:      true,
	}

	switch {
	case s.Bits() <= 8:
		report.SizeClass = "A"
	case s.Bits() <= 16:
		report.SizeClass = "B"
	case s.Bits() <= 24:
		report.SizeClass = "C"
	default:
		report.SizeClass = "Subnet"
	}

	// Private/public boundary checks.
	overlapping := 0
	contained := false
	for _, private := range privateRanges {
		if !s.Overlaps(private) {
			continue
		}
		overlapping++
		if private.Contains(s.Network()) && private.Contains(s.Broadcast()) {
			contained = true
		}
	}
	if overlapping > 0 && !contained {
		report.Warnings = append(report.Warnings, "subnet crosses private/public IP boundary")
		report.Valid = false
	}
	if overlapping > 1 {
		report.Warnings = append(report.Warnings, "subnet spans multiple private IP ranges")
		report.Valid = false
	}

	// Class boundary check: supernets must not straddle A/B/C ranges.
	if start, end := s.Network().Class(), s.Broadcast().Class(); start != end {
		report.Warnings = append(report.Warnings, fmt.Sprintf("subnet crosses Class %s/Class %s boundary", start, end))
		report.Valid = false
	}

	report.Display = classDisplay(s, report)
	return report
}

func classDisplay(s Subnet, report ClassReport) string {
	rangeName := report.RangeClass.String()
	switch {
	case !report.Valid:
		return fmt.Sprintf("Invalid: %s-sized subnet crossing boundaries", report.SizeClass)
	case report.RangeClass == ClassD || report.RangeClass == ClassE:
		return "Class " + rangeName
	case s == subnet10:
		return "Class A (Standard private range)"
	case s == subnet172:
		return "Class B (Standard private range)"
	case s == subnet192:
		return "Class B-sized (Standard private range)"
	case rangeName == report.SizeClass:
		return "Class " + rangeName
	default:
		return fmt.Sprintf("Class %s-sized inside Class %s range", report.SizeClass, rangeName)
	}
}
