package ipv4

import (
	"strings"
	"testing"
)

func TestAddrClass(t *testing.T) {
	tests := []struct {
		addr string
		want Class
	}{
		{"0.0.0.1", ClassA},
		{"10.0.0.1", ClassA},
		{"127.255.255.255", ClassA},
		{"128.0.0.1", ClassB},
		{"172.16.0.1", ClassB},
		{"191.255.255.255", ClassB},
		{"192.0.0.1", ClassC},
		{"223.255.255.255", ClassC},
		{"224.0.0.1", ClassD},
		{"239.255.255.255", ClassD},
		{"240.0.0.1", ClassE},
		{"255.255.255.255", ClassE},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := MustParseAddr(tt.addr).Class(); got != tt.want {
				t.Errorf("Class(%s) = %s, want %s", tt.addr, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		cidr        string
		wantRange   Class
		wantSize    string
		wantValid   bool
		wantDisplay string
	}{
		{"matching_c", "192.169.1.0/24", ClassC, "C", true, "Class C"},
		{"c_sized_in_b_range", "172.16.5.0/24", ClassB, "C", true, "Class C-sized inside Class B range"},
		{"standard_10", "10.0.0.0/8", ClassA, "A", true, "Class A (Standard private range)"},
		{"standard_172", "172.16.0.0/12", ClassB, "B", true, "Class B (Standard private range)"},
		{"standard_192", "192.168.0.0/16", ClassC, "B", true, "Class B-sized (Standard private range)"},
		{"small_subnet", "192.169.1.0/26", ClassC, "Subnet", true, "Class Subnet-sized inside Class C range"},
		{"multicast", "224.0.0.0/4", ClassD, "A", true, "Class D (Multicast)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Classify(MustParseSubnet(tt.cidr))
			if report.RangeClass != tt.wantRange {
				t.Errorf("RangeClass = %s, want %s", report.RangeClass, tt.wantRange)
			}
			if report.SizeClass != tt.wantSize {
				t.Errorf("SizeClass = %q, want %q", report.SizeClass, tt.wantSize)
			}
			if report.Valid != tt.wantValid {
				t.Errorf("Valid = %v (warnings: %v)", report.Valid, report.Warnings)
			}
			if report.Display != tt.wantDisplay {
				t.Errorf("Display = %q, want %q", report.Display, tt.wantDisplay)
			}
		})
	}
}

func TestClassifyBoundaryViolations(t *testing.T) {
	// 10.0.0.0/7 covers 10.0.0.0-11.255.255.255: crosses out of the
	// 10/8 private range.
	report := Classify(MustParseSubnet("10.0.0.0/7"))
	if report.Valid {
		t.Fatal("expected boundary violation for 10.0.0.0/7")
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "private/public") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected private/public warning, got %v", report.Warnings)
	}
	if !strings.Contains(report.Display, "Invalid") {
		t.Errorf("Display = %q", report.Display)
	}

	// 126.0.0.0/7 covers 126-127, all class A and all public: valid.
	report = Classify(MustParseSubnet("126.0.0.0/7"))
	if !report.Valid {
		t.Errorf("126.0.0.0/7 should be valid, got warnings %v", report.Warnings)
	}
}

func TestClassifyCrossClassBoundary(t *testing.T) {
	// 0.0.0.0/0 spans every class and every private range.
	report := Classify(MustParseSubnet("0.0.0.0/0"))
	if report.Valid {
		t.Fatal("expected boundary violations for 0.0.0.0/0")
	}
	foundClass, foundMultiple := false, false
	for _, w := range report.Warnings {
		if strings.Contains(w, "Class") {
			foundClass = true
		}
		if strings.Contains(w, "multiple private") {
			foundMultiple = true
		}
	}
	if !foundClass || !foundMultiple {
		t.Errorf("warnings = %v", report.Warnings)
	}
}
