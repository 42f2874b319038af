package ipv4

import (
	"errors"
	"testing"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		input   string
		want    Addr
		wantErr bool
	}{
		{"0.0.0.0", 0, false},
		{"255.255.255.255", 0xFFFFFFFF, false},
		{"192.168.1.100", 0xC0A80164, false},
		{"10.0.0.1", 0x0A000001, false},
		{" 10.0.0.1 ", 0x0A000001, false},
		{"10.0.0", 0, true},
		{"10.0.0.0.0", 0, true},
		{"10.0.0.256", 0, true},
		{"10.0.0.-1", 0, true},
		{"10.0.0.x", 0, true},
		{"10..0.1", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAddr(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAddr(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ParseAddr(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAddr(%q) = %#x, want %#x", tt.input, uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestAddrStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0.0", "10.0.0.1", "172.16.254.1", "192.168.1.100", "255.255.255.255"} {
		addr, err := ParseAddr(s)
		if err != nil {
			t.Fatalf("ParseAddr(%q): %v", s, err)
		}
		if got := addr.String(); got != s {
			t.Errorf("round-trip %q -> %q", s, got)
		}
	}
}

func TestBinaryString(t *testing.T) {
	addr := MustParseAddr("192.168.1.100")
	if got := addr.BinaryString(); got != "11000000101010000000000101100100" {
		t.Errorf("BinaryString() = %q", got)
	}
	if got := addr.DottedBinaryString(); got != "11000000.10101000.00000001.01100100" {
		t.Errorf("DottedBinaryString() = %q", got)
	}
}

func TestParseBinary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"dotted", "11000000.10101000.00000001.01100100", "192.168.1.100", false},
		{"plain", "11000000101010000000000101100100", "192.168.1.100", false},
		{"spaced", "11000000 10101000 00000001 10000010", "192.168.1.130", false},
		{"zeros", "00000000000000000000000000000000", "0.0.0.0", false},
		{"too_short", "1100000010101000", "", true},
		{"bad_rune", "1100000010101000000000010110010x", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBinary(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBinary(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseBinary(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, s := range []string{"10.0.0.1", "192.168.1.100", "255.255.255.255"} {
		addr := MustParseAddr(s)
		back, err := ParseBinary(addr.BinaryString())
		if err != nil {
			t.Fatalf("ParseBinary(%q): %v", addr.BinaryString(), err)
		}
		if back != addr {
			t.Errorf("binary round-trip %s -> %s", addr, back)
		}
		back, err = ParseBinary(addr.DottedBinaryString())
		if err != nil {
			t.Fatalf("ParseBinary(%q): %v", addr.DottedBinaryString(), err)
		}
		if back != addr {
			t.Errorf("dotted binary round-trip %s -> %s", addr, back)
		}
	}
}

func TestIsPrivate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.254", true},
		{"172.32.0.1", false},
		{"192.168.0.1", true},
		{"192.169.0.1", false},
		{"8.8.8.8", false},
		{"9.255.255.255", false},
		{"11.0.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParseAddr(tt.input).IsPrivate(); got != tt.want {
				t.Errorf("IsPrivate(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
