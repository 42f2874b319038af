package ipv4

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSubnet(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"192.168.1.0/24", "192.168.1.0/24", false},
		{"192.168.1.77/24", "192.168.1.0/24", false}, // host bits masked off
		{"10.0.0.0/8", "10.0.0.0/8", false},
		{"0.0.0.0/0", "0.0.0.0/0", false},
		{"10.0.0.1/32", "10.0.0.1/32", false},
		{"192.168.1.0", "", true},
		{"192.168.1.0/33", "", true},
		{"192.168.1.0/x", "", true},
		{"garbage/24", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSubnet(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSubnet(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseSubnet(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubnetInfo(t *testing.T) {
	info := MustParseSubnet("192.168.1.0/24").Info()

	if got := info.Network.String(); got != "192.168.1.0" {
		t.Errorf("Network = %s", got)
	}
	if got := info.Broadcast.String(); got != "192.168.1.255" {
		t.Errorf("Broadcast = %s", got)
	}
	if got := info.Netmask.String(); got != "255.255.255.0" {
		t.Errorf("Netmask = %s", got)
	}
	if got := info.Wildcard.String(); got != "0.0.0.255" {
		t.Errorf("Wildcard = %s", got)
	}
	if got := info.FirstUsable.String(); got != "192.168.1.1" {
		t.Errorf("FirstUsable = %s", got)
	}
	if got := info.LastUsable.String(); got != "192.168.1.254" {
		t.Errorf("LastUsable = %s", got)
	}
	if info.TotalAddresses != 256 {
		t.Errorf("TotalAddresses = %d", info.TotalAddresses)
	}
	if info.UsableHosts != 254 {
		t.Errorf("UsableHosts = %d", info.UsableHosts)
	}
	if info.NetworkBits != 24 || info.HostBits != 8 {
		t.Errorf("bits = %d/%d", info.NetworkBits, info.HostBits)
	}
}

// /31 and /32 have no usable hosts and the usable range collapses to
// the subnet itself.
func TestSubnetInfoSmallPrefixes(t *testing.T) {
	info31 := MustParseSubnet("10.0.0.0/31").Info()
	if info31.TotalAddresses != 2 || info31.UsableHosts != 0 {
		t.Errorf("/31: total=%d usable=%d", info31.TotalAddresses, info31.UsableHosts)
	}
	if info31.FirstUsable.String() != "10.0.0.0" || info31.LastUsable.String() != "10.0.0.1" {
		t.Errorf("/31 usable range = %s-%s", info31.FirstUsable, info31.LastUsable)
	}

	info32 := MustParseSubnet("10.0.0.5/32").Info()
	if info32.TotalAddresses != 1 || info32.UsableHosts != 0 {
		t.Errorf("/32: total=%d usable=%d", info32.TotalAddresses, info32.UsableHosts)
	}
	if info32.FirstUsable != info32.Network || info32.LastUsable != info32.Broadcast {
		t.Errorf("/32 usable range = %s-%s", info32.FirstUsable, info32.LastUsable)
	}

	info30 := MustParseSubnet("10.0.0.0/30").Info()
	if info30.UsableHosts != 2 {
		t.Errorf("/30: usable=%d", info30.UsableHosts)
	}
}

func TestSubnetContains(t *testing.T) {
	subnet := MustParseSubnet("192.168.1.0/24")
	tests := []struct {
		addr string
		want bool
	}{
		{"192.168.1.0", true},
		{"192.168.1.1", true},
		{"192.168.1.255", true},
		{"192.168.2.0", false},
		{"192.168.0.255", false},
		{"10.0.0.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := subnet.Contains(MustParseAddr(tt.addr)); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}

	// The network address of any subnet is inside it.
	for _, s := range []string{"0.0.0.0/0", "10.0.0.0/8", "192.168.1.0/24", "10.0.0.1/32"} {
		sub := MustParseSubnet(s)
		if !sub.Contains(sub.Info().Network) {
			t.Errorf("%s does not contain its own network address", s)
		}
	}
}

func TestSubnetOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "192.168.1.0/24", "192.168.1.0/24", true},
		{"subset", "192.168.1.0/24", "192.168.1.0/25", true},
		{"superset", "10.0.0.0/8", "10.1.2.0/24", true},
		{"adjacent", "192.168.1.0/24", "192.168.2.0/24", false},
		{"disjoint", "10.0.0.0/24", "172.16.0.0/24", false},
		{"halves", "10.0.0.0/25", "10.0.0.128/25", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustParseSubnet(tt.a), MustParseSubnet(tt.b)
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Symmetric.
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOverlapReport(t *testing.T) {
	tests := []struct {
		name        string
		a, b        string
		wantOverlap bool
		wantText    string
	}{
		{"identical", "192.168.1.0/24", "192.168.1.0/24", true, "identical"},
		{"subnet_of", "192.168.1.0/25", "192.168.1.0/24", true, "192.168.1.0/25 is a subnet of 192.168.1.0/24"},
		{"subnet_of_reversed", "192.168.1.0/24", "192.168.1.128/25", true, "192.168.1.128/25 is a subnet of 192.168.1.0/24"},
		{"disjoint", "192.168.1.0/24", "192.168.2.0/24", false, "256 apart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlaps, explanation := OverlapReport(MustParseSubnet(tt.a), MustParseSubnet(tt.b))
			if overlaps != tt.wantOverlap {
				t.Errorf("OverlapReport(%s, %s) = %v, want %v", tt.a, tt.b, overlaps, tt.wantOverlap)
			}
			if !strings.Contains(explanation, tt.wantText) {
				t.Errorf("explanation %q does not mention %q", explanation, tt.wantText)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		cidr      string
		newBits   int
		wantCount int
		wantErr   bool
	}{
		{"24_to_25", "192.168.1.0/24", 25, 2, false},
		{"24_to_26", "192.168.1.0/24", 26, 4, false},
		{"16_to_24", "10.0.0.0/16", 24, 256, false},
		{"30_to_32", "10.0.0.0/30", 32, 4, false},
		{"same_prefix", "10.0.0.0/24", 24, 0, true},
		{"shorter_prefix", "10.0.0.0/24", 16, 0, true},
		{"beyond_32", "10.0.0.0/24", 33, 0, true},
		{"too_many", "10.0.0.0/8", 24, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children, err := MustParseSubnet(tt.cidr).Split(tt.newBits)
			if (err != nil) != tt.wantErr {
				t.Errorf("Split(%s, %d) error = %v, wantErr %v", tt.cidr, tt.newBits, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("Split error = %v, want ErrOutOfRange", err)
				}
				return
			}
			if len(children) != tt.wantCount {
				t.Errorf("Split(%s, %d) returned %d subnets, want %d", tt.cidr, tt.newBits, len(children), tt.wantCount)
			}
		})
	}
}

func TestSplitExactValues(t *testing.T) {
	children, err := MustParseSubnet("192.168.1.0/24").Split(25)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if children[0].String() != "192.168.1.0/25" || children[1].String() != "192.168.1.128/25" {
		t.Errorf("Split(/24, 25) = %v", children)
	}
}

// Children of a split tile the parent exactly: ascending, contiguous,
// no gaps, no overlaps.
func TestSplitCoversParent(t *testing.T) {
	parent := MustParseSubnet("10.20.0.0/20")
	for _, newBits := range []int{21, 22, 24, 26} {
		children, err := parent.Split(newBits)
		if err != nil {
			t.Fatalf("Split(%d): %v", newBits, err)
		}
		if children[0].Network() != parent.Network() {
			t.Errorf("/%d: first child starts at %s, parent at %s", newBits, children[0].Network(), parent.Network())
		}
		for i := 1; i < len(children); i++ {
			if children[i].Network() != children[i-1].Broadcast()+1 {
				t.Errorf("/%d: gap between %s and %s", newBits, children[i-1], children[i])
			}
			if children[i].Overlaps(children[i-1]) {
				t.Errorf("/%d: %s overlaps %s", newBits, children[i], children[i-1])
			}
		}
		if last := children[len(children)-1].Broadcast(); last != parent.Broadcast() {
			t.Errorf("/%d: last child ends at %s, parent at %s", newBits, last, parent.Broadcast())
		}
	}
}
