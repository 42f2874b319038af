// Package topology defines the fixed network graphs used by the
// broadcast-storm lab: nodes tagged with roles and subnet membership,
// held in a gonum graph so neighbor and path queries come for free.
package topology

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// Kind selects one of the five built-in topologies. The set is closed:
// topologies are teaching constants, not user-extensible.
type Kind int

const (
	KindNormal Kind = iota
	KindLoop
	KindBBMDCorrect
	KindTriangle
	KindMesh
)

// Kinds returns all topology kinds in menu order.
func Kinds() []Kind {
	return []Kind{KindNormal, KindLoop, KindBBMDCorrect, KindTriangle, KindMesh}
}

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindLoop:
		return "loop"
	case KindBBMDCorrect:
		return "bbmd_correct"
	case KindTriangle:
		return "triangle"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Title returns the human-readable name shown in the UI.
func (k Kind) Title() string {
	switch k {
	case KindNormal:
		return "Normal (Safe)"
	case KindLoop:
		return "BBMD Loop (Storm!)"
	case KindBBMDCorrect:
		return "BBMD Correct (Safe)"
	case KindTriangle:
		return "Triangle Loop (Storm!)"
	case KindMesh:
		return "Mesh Network (Storm!)"
	}
	return k.String()
}

// ParseKind parses a topology name as produced by String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown topology %q", s)
}

// Role tags what a node is.
type Role int

const (
	RoleDevice Role = iota
	RoleSwitch
	RoleBBMD
)

func (r Role) String() string {
	switch r {
	case RoleDevice:
		return "device"
	case RoleSwitch:
		return "switch"
	case RoleBBMD:
		return "BBMD"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Node is a device, switch, or BBMD placed on a subnet. X and Y are
// deterministic layout coordinates so repeated renders are identical.
type Node struct {
	id     int64
	Name   string
	Role   Role
	Addr   ipv4.Addr
	Subnet ipv4.Subnet
	X, Y   float64
}

// ID implements gonum's graph.Node.
func (n *Node) ID() int64 { return n.id }

// Edge is an undirected connection between two named nodes.
type Edge struct {
	From, To string
}

// Topology is an immutable named graph. Build it with Build; do not
// mutate nodes after construction.
type Topology struct {
	Kind Kind

	nodes  []*Node
	byName map[string]*Node
	edges  []Edge
	g      *simple.UndirectedGraph
}

// Device-count bounds from the lab controls. Mesh is additionally
// clamped to meshMaxDevices.
const (
	MinDevices     = 3
	MaxDevices     = 15
	meshMaxDevices = 8
)

// Build constructs the graph for a kind. deviceCount only affects
// KindNormal and KindMesh; the other kinds are fixed scenes.
func Build(kind Kind, deviceCount int) (*Topology, error) {
	if deviceCount < MinDevices || deviceCount > MaxDevices {
		return nil, fmt.Errorf("device count %d out of range %d-%d", deviceCount, MinDevices, MaxDevices)
	}

	t := &Topology{
		Kind:   kind,
		byName: make(map[string]*Node),
		g:      simple.NewUndirectedGraph(),
	}

	switch kind {
	case KindNormal:
		t.buildNormal(deviceCount)
	case KindLoop:
		t.buildLoop()
	case KindBBMDCorrect:
		t.buildBBMDCorrect()
	case KindTriangle:
		t.buildTriangle()
	case KindMesh:
		t.buildMesh(min(deviceCount, meshMaxDevices))
	default:
		return nil, fmt.Errorf("unknown topology kind %d", int(kind))
	}

	t.layout()
	return t, nil
}

var (
	subnetBlue   = ipv4.MustParseSubnet("192.168.1.0/24")
	subnetPurple = ipv4.MustParseSubnet("10.0.2.0/24")
)

func (t *Topology) addNode(name string, role Role, addr ipv4.Addr, subnet ipv4.Subnet) *Node {
	n := &Node{
		id:     int64(len(t.nodes)),
		Name:   name,
		Role:   role,
		Addr:   addr,
		Subnet: subnet,
	}
	t.nodes = append(t.nodes, n)
	t.byName[name] = n
	t.g.AddNode(n)
	return n
}

func (t *Topology) addEdge(from, to string) {
	a, b := t.byName[from], t.byName[to]
	t.g.SetEdge(t.g.NewEdge(a, b))
	t.edges = append(t.edges, Edge{From: from, To: to})
}

// buildNormal chains deviceCount devices on one subnet: no redundant
// paths, broadcasts propagate linearly.
func (t *Topology) buildNormal(deviceCount int) {
	for i := 1; i <= deviceCount; i++ {
		name := fmt.Sprintf("Device%d", i)
		t.addNode(name, RoleDevice, subnetBlue.Network()+ipv4.Addr(9+i), subnetBlue)
	}
	for i := 1; i < deviceCount; i++ {
		t.addEdge(fmt.Sprintf("Device%d", i), fmt.Sprintf("Device%d", i+1))
	}
}

// buildLoop places two BBMDs on the SAME subnet, both forwarding to a
// third. The duplicate-subnet pair ping-pongs every broadcast the other
// forwards, which is the classic BACnet misconfiguration.
func (t *Topology) buildLoop() {
	t.addNode("BBMD-A", RoleBBMD, subnetBlue.Network()+1, subnetBlue)
	t.addNode("BBMD-B", RoleBBMD, subnetBlue.Network()+2, subnetBlue)
	t.addNode("BBMD-C", RoleBBMD, subnetPurple.Network()+1, subnetPurple)
	t.addNode("Dev-1", RoleDevice, subnetBlue.Network()+10, subnetBlue)
	t.addNode("Dev-2", RoleDevice, subnetBlue.Network()+11, subnetBlue)
	t.addNode("Dev-3", RoleDevice, subnetPurple.Network()+10, subnetPurple)

	t.addEdge("BBMD-A", "BBMD-C")
	t.addEdge("BBMD-B", "BBMD-C")
	t.addEdge("BBMD-A", "BBMD-B") // same-subnet link closing the cycle
	t.addEdge("BBMD-A", "Dev-1")
	t.addEdge("BBMD-B", "Dev-2")
	t.addEdge("BBMD-C", "Dev-3")
}

// buildBBMDCorrect is the properly configured two-subnet deployment:
// one BBMD per subnet, symmetric BDT entries, no cycle.
func (t *Topology) buildBBMDCorrect() {
	t.addNode("BBMD-A", RoleBBMD, subnetBlue.Network()+1, subnetBlue)
	t.addNode("BBMD-B", RoleBBMD, subnetPurple.Network()+1, subnetPurple)
	t.addNode("Dev-A1", RoleDevice, subnetBlue.Network()+10, subnetBlue)
	t.addNode("Dev-A2", RoleDevice, subnetBlue.Network()+11, subnetBlue)
	t.addNode("Dev-B1", RoleDevice, subnetPurple.Network()+10, subnetPurple)
	t.addNode("Dev-B2", RoleDevice, subnetPurple.Network()+11, subnetPurple)

	t.addEdge("BBMD-A", "BBMD-B")
	t.addEdge("BBMD-A", "Dev-A1")
	t.addEdge("BBMD-A", "Dev-A2")
	t.addEdge("BBMD-B", "Dev-B1")
	t.addEdge("BBMD-B", "Dev-B2")
}

// buildTriangle wires three switches in a ring with no spanning tree.
func (t *Topology) buildTriangle() {
	t.addNode("Switch-A", RoleSwitch, subnetBlue.Network()+2, subnetBlue)
	t.addNode("Switch-B", RoleSwitch, subnetBlue.Network()+3, subnetBlue)
	t.addNode("Switch-C", RoleSwitch, subnetBlue.Network()+4, subnetBlue)
	for i := 1; i <= 5; i++ {
		t.addNode(fmt.Sprintf("Device%d", i), RoleDevice, subnetBlue.Network()+ipv4.Addr(9+i), subnetBlue)
	}

	t.addEdge("Switch-A", "Switch-B")
	t.addEdge("Switch-B", "Switch-C")
	t.addEdge("Switch-C", "Switch-A")
	t.addEdge("Switch-A", "Device1")
	t.addEdge("Switch-A", "Device2")
	t.addEdge("Switch-B", "Device3")
	t.addEdge("Switch-B", "Device4")
	t.addEdge("Switch-C", "Device5")
}

// buildMesh connects each device to its next two neighbors, creating
// multiple redundant paths on one subnet.
func (t *Topology) buildMesh(deviceCount int) {
	for i := 1; i <= deviceCount; i++ {
		t.addNode(fmt.Sprintf("Device%d", i), RoleDevice, subnetBlue.Network()+ipv4.Addr(9+i), subnetBlue)
	}
	for i := 0; i < deviceCount; i++ {
		for j := i + 1; j <= i+2 && j < deviceCount; j++ {
			t.addEdge(fmt.Sprintf("Device%d", i+1), fmt.Sprintf("Device%d", j+1))
		}
	}
}

// Nodes returns the nodes in creation order.
func (t *Topology) Nodes() []*Node {
	return t.nodes
}

// NodeByName returns the named node, or nil.
func (t *Topology) NodeByName(name string) *Node {
	return t.byName[name]
}

// Edges returns the edges in creation order.
func (t *Topology) Edges() []Edge {
	return t.edges
}

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int { return len(t.nodes) }

// EdgeCount returns the number of edges.
func (t *Topology) EdgeCount() int { return len(t.edges) }

// Neighbors returns the names of the nodes adjacent to name, in
// ascending node order.
func (t *Topology) Neighbors(name string) []string {
	n := t.byName[name]
	if n == nil {
		return nil
	}
	var result []string
	it := t.g.From(n.ID())
	for it.Next() {
		result = append(result, it.Node().(*Node).Name)
	}
	// gonum iteration order follows internal map order; sort by node id
	// for reproducible output.
	slices.SortFunc(result, func(a, b string) int {
		return int(t.byName[a].id - t.byName[b].id)
	})
	return result
}

// BranchingFactor is the average fan-out used by the storm growth
// model: edges/nodes + 1, integer arithmetic.
func (t *Topology) BranchingFactor() int {
	return t.EdgeCount()/t.NodeCount() + 1
}

// HasForwardingLoop reports whether the graph contains a cycle. All
// built-in topologies are connected, so a cycle exists exactly when
// the edge count reaches the node count.
func (t *Topology) HasForwardingLoop() bool {
	return t.EdgeCount() > t.NodeCount()-1
}

// HopDistances returns the hop count from origin to every reachable
// node, using a unit-weight shortest path walk. Used to render the
// propagation wavefront.
func (t *Topology) HopDistances(origin string) (map[string]int, error) {
	from := t.byName[origin]
	if from == nil {
		return nil, fmt.Errorf("unknown node %q", origin)
	}
	shortest := path.DijkstraFrom(from, t.g)
	distances := make(map[string]int, len(t.nodes))
	for _, n := range t.nodes {
		if w := shortest.WeightTo(n.ID()); !math.IsInf(w, 1) {
			distances[n.Name] = int(w)
		}
	}
	return distances, nil
}

// Subnets returns the distinct subnets in first-seen node order.
func (t *Topology) Subnets() []ipv4.Subnet {
	var result []ipv4.Subnet
	seen := make(map[ipv4.Subnet]bool)
	for _, n := range t.nodes {
		if !seen[n.Subnet] {
			seen[n.Subnet] = true
			result = append(result, n.Subnet)
		}
	}
	return result
}
