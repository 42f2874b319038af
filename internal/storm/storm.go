// Package storm models broadcast propagation over the lab topologies.
// The model is intentionally coarse: it teaches why forwarding loops
// melt networks, it does not simulate real BACnet timing.
package storm

import (
	"fmt"

	"github.com/ace-iot/subnet-academy/internal/topology"
)

// Severity classifies a simulation outcome.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeveritySafe:
		return "SAFE"
	case SeverityCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Hop-count bounds for the lab slider.
const (
	MinHops = 1
	MaxHops = 20
)

// packetCap stops runaway exponential growth; once a hop reaches the
// cap the storm has already made its point.
const packetCap = 1_000_000

// bytesPerBroadcast is the size of a BACnet Who-Is broadcast frame
// used for the bandwidth estimate.
const bytesPerBroadcast = 64

// Result holds the per-hop packet counts and the derived metrics shown
// in the lab. PerHop[0] is the originating broadcast; hops 1..N are
// retransmissions.
type Result struct {
	Kind                 topology.Kind
	PerHop               []int64
	TotalBroadcasts      int64
	BandwidthBytes       int64
	PeakPacketsPerSecond int64
	Severity             Severity
	Capped               bool
}

// Simulate runs the propagation model for maxHops hops. It is a pure
// function of its inputs: the same topology and hop count always
// produce the same sequence.
func Simulate(topo *topology.Topology, maxHops int) (Result, error) {
	if maxHops < MinHops || maxHops > MaxHops {
		return Result{}, fmt.Errorf("hop count %d out of range %d-%d", maxHops, MinHops, MaxHops)
	}

	result := Result{Kind: topo.Kind}

	if topo.HasForwardingLoop() {
		result.Severity = SeverityCritical
		result.PerHop = stormCounts(topo.BranchingFactor(), maxHops, &result.Capped)
	} else {
		result.Severity = SeveritySafe
		result.PerHop = flatCounts(topo.NodeCount(), maxHops)
	}

	if result.Severity == SeverityCritical {
		// Hop 0 is the original frame, not a retransmission.
		for _, c := range result.PerHop[1:] {
			result.TotalBroadcasts += c
		}
	} else {
		// Every device hears the broadcast exactly once, however many
		// hops we watch for.
		result.TotalBroadcasts = int64(topo.NodeCount())
	}

	result.BandwidthBytes = result.TotalBroadcasts * bytesPerBroadcast
	result.PeakPacketsPerSecond = result.PerHop[len(result.PerHop)-1] * 10
	return result, nil
}

// stormCounts grows the packet count by the branching factor each hop,
// clamped at packetCap.
func stormCounts(branching, maxHops int, capped *bool) []int64 {
	counts := make([]int64, maxHops+1)
	counts[0] = 1
	for h := 1; h <= maxHops; h++ {
		next := counts[h-1] * int64(branching)
		if next >= packetCap {
			next = packetCap
			*capped = true
		}
		counts[h] = next
	}
	return counts
}

// flatCounts is the safe sequence: the broadcast reaches every node
// once and the per-hop level stays at the node count.
func flatCounts(nodeCount, maxHops int) []int64 {
	counts := make([]int64, maxHops+1)
	for h := range counts {
		counts[h] = int64(nodeCount)
	}
	return counts
}
