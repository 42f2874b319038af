// Package bbmd models BACnet Broadcast Management Device deployments:
// peers with Broadcast Distribution Tables and Foreign Device Tables,
// plan validation, and a step-by-step forwarding trace.
package bbmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// DefaultPort is the well-known BACnet/IP UDP port.
const DefaultPort = 47808

// FDTEntry is a foreign device registered with a BBMD. Foreign devices
// live outside any local subnet and must re-register before TTL runs
// out.
type FDTEntry struct {
	Device     string    `json:"device"`
	Addr       ipv4.Addr `json:"address"`
	TTLSeconds int       `json:"ttlSeconds"`
}

// Peer is one BBMD in a plan. BDT lists the names of the peers this
// BBMD forwards local broadcasts to. BDT entries are directional:
// listing a peer does not make that peer forward back.
type Peer struct {
	Name   string      `json:"name"`
	Addr   ipv4.Addr   `json:"address"`
	Subnet ipv4.Subnet `json:"subnet"`
	BDT    []string    `json:"bdt,omitempty"`
	FDT    []FDTEntry  `json:"fdt,omitempty"`
}

// Plan is a set of BBMDs intended to connect their subnets.
type Plan struct {
	Peers []Peer `json:"peers"`
}

// Peer returns the named peer, or nil.
func (p *Plan) Peer(name string) *Peer {
	for i := range p.Peers {
		if p.Peers[i].Name == name {
			return &p.Peers[i]
		}
	}
	return nil
}

// Problem is one validation finding, attributed to a peer where that
// makes sense.
type Problem struct {
	Peer string
	Text string
}

func (p Problem) String() string {
	if p.Peer == "" {
		return p.Text
	}
	return p.Peer + ": " + p.Text
}

// Validate checks the plan for the misconfigurations covered by the
// designer. An empty slice means the plan is sound.
func (p *Plan) Validate() []Problem {
	var problems []Problem

	problems = append(problems, p.checkAddresses()...)
	problems = append(problems, p.checkBDTReferences()...)
	problems = append(problems, p.checkDuplicateSubnets()...)
	problems = append(problems, p.checkSymmetry()...)
	problems = append(problems, p.checkCycles()...)

	return problems
}

// checkAddresses verifies every peer address sits inside its subnet and
// every FDT entry sits outside all plan subnets.
func (p *Plan) checkAddresses() []Problem {
	var problems []Problem
	for _, peer := range p.Peers {
		if !peer.Subnet.Contains(peer.Addr) {
			problems = append(problems, Problem{
				Peer: peer.Name,
				Text: fmt.Sprintf("address %s is not inside subnet %s", peer.Addr, peer.Subnet),
			})
		}
		for _, entry := range peer.FDT {
			for _, other := range p.Peers {
				if other.Subnet.Contains(entry.Addr) {
					problems = append(problems, Problem{
						Peer: peer.Name,
						Text: fmt.Sprintf("foreign device %s (%s) is on local subnet %s and should not register as foreign", entry.Device, entry.Addr, other.Subnet),
					})
					break
				}
			}
			if entry.TTLSeconds <= 0 {
				problems = append(problems, Problem{
					Peer: peer.Name,
					Text: fmt.Sprintf("foreign device %s has non-positive TTL %d", entry.Device, entry.TTLSeconds),
				})
			}
		}
	}
	return problems
}

// checkBDTReferences flags unknown and self BDT entries.
func (p *Plan) checkBDTReferences() []Problem {
	var problems []Problem
	for _, peer := range p.Peers {
		for _, ref := range peer.BDT {
			if ref == peer.Name {
				problems = append(problems, Problem{
					Peer: peer.Name,
					Text: "BDT lists the BBMD itself",
				})
				continue
			}
			if p.Peer(ref) == nil {
				problems = append(problems, Problem{
					Peer: peer.Name,
					Text: fmt.Sprintf("BDT references unknown BBMD %q", ref),
				})
			}
		}
	}
	return problems
}

// checkDuplicateSubnets flags two forwarding BBMDs on one subnet. Each
// re-broadcasts what the other forwards, which is the classic
// ping-pong storm.
func (p *Plan) checkDuplicateSubnets() []Problem {
	var problems []Problem
	bySubnet := make(map[ipv4.Subnet][]*Peer)
	for i := range p.Peers {
		peer := &p.Peers[i]
		bySubnet[peer.Subnet] = append(bySubnet[peer.Subnet], peer)
	}
	for subnet, peers := range bySubnet {
		if len(peers) < 2 {
			continue
		}
		var forwarding []string
		for _, peer := range peers {
			if len(peer.BDT) > 0 {
				forwarding = append(forwarding, peer.Name)
			}
		}
		if len(forwarding) >= 2 {
			slices.Sort(forwarding)
			problems = append(problems, Problem{
				Text: fmt.Sprintf("subnet %s has multiple forwarding BBMDs (%s): each will re-broadcast the other's forwards, causing a storm", subnet, strings.Join(forwarding, ", ")),
			})
		}
	}
	slices.SortFunc(problems, func(a, b Problem) int {
		return strings.Compare(a.Text, b.Text)
	})
	return problems
}

// checkSymmetry flags one-way BDT pairs. A entry for B without a B
// entry for A means responses never make it back.
func (p *Plan) checkSymmetry() []Problem {
	var problems []Problem
	for _, peer := range p.Peers {
		for _, ref := range peer.BDT {
			other := p.Peer(ref)
			if other == nil || ref == peer.Name {
				continue
			}
			if !slices.Contains(other.BDT, peer.Name) {
				problems = append(problems, Problem{
					Peer: peer.Name,
					Text: fmt.Sprintf("BDT entry for %s is one-way: %s does not list %s, so responses will not come back", ref, ref, peer.Name),
				})
			}
		}
	}
	return problems
}

// checkCycles finds circular BDT chains of three or more BBMDs built
// from one-way entries, like A -> B -> C -> A with none of the reverse
// entries present. A fully symmetric ring is just a mesh and is fine;
// the one-way chain circulates broadcasts without ever delivering
// responses.
func (p *Plan) checkCycles() []Problem {
	seen := make(map[string]bool)
	var problems []Problem

	symmetric := func(a, b string) bool {
		pa, pb := p.Peer(a), p.Peer(b)
		return pa != nil && pb != nil &&
			slices.Contains(pa.BDT, b) && slices.Contains(pb.BDT, a)
	}

	var walk func(start string, path []string)
	walk = func(start string, path []string) {
		current := p.Peer(path[len(path)-1])
		if current == nil {
			return
		}
		for _, next := range current.BDT {
			if next == start && len(path) >= 3 {
				allSymmetric := symmetric(path[len(path)-1], start)
				for i := 1; allSymmetric && i < len(path); i++ {
					allSymmetric = symmetric(path[i-1], path[i])
				}
				if allSymmetric {
					continue
				}
				key := canonicalCycle(path)
				if !seen[key] {
					seen[key] = true
					problems = append(problems, Problem{
						Text: fmt.Sprintf("circular BDT chain: %s -> %s", strings.Join(path, " -> "), start),
					})
				}
				continue
			}
			if slices.Contains(path, next) {
				continue
			}
			walk(start, append(path, next))
		}
	}

	for _, peer := range p.Peers {
		walk(peer.Name, []string{peer.Name})
	}
	return problems
}

// canonicalCycle keys a cycle independent of its starting point and
// direction.
func canonicalCycle(path []string) string {
	sorted := slices.Clone(path)
	slices.Sort(sorted)
	return strings.Join(sorted, "|")
}
