package bbmd

import (
	"fmt"

	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// Step is one stage of the forwarding walk, rendered verbatim by the
// designer UI.
type Step struct {
	Title  string
	Detail string
}

// ForwardTrace walks a Who-Is broadcast from a device on the origin
// BBMD's subnet to the target BBMD's subnet: local broadcast, BDT
// lookup, unicast Forwarded-NPDU, remote re-broadcast, and the reverse
// path for the I-Am response.
func ForwardTrace(plan *Plan, origin, target string) ([]Step, error) {
	from := plan.Peer(origin)
	if from == nil {
		return nil, fmt.Errorf("unknown BBMD %q", origin)
	}
	to := plan.Peer(target)
	if to == nil {
		return nil, fmt.Errorf("unknown BBMD %q", target)
	}
	if origin == target {
		return nil, fmt.Errorf("origin and target are the same BBMD %q", origin)
	}
	found := false
	for _, ref := range from.BDT {
		if ref == target {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s has no BDT entry for %s, broadcast cannot be forwarded", origin, target)
	}

	// Illustrative device on the origin subnet. Offset 50 reads nicely
	// for the common /24 case; smaller subnets clamp to the last usable
	// address so the narrated device stays on the subnet.
	device := from.Subnet.Network() + 50
	if device >= from.Subnet.Broadcast() || !from.Subnet.Contains(device) {
		device = from.Subnet.Info().LastUsable
	}
	localBcast := from.Subnet.Broadcast()
	remoteBcast := to.Subnet.Broadcast()

	steps := []Step{
		{
			Title: "Local broadcast",
			Detail: fmt.Sprintf("Device %s sends Who-Is to %s:%d. %s (%s) is on the same subnet and receives it.",
				device, localBcast, DefaultPort, from.Name, from.Addr),
		},
		{
			Title: "BDT lookup",
			Detail: fmt.Sprintf("%s checks its Broadcast Distribution Table and finds %s at %s for subnet %s.",
				from.Name, to.Name, to.Addr, to.Subnet),
		},
		{
			Title: "Unicast forward",
			Detail: fmt.Sprintf("%s wraps the Who-Is in a Forwarded-NPDU and sends it unicast %s -> %s:%d. Routers pass unicast through.",
				from.Name, from.Addr, to.Addr, DefaultPort),
		},
		{
			Title: "Re-broadcast on remote subnet",
			Detail: fmt.Sprintf("%s unwraps the Forwarded-NPDU and re-broadcasts the original Who-Is to %s. Every device on %s now hears it.",
				to.Name, remoteBcast, to.Subnet),
		},
		reverseStep(from, to),
	}
	return steps, nil
}

// reverseStep describes the I-Am response path, warning when the
// return BDT entry is missing.
func reverseStep(from, to *Peer) Step {
	for _, ref := range to.BDT {
		if ref == from.Name {
			return Step{
				Title: "Reverse path",
				Detail: fmt.Sprintf("A responding device broadcasts I-Am on %s; %s forwards it back to %s, which re-broadcasts on %s. Discovery works in both directions.",
					to.Subnet, to.Name, from.Name, from.Subnet),
			}
		}
	}
	return Step{
		Title: "Reverse path",
		Detail: fmt.Sprintf("%s has no BDT entry for %s: the I-Am response is never forwarded back. BDT entries are directional, both sides must list each other.",
			to.Name, from.Name),
	}
}

// PlanFromSubnets builds the textbook plan for a list of subnets: one
// BBMD per subnet at the first usable address, full symmetric BDT mesh.
func PlanFromSubnets(subnets []ipv4.Subnet) *Plan {
	plan := &Plan{}
	for i, subnet := range subnets {
		plan.Peers = append(plan.Peers, Peer{
			Name:   fmt.Sprintf("BBMD-%d", i+1),
			Addr:   subnet.Network() + 1,
			Subnet: subnet,
		})
	}
	for i := range plan.Peers {
		for j := range plan.Peers {
			if i != j {
				plan.Peers[i].BDT = append(plan.Peers[i].BDT, plan.Peers[j].Name)
			}
		}
	}
	return plan
}
