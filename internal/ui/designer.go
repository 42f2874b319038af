package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ace-iot/subnet-academy/internal/bbmd"
	"github.com/ace-iot/subnet-academy/internal/export"
	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// designerState holds the plan being designed, the last validation
// findings, and the last forward trace.
type designerState struct {
	plan      bbmd.Plan
	problems  []bbmd.Problem
	validated bool
	trace     []bbmd.Step
	planCount int
}

func (a *App) renderDesigner() {
	a.setChartVisible(false)
	details := new(strings.Builder)

	if len(a.designer.plan.Peers) == 0 {
		details.WriteString("Place BBMDs on subnets and build their Broadcast\n")
		details.WriteString("Distribution Tables (BDTs).\n\n")
		details.WriteString("Rules of thumb:\n")
		details.WriteString("- One BBMD per subnet, never two.\n")
		details.WriteString("- BDT entries are directional, both sides must list each other.\n")
		details.WriteString("- A BBMD never lists itself in its own BDT.\n")
	} else {
		for _, peer := range a.designer.plan.Peers {
			fmt.Fprintf(details, "BBMD                 : %s\n", peer.Name)
			fmt.Fprintf(details, "  Address            : %s:%d\n", peer.Addr, bbmd.DefaultPort)
			fmt.Fprintf(details, "  Subnet             : %s\n", peer.Subnet)
			if len(peer.BDT) == 0 {
				details.WriteString("  BDT                : <empty>\n")
			} else {
				fmt.Fprintf(details, "  BDT                : %s\n", strings.Join(peer.BDT, ", "))
			}
		}
	}

	if a.designer.validated {
		details.WriteString("\n")
		if len(a.designer.problems) == 0 {
			details.WriteString("Validation           : no problems found\n")
		} else {
			fmt.Fprintf(details, "Validation           : %d problem(s)\n", len(a.designer.problems))
			for _, p := range a.designer.problems {
				details.WriteString("- " + p.String() + "\n")
			}
		}
	}

	if len(a.designer.trace) > 0 {
		details.WriteString("\nForward Trace:\n")
		for i, step := range a.designer.trace {
			fmt.Fprintf(details, "%d. %s\n   %s\n", i+1, step.Title, step.Detail)
		}
	}

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
}

func designerRune(a *App, r rune) bool {
	switch r {
	case 'a':
		a.showDialogByName(addBBMDPageName)
		return true
	case 'm':
		a.meshBDTs()
		return true
	case 'v':
		a.validatePlan()
		return true
	case 'f':
		a.showDialogByName(tracePageName)
		return true
	case 'x':
		a.designer = designerState{planCount: a.designer.planCount}
		a.refresh()
		a.setStatus("Cleared BBMD plan")
		return true
	}
	return false
}

// AddBBMD adds a peer to the plan. bdt is a comma-separated list of
// peer names and may be empty.
func (a *App) AddBBMD(name, address, subnet, bdt string) {
	name = strings.TrimSpace(name)
	if name == "" {
		a.setStatus("Error: BBMD name is required")
		return
	}
	if a.designer.plan.Peer(name) != nil {
		a.setStatus(fmt.Sprintf("Error: BBMD %q already exists", name))
		return
	}
	addr, err := ipv4.ParseAddr(address)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	sub, err := ipv4.ParseSubnet(subnet)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	var refs []string
	for _, ref := range strings.Split(bdt, ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	a.designer.plan.Peers = append(a.designer.plan.Peers, bbmd.Peer{
		Name:   name,
		Addr:   addr,
		Subnet: sub,
		BDT:    refs,
	})
	a.designer.validated = false
	a.refresh()
	a.setStatus(fmt.Sprintf("Added %s on %s", name, sub))
}

// meshBDTs rewrites every peer's BDT to list all other peers, the
// textbook full-mesh configuration.
func (a *App) meshBDTs() {
	peers := a.designer.plan.Peers
	if len(peers) < 2 {
		a.setStatus("Need at least two BBMDs to mesh")
		return
	}
	for i := range peers {
		refs := make([]string, 0, len(peers)-1)
		for j := range peers {
			if i != j {
				refs = append(refs, peers[j].Name)
			}
		}
		peers[i].BDT = refs
	}
	a.designer.validated = false
	a.refresh()
	a.setStatus(fmt.Sprintf("Meshed BDTs across %d BBMDs", len(peers)))
}

// validatePlan runs the checks and records a snapshot of the plan on
// the worksheet.
func (a *App) validatePlan() {
	if len(a.designer.plan.Peers) == 0 {
		a.setStatus("Nothing to validate, add a BBMD first")
		return
	}
	a.designer.problems = a.designer.plan.Validate()
	a.designer.validated = true
	a.designer.planCount++

	snapshot := &bbmd.Plan{Peers: make([]bbmd.Peer, len(a.designer.plan.Peers))}
	for i, peer := range a.designer.plan.Peers {
		peer.BDT = slices.Clone(peer.BDT)
		peer.FDT = slices.Clone(peer.FDT)
		snapshot.Peers[i] = peer
	}
	a.Worksheet.Plans = append(a.Worksheet.Plans, export.PlanSection{
		Name:     fmt.Sprintf("Plan %d", a.designer.planCount),
		Plan:     snapshot,
		Problems: a.designer.problems,
	})

	a.refresh()
	if len(a.designer.problems) == 0 {
		a.setStatus("Plan is sound, added to worksheet")
	} else {
		a.setStatus(fmt.Sprintf("Found %d problem(s), added to worksheet", len(a.designer.problems)))
	}
}

// TraceForward walks a broadcast from one BBMD's subnet to another's.
func (a *App) TraceForward(from, to string) {
	steps, err := bbmd.ForwardTrace(&a.designer.plan, strings.TrimSpace(from), strings.TrimSpace(to))
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	a.designer.trace = steps
	a.refresh()
	a.setStatus(fmt.Sprintf("Traced broadcast from %s to %s", strings.TrimSpace(from), strings.TrimSpace(to)))
}
