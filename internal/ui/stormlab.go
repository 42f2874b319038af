package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rivo/tview"

	"github.com/ace-iot/subnet-academy/internal/storm"
	"github.com/ace-iot/subnet-academy/internal/topology"
)

// stormLabState holds the lab controls and the last simulation run.
type stormLabState struct {
	kind    topology.Kind
	devices int
	hops    int
	result  *storm.Result
}

func newStormLabState() stormLabState {
	return stormLabState{
		kind:    topology.KindNormal,
		devices: 8,
		hops:    5,
	}
}

func (a *App) renderStormLab() {
	a.setChartVisible(true)
	details := new(strings.Builder)

	for i, kind := range topology.Kinds() {
		marker := " "
		if kind == a.stormLab.kind {
			marker = ">"
		}
		fmt.Fprintf(details, "%s %d. %s\n", marker, i+1, kind.Title())
	}
	details.WriteString("\n")

	topo, err := topology.Build(a.stormLab.kind, a.stormLab.devices)
	if err != nil {
		a.DetailsPanel.Clear()
		a.DetailsPanel.SetText("Error: " + err.Error())
		return
	}

	fmt.Fprintf(details, "Devices              : %d\n", a.stormLab.devices)
	fmt.Fprintf(details, "Max Hops             : %d\n", a.stormLab.hops)
	fmt.Fprintf(details, "Nodes                : %d\n", topo.NodeCount())
	fmt.Fprintf(details, "Links                : %d\n", topo.EdgeCount())
	fmt.Fprintf(details, "Branching Factor     : %d\n", topo.BranchingFactor())
	subnets := make([]string, 0, 2)
	for _, s := range topo.Subnets() {
		subnets = append(subnets, s.String())
	}
	fmt.Fprintf(details, "Subnets              : %s\n", strings.Join(subnets, ", "))
	if topo.HasForwardingLoop() {
		details.WriteString("Forwarding Loop      : YES, broadcasts multiply\n")
	} else {
		details.WriteString("Forwarding Loop      : no\n")
	}

	if result := a.stormLab.result; result != nil && result.Kind == a.stormLab.kind {
		details.WriteString("\n")
		fmt.Fprintf(details, "Severity             : %s\n", result.Severity)
		fmt.Fprintf(details, "Total Broadcasts     : %s\n", englishPrinter.Sprintf("%d", result.TotalBroadcasts))
		fmt.Fprintf(details, "Bandwidth Consumed   : %s bytes\n", englishPrinter.Sprintf("%d", result.BandwidthBytes))
		fmt.Fprintf(details, "Peak Rate            : %s packets/s\n", englishPrinter.Sprintf("%d", result.PeakPacketsPerSecond))
		if result.Capped {
			details.WriteString("Note                 : packet counts hit the simulation ceiling\n")
		}
	}

	writeWavefront(details, topo)

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
	a.renderStormChart()
}

// writeWavefront lists which nodes the broadcast has reached after each
// hop, walking outward from the first node by shortest-path distance.
func writeWavefront(details *strings.Builder, topo *topology.Topology) {
	origin := topo.Nodes()[0].Name
	distances, err := topo.HopDistances(origin)
	if err != nil {
		return
	}
	maxHop := 0
	for _, d := range distances {
		if d > maxHop {
			maxHop = d
		}
	}
	details.WriteString("\n")
	fmt.Fprintf(details, "Wavefront from %s:\n", origin)
	for hop := 0; hop <= maxHop; hop++ {
		var reached []string
		for _, n := range topo.Nodes() {
			if d, ok := distances[n.Name]; ok && d == hop {
				reached = append(reached, n.Name)
			}
		}
		fmt.Fprintf(details, "  hop %-2d : %s\n", hop, strings.Join(reached, ", "))
	}
}

// renderStormChart draws the per-hop packet counts as a horizontal bar
// chart in the chart panel.
func (a *App) renderStormChart() {
	a.ChartPanel.Clear()
	result := a.stormLab.result
	if result == nil || result.Kind != a.stormLab.kind {
		fmt.Fprint(tview.ANSIWriter(a.ChartPanel), "Press <r> to run the simulation.")
		return
	}
	barData := make([]pterm.Bar, 0, len(result.PerHop))
	for hop, count := range result.PerHop {
		barData = append(barData, pterm.Bar{
			Label: fmt.Sprintf("hop %2d", hop),
			Value: int(count),
		})
	}
	_ = pterm.DefaultBarChart.WithBars(barData).WithHorizontal().WithWidth(40).WithShowValue().WithWriter(tview.ANSIWriter(a.ChartPanel)).Render()
}

func stormLabRune(a *App, r rune) bool {
	switch r {
	case '1', '2', '3', '4', '5':
		a.stormLab.kind = topology.Kinds()[r-'1']
		a.refresh()
		a.setStatus("Topology: " + a.stormLab.kind.Title())
		return true
	case '+', '=':
		if a.stormLab.devices < topology.MaxDevices {
			a.stormLab.devices++
		}
		a.refresh()
		return true
	case '-', '_':
		if a.stormLab.devices > topology.MinDevices {
			a.stormLab.devices--
		}
		a.refresh()
		return true
	case '[':
		if a.stormLab.hops > storm.MinHops {
			a.stormLab.hops--
		}
		a.refresh()
		return true
	case ']':
		if a.stormLab.hops < storm.MaxHops {
			a.stormLab.hops++
		}
		a.refresh()
		return true
	case 'r':
		a.runStormSimulation()
		return true
	}
	return false
}

// runStormSimulation builds the selected topology, simulates the
// broadcast, and adds the result to the worksheet.
func (a *App) runStormSimulation() {
	topo, err := topology.Build(a.stormLab.kind, a.stormLab.devices)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	result, err := storm.Simulate(topo, a.stormLab.hops)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	a.stormLab.result = &result
	a.Worksheet.Storms = append(a.Worksheet.Storms, result)
	a.refresh()
	a.setStatus(fmt.Sprintf("%s: %s broadcasts in %d hops (%s), added to worksheet",
		result.Kind.Title(),
		englishPrinter.Sprintf("%d", result.TotalBroadcasts),
		a.stormLab.hops,
		result.Severity))
}
