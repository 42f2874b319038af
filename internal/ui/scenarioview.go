package ui

import (
	"fmt"
	"strings"
)

func (a *App) renderScenario() {
	a.setChartVisible(false)
	details := new(strings.Builder)

	if len(a.Scenarios) == 0 {
		details.WriteString("No scenarios loaded.\n")
		a.DetailsPanel.Clear()
		a.DetailsPanel.SetText(details.String())
		return
	}
	if a.scenIdx >= len(a.Scenarios) {
		a.scenIdx = 0
	}
	scen := a.Scenarios[a.scenIdx]

	fmt.Fprintf(details, "Scenario %d of %d: %s\n\n", a.scenIdx+1, len(a.Scenarios), scen.Name)
	details.WriteString(scen.Summary)
	details.WriteString("\n\nSubnets:\n")
	for _, sub := range scen.Subnets {
		fmt.Fprintf(details, "- %-18s %s", sub.CIDR, sub.Name)
		if sub.Note != "" {
			details.WriteString(" (" + sub.Note + ")")
		}
		details.WriteString("\n")
	}
	if len(scen.BBMDs) == 0 {
		details.WriteString("\nBBMDs: none, this design does not use them.\n")
	} else {
		details.WriteString("\nBBMDs:\n")
		for _, b := range scen.BBMDs {
			fmt.Fprintf(details, "- %-18s %s on %s\n", b.Name, b.Address, b.Subnet)
		}
	}
	if len(scen.Checklist) > 0 {
		details.WriteString("\nDesign checklist:\n")
		for _, item := range scen.Checklist {
			details.WriteString("- " + item + "\n")
		}
	}

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
}

func scenarioRune(a *App, r rune) bool {
	switch r {
	case 'n':
		if len(a.Scenarios) > 0 {
			a.scenIdx = (a.scenIdx + 1) % len(a.Scenarios)
			a.refresh()
		}
		return true
	case 'p':
		if len(a.Scenarios) > 0 {
			a.scenIdx = (a.scenIdx - 1 + len(a.Scenarios)) % len(a.Scenarios)
			a.refresh()
		}
		return true
	case 'e':
		a.addScenarioToWorksheet()
		return true
	}
	return false
}

func (a *App) addScenarioToWorksheet() {
	if len(a.Scenarios) == 0 {
		return
	}
	scen := a.Scenarios[a.scenIdx]
	for _, existing := range a.Worksheet.Scenarios {
		if existing.ID == scen.ID {
			a.setStatus(scen.Name + " is already on the worksheet")
			return
		}
	}
	a.Worksheet.Scenarios = append(a.Worksheet.Scenarios, scen)
	a.setStatus("Added " + scen.Name + " to worksheet")
}
