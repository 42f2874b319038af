package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// englishPrinter formats large host counts with thousands separators.
var englishPrinter = message.NewPrinter(language.English)

// calcState holds the last calculator result and overlap check.
type calcState struct {
	info        *ipv4.Info
	class       ipv4.ClassReport
	overlapText string
}

func (a *App) renderCalculator() {
	a.setChartVisible(false)
	details := new(strings.Builder)

	if a.calc.info == nil {
		details.WriteString("Enter a subnet in CIDR notation to see its full breakdown.\n\n")
		details.WriteString("Examples: 192.168.1.0/24, 10.0.0.0/8, 172.16.50.0/26\n")
	} else {
		info := a.calc.info
		fmt.Fprintf(details, "CIDR                 : %s\n", info.Subnet)
		fmt.Fprintf(details, "Network Address      : %s\n", info.Network)
		fmt.Fprintf(details, "Broadcast Address    : %s\n", info.Broadcast)
		fmt.Fprintf(details, "Netmask              : %s\n", info.Netmask)
		fmt.Fprintf(details, "Wildcard Mask        : %s\n", info.Wildcard)
		fmt.Fprintf(details, "First Usable Host    : %s\n", info.FirstUsable)
		fmt.Fprintf(details, "Last Usable Host     : %s\n", info.LastUsable)
		fmt.Fprintf(details, "Total Addresses      : %s\n", englishPrinter.Sprintf("%d", info.TotalAddresses))
		fmt.Fprintf(details, "Usable Hosts         : %s\n", englishPrinter.Sprintf("%d", info.UsableHosts))
		fmt.Fprintf(details, "Network Bits         : %d\n", info.NetworkBits)
		fmt.Fprintf(details, "Host Bits            : %d\n", info.HostBits)
		fmt.Fprintf(details, "Classification       : %s\n", a.calc.class.Display)
		if info.Network.IsPrivate() {
			details.WriteString("Address Space        : Private (RFC 1918)\n")
		} else {
			details.WriteString("Address Space        : Public\n")
		}
		for _, warning := range a.calc.class.Warnings {
			fmt.Fprintf(details, "Warning              : %s\n", warning)
		}
	}

	if a.calc.overlapText != "" {
		details.WriteString("\nOverlap Check        : " + a.calc.overlapText + "\n")
	}

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
}

func calculatorRune(a *App, r rune) bool {
	switch r {
	case 'c':
		a.showDialogByName(calcPageName)
		return true
	case 'o':
		a.showDialogByName(overlapPageName)
		return true
	}
	return false
}

// CalculateSubnet parses the CIDR, computes the detail record, and adds
// the subnet to the worksheet.
func (a *App) CalculateSubnet(cidr string) {
	subnet, err := ipv4.ParseSubnet(cidr)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	info := subnet.Info()
	a.calc.info = &info
	a.calc.class = ipv4.Classify(subnet)
	a.Worksheet.Subnets = append(a.Worksheet.Subnets, info)
	a.refresh()
	a.setStatus(fmt.Sprintf("Calculated %s, added to worksheet", subnet))
}

// CheckOverlap compares two subnets and reports whether their address
// ranges intersect.
func (a *App) CheckOverlap(first, second string) {
	subnetA, err := ipv4.ParseSubnet(first)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	subnetB, err := ipv4.ParseSubnet(second)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	overlaps, explanation := ipv4.OverlapReport(subnetA, subnetB)
	a.calc.overlapText = explanation
	a.refresh()
	if overlaps {
		a.setStatus(fmt.Sprintf("%s and %s OVERLAP", subnetA, subnetB))
	} else {
		a.setStatus(fmt.Sprintf("%s and %s do not overlap", subnetA, subnetB))
	}
}
