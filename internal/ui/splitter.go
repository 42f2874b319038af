package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ace-iot/subnet-academy/internal/export"
	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// splitState holds the last split exercise.
type splitState struct {
	parent   *ipv4.Subnet
	newBits  int
	children []ipv4.Subnet
}

func (a *App) renderSplitter() {
	a.setChartVisible(false)
	details := new(strings.Builder)

	if a.split.parent == nil {
		details.WriteString("Split a network into equal child subnets.\n\n")
		details.WriteString("Each extra prefix bit doubles the subnet count and halves\n")
		details.WriteString("the hosts per subnet. The children tile the parent exactly:\n")
		details.WriteString("each child's network is the previous child's broadcast + 1.\n")
	} else {
		fmt.Fprintf(details, "Parent               : %s\n", a.split.parent)
		fmt.Fprintf(details, "New Prefix Length    : /%d\n", a.split.newBits)
		fmt.Fprintf(details, "Child Subnets        : %d\n", len(a.split.children))
		if len(a.split.children) > 0 {
			usable := a.split.children[0].Info().UsableHosts
			fmt.Fprintf(details, "Usable Hosts Each    : %s\n", englishPrinter.Sprintf("%d", usable))
		}
		details.WriteString("\n")
		for i, child := range a.split.children {
			info := child.Info()
			fmt.Fprintf(details, "%3d. %-18s  network %-15s  broadcast %s\n",
				i+1, child, info.Network, info.Broadcast)
		}
	}

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
}

func splitterRune(a *App, r rune) bool {
	if r == 's' {
		a.showDialogByName(splitPageName)
		return true
	}
	return false
}

// SplitSubnet splits the CIDR into /newPrefix children and adds the
// exercise to the worksheet.
func (a *App) SplitSubnet(cidr, newPrefix string) {
	parent, err := ipv4.ParseSubnet(cidr)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	newBits, err := strconv.Atoi(strings.TrimSpace(newPrefix))
	if err != nil {
		a.setStatus(fmt.Sprintf("Error: bad prefix length %q", newPrefix))
		return
	}
	children, err := parent.Split(newBits)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	a.split.parent = &parent
	a.split.newBits = newBits
	a.split.children = children
	a.Worksheet.Splits = append(a.Worksheet.Splits, export.SplitSection{
		Parent:   parent,
		NewBits:  newBits,
		Children: children,
	})
	a.refresh()
	a.setStatus(fmt.Sprintf("Split %s into %d x /%d subnets, added to worksheet", parent, len(children), newBits))
}
