package ui

import (
	"fmt"
	"strings"

	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

// binaryState holds the last inspected address and optional netmask.
type binaryState struct {
	addr    *ipv4.Addr
	netmask *ipv4.Netmask
}

func (a *App) renderBinary() {
	a.setChartVisible(false)
	details := new(strings.Builder)

	if a.binary.addr == nil {
		details.WriteString("Inspect an IPv4 address to see it as a router does.\n\n")
		details.WriteString("With a netmask, the network address is derived with a\n")
		details.WriteString("bitwise AND, one octet at a time.\n\n")
		details.WriteString("You can also parse a 32-bit binary string back into\n")
		details.WriteString("dotted-decimal form.\n")
	} else {
		addr := *a.binary.addr
		fmt.Fprintf(details, "Address              : %s\n", addr)
		fmt.Fprintf(details, "Binary               : %s\n", addr.DottedBinaryString())
		fmt.Fprintf(details, "Class                : %s\n", addr.Class())
		if addr.IsPrivate() {
			details.WriteString("Address Space        : Private (RFC 1918)\n")
		} else {
			details.WriteString("Address Space        : Public\n")
		}
		if a.binary.netmask != nil {
			mask := *a.binary.netmask
			network := addr & ipv4.Addr(mask)
			details.WriteString("\nNetmask AND operation, octet by octet:\n\n")
			fmt.Fprintf(details, "Address              : %s\n", addr.DottedBinaryString())
			fmt.Fprintf(details, "Netmask    (/%-2d)     : %s\n", mask.Prefix(), ipv4.Addr(mask).DottedBinaryString())
			fmt.Fprintf(details, "Network              : %s\n", network.DottedBinaryString())
			fmt.Fprintf(details, "\nNetwork Address      : %s\n", network)
		}
	}

	a.DetailsPanel.Clear()
	a.DetailsPanel.SetText(details.String())
}

func binaryRune(a *App, r rune) bool {
	switch r {
	case 'b':
		a.showDialogByName(binaryPageName)
		return true
	case 'p':
		a.showDialogByName(parseBinaryPageName)
		return true
	}
	return false
}

// InspectAddress shows the binary form of an address. netmask is
// optional; when present the AND operation is rendered too.
func (a *App) InspectAddress(address, netmask string) {
	addr, err := ipv4.ParseAddr(address)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	a.binary.addr = &addr
	a.binary.netmask = nil
	if strings.TrimSpace(netmask) != "" {
		mask, err := ipv4.ParseNetmask(netmask)
		if err != nil {
			a.setStatus("Error: " + err.Error())
			return
		}
		a.binary.netmask = &mask
	}
	a.refresh()
	a.setStatus("Inspected " + addr.String())
}

// ParseBinaryAddress converts a 32-bit binary string (dots and spaces
// allowed) into an address and inspects it.
func (a *App) ParseBinaryAddress(binary string) {
	addr, err := ipv4.ParseBinary(binary)
	if err != nil {
		a.setStatus("Error: " + err.Error())
		return
	}
	a.binary.addr = &addr
	a.binary.netmask = nil
	a.refresh()
	a.setStatus(fmt.Sprintf("Parsed binary to %s", addr))
}
