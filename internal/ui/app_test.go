package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ace-iot/subnet-academy/internal/export"
)

func TestStartupShowsModules(t *testing.T) {
	h := newTestHarness(t)

	for _, want := range []string{
		"Subnet Calculator",
		"Binary & Routing",
		"Subnet Splitter",
		"Broadcast Storm Lab",
		"BBMD Designer",
		"Scenarios",
		"Home > Subnet Calculator",
		"Enter a subnet in CIDR notation",
	} {
		h.AssertScreenContains(want)
	}
}

func TestCalculatorFlow(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('c')
	h.AssertScreenContains("Calculate Subnet")

	h.TypeText("192.168.1.0/24")
	h.PressEnter()

	h.AssertScreenContains("Network Address      : 192.168.1.0")
	h.AssertScreenContains("Broadcast Address    : 192.168.1.255")
	h.AssertScreenContains("Usable Hosts         : 254")
	h.AssertScreenContains("added to worksheet")

	if len(h.app.Worksheet.Subnets) != 1 {
		t.Fatalf("worksheet subnets = %d, want 1", len(h.app.Worksheet.Subnets))
	}
}

func TestCalculatorRejectsGarbage(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('c')
	h.TypeText("not-a-subnet")
	h.PressEnter()

	h.AssertScreenContains("Error:")
	if len(h.app.Worksheet.Subnets) != 0 {
		t.Fatalf("bad input must not reach the worksheet")
	}
}

func TestOverlapCheck(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('o')
	h.AssertScreenContains("Check Overlap")

	h.TypeText("10.0.0.0/8")
	h.PressTab()
	h.TypeText("10.1.0.0/16")
	h.PressEnter()

	h.AssertScreenContains("OVERLAP")
	h.AssertScreenContains("10.1.0.0/16 is a subnet of 10.0.0.0/8")
}

func TestBinaryInspector(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('j')
	h.AssertScreenContains("Home > Binary & Routing")

	h.PressRune('b')
	h.AssertScreenContains("Inspect Address")
	h.TypeText("192.168.1.130")
	h.PressTab()
	h.TypeText("255.255.255.192")
	h.PressEnter()

	h.AssertScreenContains("11000000.10101000.00000001.10000010")
	h.AssertScreenContains("Network Address      : 192.168.1.128")
}

func TestStormLabRun(t *testing.T) {
	h := newTestHarness(t)

	for i := 0; i < 3; i++ {
		h.PressRune('j')
	}
	h.AssertScreenContains("Home > Broadcast Storm Lab")
	h.AssertScreenContains("Branching Factor")
	h.AssertScreenContains("Press <r> to run the simulation.")

	// The wavefront walks the default chain topology hop by hop.
	h.AssertScreenContains("Wavefront from Device1")
	h.AssertScreenContains("hop 7  : Device8")

	h.PressRune('r')
	h.AssertScreenContains("SAFE")

	h.PressRune('2')
	h.AssertScreenContains("Forwarding Loop      : YES")
	h.AssertScreenContains("Wavefront from BBMD-A")
	h.AssertScreenContains("hop 2  : Dev-2, Dev-3")
	h.PressRune('r')
	h.AssertScreenContains("CRITICAL")

	if len(h.app.Worksheet.Storms) != 2 {
		t.Fatalf("worksheet storms = %d, want 2", len(h.app.Worksheet.Storms))
	}
}

func TestDesignerValidate(t *testing.T) {
	h := newTestHarness(t)

	for i := 0; i < 4; i++ {
		h.PressRune('j')
	}
	h.AssertScreenContains("Home > BBMD Designer")

	h.PressRune('a')
	h.AssertScreenContains("Add BBMD")
	h.TypeText("BBMD-1")
	h.PressTab()
	h.TypeText("10.100.1.1")
	h.PressTab()
	h.TypeText("10.100.1.0/24")
	h.PressEnter()

	h.PressRune('a')
	h.TypeText("BBMD-2")
	h.PressTab()
	h.TypeText("10.100.2.1")
	h.PressTab()
	h.TypeText("10.100.2.0/24")
	h.PressEnter()

	h.PressRune('m')
	h.AssertScreenContains("Meshed BDTs across 2 BBMDs")

	h.PressRune('v')
	h.AssertScreenContains("no problems found")

	if len(h.app.Worksheet.Plans) != 1 {
		t.Fatalf("worksheet plans = %d, want 1", len(h.app.Worksheet.Plans))
	}
}

func TestScenarioBrowsing(t *testing.T) {
	h := newTestHarness(t)

	for i := 0; i < 5; i++ {
		h.PressRune('j')
	}
	h.AssertScreenContains("Home > Scenarios")
	h.AssertScreenContains("Three-Floor Office Building")

	h.PressRune('n')
	h.AssertScreenNotContains("Scenario 1 of")
	h.AssertScreenContains("Scenario 2 of")

	h.PressRune('e')
	if len(h.app.Worksheet.Scenarios) != 1 {
		t.Fatalf("worksheet scenarios = %d, want 1", len(h.app.Worksheet.Scenarios))
	}

	// Adding the same scenario twice is a no-op.
	h.PressRune('e')
	if len(h.app.Worksheet.Scenarios) != 1 {
		t.Fatalf("duplicate scenario must not be added twice")
	}
}

func TestExportWorksheet(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('c')
	h.TypeText("172.16.0.0/12")
	h.PressEnter()

	h.PressKey(tcell.KeyCtrlS, 0, tcell.ModNone)
	h.AssertScreenContains("Exported " + export.MarkdownFileName)

	data, err := os.ReadFile(filepath.Join(h.app.WorkDir, export.MarkdownFileName))
	if err != nil {
		t.Fatalf("read worksheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("worksheet file is empty")
	}
}

func TestHelpPopup(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('?')
	h.AssertScreenContains("Full keyboard shortcuts")

	h.PressEscape()
	h.AssertScreenNotContains("Full keyboard shortcuts")
}

func TestQuitDialogCancel(t *testing.T) {
	h := newTestHarness(t)

	h.PressRune('q')
	h.AssertScreenContains("Do you want to quit?")

	// Focus starts on Cancel.
	h.PressEnter()
	h.AssertScreenNotContains("Do you want to quit?")
	h.AssertScreenContains("Home > Subnet Calculator")
}
