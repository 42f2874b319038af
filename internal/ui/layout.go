package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (a *App) setupLayout() {
	a.TviewApp = tview.NewApplication()
	a.Pages = tview.NewPages()
	rootFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	a.PositionLine = tview.NewTextView()
	a.PositionLine.SetBorder(true)
	a.PositionLine.SetTitle("Navigation")
	a.PositionLine.SetText("Home")
	rootFlex.AddItem(a.PositionLine, 3, 1, false)

	middleFlex := tview.NewFlex().SetDirection(tview.FlexColumn)
	rootFlex.AddItem(middleFlex, 0, 2, false)

	a.NavPanel = tview.NewList()
	a.NavPanel.ShowSecondaryText(false)
	a.NavPanel.SetBorder(true).SetTitle("Modules")
	for _, m := range modules() {
		a.NavPanel.AddItem(m.title, "", 0, nil)
	}
	middleFlex.AddItem(a.NavPanel, 0, 1, false)

	a.DetailsFlex = tview.NewFlex().SetDirection(tview.FlexRow)
	middleFlex.AddItem(a.DetailsFlex, 0, 2, false)

	a.DetailsPanel = tview.NewTextView()
	a.DetailsPanel.SetDynamicColors(true)
	a.DetailsPanel.SetBorder(true).SetTitle("Details")
	a.DetailsFlex.AddItem(a.DetailsPanel, 0, 2, false)

	a.ChartPanel = tview.NewTextView()
	a.ChartPanel.SetDynamicColors(true)
	a.ChartPanel.SetBorder(true).SetTitle("Packets per Hop")
	a.DetailsFlex.AddItem(a.ChartPanel, 0, 0, false)

	a.KeysLine = tview.NewTextView()
	a.KeysLine.SetBorder(false)
	a.UpdateKeysLine()
	rootFlex.AddItem(a.KeysLine, 1, 1, false)

	a.StatusLine = tview.NewTextView()
	a.StatusLine.SetBorder(true)
	a.StatusLine.SetTitle("Status")
	a.StatusLine.SetWrap(true)
	a.StatusLine.SetWordWrap(true)
	a.StatusLine.SetChangedFunc(func() {
		a.resizeStatusLine()
	})
	a.DetailsFlex.AddItem(a.StatusLine, 3, 0, false)

	a.Pages.AddPage(mainPageName, rootFlex, true, true)

	// Redirect focus from non-interactive panels to nav panel.
	a.PositionLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.NavPanel) })
	a.DetailsPanel.SetFocusFunc(func() { a.TviewApp.SetFocus(a.NavPanel) })
	a.ChartPanel.SetFocusFunc(func() { a.TviewApp.SetFocus(a.NavPanel) })
	a.StatusLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.NavPanel) })
	a.KeysLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.NavPanel) })

	// Module list callbacks. Highlighting a module opens it; there is
	// no deeper navigation level.
	a.NavPanel.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.selectModule(index)
	})
	a.NavPanel.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.selectModule(index)
	})

	// Input capture on nav panel for vim keys and module shortcuts.
	a.NavPanel.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlU:
			return tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone)
		case tcell.KeyCtrlD:
			return tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				return tcell.NewEventKey(tcell.KeyDown, tcell.RuneDArrow, tcell.ModNone)
			case 'k':
				return tcell.NewEventKey(tcell.KeyUp, tcell.RuneUArrow, tcell.ModNone)
			case 'q':
				a.Pages.ShowPage(quitPageName)
				a.quitDialog.SetFocus(1)
				a.TviewApp.SetFocus(a.quitDialog)
				return nil
			case '?':
				a.showHelpPopup()
				return nil
			}
			if a.currentModule != nil && a.currentModule.onRune(a, event.Rune()) {
				return nil
			}
		}
		return event
	})

	// ---- All dialogs ----
	// Helper to create and register a simple form dialog.
	makeFormDialog := func(pageName, title string, buildForm func(form *tview.Form)) {
		form := tview.NewForm().SetButtonsAlign(tview.AlignCenter)
		buildForm(form)
		form.SetBorder(true).SetTitle(title)
		a.dialogForms[pageName] = form
		cancelDialog := func() {
			for i := 0; i < form.GetFormItemCount(); i++ {
				if input, ok := form.GetFormItem(i).(*tview.InputField); ok {
					input.SetText("")
				}
			}
			a.Pages.SwitchToPage(mainPageName)
			a.TviewApp.SetFocus(a.NavPanel)
		}
		a.wireDialogFormKeys(form, cancelDialog)
		a.Pages.AddPage(pageName, a.createDialogPage(form, computeFormDialogWidth(form), computeFormDialogHeight(form)), true, false)
	}

	// Subnet Calculator dialog.
	makeFormDialog(calcPageName, "Calculate Subnet", func(form *tview.Form) {
		form.AddInputField("CIDR", "", FormFieldWidth, nil, nil).
			AddButton("Calculate", func() {
				a.CalculateSubnet(getAndClearTextFromInputField(form, "CIDR"))
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "CIDR")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Overlap check dialog.
	makeFormDialog(overlapPageName, "Check Overlap", func(form *tview.Form) {
		form.AddInputField("First CIDR", "", FormFieldWidth, nil, nil).
			AddInputField("Second CIDR", "", FormFieldWidth, nil, nil).
			AddButton("Check", func() {
				first := getAndClearTextFromInputField(form, "First CIDR")
				second := getAndClearTextFromInputField(form, "Second CIDR")
				a.CheckOverlap(first, second)
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "First CIDR")
				getAndClearTextFromInputField(form, "Second CIDR")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Binary inspector dialog.
	makeFormDialog(binaryPageName, "Inspect Address", func(form *tview.Form) {
		form.AddInputField("IP Address", "", FormFieldWidth, nil, nil).
			AddInputField("Netmask", "", FormFieldWidth, nil, nil).
			AddButton("Inspect", func() {
				address := getAndClearTextFromInputField(form, "IP Address")
				netmask := getAndClearTextFromInputField(form, "Netmask")
				a.InspectAddress(address, netmask)
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "IP Address")
				getAndClearTextFromInputField(form, "Netmask")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Parse binary dialog.
	makeFormDialog(parseBinaryPageName, "Parse Binary Address", func(form *tview.Form) {
		form.AddInputField("Binary", "", FormFieldWidth, nil, nil).
			AddButton("Parse", func() {
				a.ParseBinaryAddress(getAndClearTextFromInputField(form, "Binary"))
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "Binary")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Splitter dialog.
	makeFormDialog(splitPageName, "Split Subnet", func(form *tview.Form) {
		form.AddInputField("CIDR", "", FormFieldWidth, nil, nil).
			AddInputField("New Prefix Length", "", FormFieldWidth, nil, nil).
			AddButton("Split", func() {
				cidr := getAndClearTextFromInputField(form, "CIDR")
				newPrefix := getAndClearTextFromInputField(form, "New Prefix Length")
				a.SplitSubnet(cidr, newPrefix)
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "CIDR")
				getAndClearTextFromInputField(form, "New Prefix Length")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Add BBMD dialog.
	makeFormDialog(addBBMDPageName, "Add BBMD", func(form *tview.Form) {
		form.AddInputField("Name", "", FormFieldWidth, nil, nil).
			AddInputField("Address", "", FormFieldWidth, nil, nil).
			AddInputField("Subnet", "", FormFieldWidth, nil, nil).
			AddInputField("BDT", "", FormFieldWidth, nil, nil).
			AddButton("Add", func() {
				name := getAndClearTextFromInputField(form, "Name")
				address := getAndClearTextFromInputField(form, "Address")
				subnet := getAndClearTextFromInputField(form, "Subnet")
				bdt := getAndClearTextFromInputField(form, "BDT")
				a.AddBBMD(name, address, subnet, bdt)
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "Name")
				getAndClearTextFromInputField(form, "Address")
				getAndClearTextFromInputField(form, "Subnet")
				getAndClearTextFromInputField(form, "BDT")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Forward trace dialog.
	makeFormDialog(tracePageName, "Forward Trace", func(form *tview.Form) {
		form.AddInputField("From BBMD", "", FormFieldWidth, nil, nil).
			AddInputField("To BBMD", "", FormFieldWidth, nil, nil).
			AddButton("Trace", func() {
				from := getAndClearTextFromInputField(form, "From BBMD")
				to := getAndClearTextFromInputField(form, "To BBMD")
				a.TraceForward(from, to)
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			}).
			AddButton("Cancel", func() {
				getAndClearTextFromInputField(form, "From BBMD")
				getAndClearTextFromInputField(form, "To BBMD")
				a.Pages.SwitchToPage(mainPageName)
				a.TviewApp.SetFocus(a.NavPanel)
			})
	})

	// Quit dialog.
	{
		a.quitDialog = tview.NewModal().SetText("Do you want to quit? Export your worksheet first with Ctrl+S.").
			AddButtons([]string{"Quit", "Cancel"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				switch buttonLabel {
				case "Quit":
					a.TviewApp.Stop()
				case "Cancel":
					fallthrough
				default:
					a.Pages.SwitchToPage(mainPageName)
					a.TviewApp.SetFocus(a.NavPanel)
				}
			})
		a.Pages.AddPage(quitPageName, a.quitDialog, true, false)
	}

	// Root setup.
	a.TviewApp.SetRoot(a.Pages, true)
	a.TviewApp.EnableMouse(true)
	a.TviewApp.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		a.resizeStatusLine()
		a.UpdateKeysLine()
		return false
	})
	a.TviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Test sentinel: if a sentinel channel is set and the sentinel key is received,
		// signal completion and consume the event.
		if a.SentinelCh != nil && event.Key() == tcell.KeyF63 {
			ch := a.SentinelCh
			a.SentinelCh = nil
			close(ch)
			return nil
		}
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.Pages.ShowPage(quitPageName)
			a.quitDialog.SetFocus(1)
			a.TviewApp.SetFocus(a.quitDialog)
			return nil
		case tcell.KeyCtrlS:
			a.Save()
			return nil
		case tcell.KeyCtrlQ:
			a.TviewApp.Stop()
			return nil
		}
		return event
	})
	a.Pages.SwitchToPage(mainPageName)
	a.TviewApp.SetFocus(a.NavPanel)
}

// setChartVisible resizes the chart panel in or out of the details column.
func (a *App) setChartVisible(visible bool) {
	if visible {
		a.DetailsFlex.ResizeItem(a.ChartPanel, 0, 1)
	} else {
		a.ChartPanel.Clear()
		a.DetailsFlex.ResizeItem(a.ChartPanel, 0, 0)
	}
}

// mouseBlocker returns a box that absorbs mouse events (prevents clicking through dialog overlays).
func mouseBlocker() *tview.Box {
	box := tview.NewBox()
	box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		return action, nil
	})
	return box
}

// createDialogPage wraps a form or content primitive in a centered dialog overlay.
func (a *App) createDialogPage(content tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(mouseBlocker(), 0, 1, false).
		AddItem(
			tview.NewFlex().SetDirection(tview.FlexRow).
				AddItem(mouseBlocker(), 0, 1, false).
				AddItem(content, height, 1, false).
				AddItem(mouseBlocker(), 0, 1, false),
			width, 1, false).
		AddItem(mouseBlocker(), 0, 1, false)
}

// submitPrimaryFormButton programmatically activates the first button in a form.
func submitPrimaryFormButton(form *tview.Form, setFocus func(p tview.Primitive)) {
	if form.GetButtonCount() == 0 {
		return
	}
	handler := form.GetButton(0).InputHandler()
	if handler == nil {
		return
	}
	handler(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), setFocus)
}

// wireDialogFormKeys sets up standard keyboard handling for a dialog form.
func (a *App) wireDialogFormKeys(form *tview.Form, onCancel func()) {
	form.SetCancelFunc(onCancel)
	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			onCancel()
			return nil
		case tcell.KeyEnter:
			submitPrimaryFormButton(form, func(p tview.Primitive) {
				a.TviewApp.SetFocus(p)
			})
			return nil
		}
		return event
	})
}

// showDialogByName shows a static dialog and focuses its first field.
func (a *App) showDialogByName(pageName string) {
	a.Pages.ShowPage(pageName)
	form := a.dialogForms[pageName]
	if form != nil {
		form.SetFocus(0)
		a.TviewApp.SetFocus(form)
	}
}
