package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ace-iot/subnet-academy/internal/export"
	"github.com/ace-iot/subnet-academy/internal/scenario"
)

const (
	mainPageName = "*main*"
	quitPageName = "*quit*"
	helpPageName = "*help*"

	calcPageName        = "*calc*"
	overlapPageName     = "*overlap*"
	binaryPageName      = "*binary*"
	parseBinaryPageName = "*parse-binary*"
	splitPageName       = "*split*"
	addBBMDPageName     = "*add-bbmd*"
	tracePageName       = "*trace*"

	FormFieldWidth          = 42
	maxDialogViewportHeight = 23
)

var GlobalKeys = []string{"<q> Quit", "<ctrl+s> Export Worksheet"}

// App holds all UI state for the Subnet Academy application.
type App struct {
	Scenarios []scenario.Scenario
	WorkDir   string

	TviewApp *tview.Application
	Pages    *tview.Pages

	// Layout widgets.
	PositionLine *tview.TextView
	NavPanel     *tview.List
	DetailsPanel *tview.TextView
	ChartPanel   *tview.TextView
	StatusLine   *tview.TextView
	KeysLine     *tview.TextView
	DetailsFlex  *tview.Flex

	// Navigation state.
	currentModule    *module
	CurrentFocusKeys []string

	// Everything the session produced, exported on Ctrl+S.
	Worksheet export.Worksheet

	// Per-module state.
	calc     calcState
	binary   binaryState
	split    splitState
	stormLab stormLabState
	designer designerState
	scenIdx  int

	// Quit dialog reference.
	quitDialog *tview.Modal

	// dialogForms maps page names to their forms for static dialogs created at init.
	dialogForms map[string]*tview.Form

	// Test synchronization: if non-nil, closed when a sentinel key is received.
	SentinelCh chan struct{}
}

// New creates a new App, loads the scenario catalog, and sets up the UI.
// Worksheets are exported into dir.
func New(dir string) (*App, error) {
	scenarios, err := scenario.Load()
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	extra, err := scenario.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load scenario dir: %w", err)
	}

	a := &App{
		Scenarios:   append(scenarios, extra...),
		WorkDir:     dir,
		dialogForms: make(map[string]*tview.Form),
		stormLab:    newStormLabState(),
	}
	a.setupLayout()
	a.selectModule(0)

	return a, nil
}

// Run starts the tview application loop.
func (a *App) Run() error {
	return a.TviewApp.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	if a.TviewApp != nil {
		a.TviewApp.Stop()
	}
}

// setStatus updates the status line text.
func (a *App) setStatus(text string) {
	a.StatusLine.Clear()
	a.StatusLine.SetText(text)
}

// Save renders the collected worksheet to SUBNET-ACADEMY.md.
func (a *App) Save() {
	if err := export.Save(a.WorkDir, &a.Worksheet); err != nil {
		a.setStatus("Error exporting worksheet: " + err.Error())
		return
	}
	a.setStatus("Exported " + export.MarkdownFileName)
}

// UpdateKeysLine refreshes the keyboard shortcuts help line.
func (a *App) UpdateKeysLine() {
	if a.KeysLine == nil {
		return
	}

	mandatoryHelpKey := "<?> Help"
	keys := append(append([]string{}, GlobalKeys...), a.CurrentFocusKeys...)
	visibleKeys := append(append([]string{}, keys...), mandatoryHelpKey)
	text := " " + strings.Join(visibleKeys, " | ")

	_, _, innerWidth, _ := a.KeysLine.GetInnerRect()
	if innerWidth > 0 {
		for len(visibleKeys) > 1 && len(text) > innerWidth {
			visibleKeys = visibleKeys[:len(visibleKeys)-2]
			visibleKeys = append(visibleKeys, mandatoryHelpKey)
			text = " " + strings.Join(visibleKeys, " | ")
		}
		if len(visibleKeys) == 1 {
			text = " " + mandatoryHelpKey
		}
	}

	a.KeysLine.SetText(text)
}

func (a *App) showHelpPopup() {
	var content strings.Builder
	content.WriteString("Full keyboard shortcuts\n\n")
	content.WriteString("Navigation\n")
	content.WriteString("- j / Down Arrow: Move down\n")
	content.WriteString("- k / Up Arrow: Move up\n")
	content.WriteString("- l / Right Arrow / Enter: Open module\n\n")
	content.WriteString("Global\n")
	content.WriteString("- q: Quit (with confirmation)\n")
	content.WriteString("- Ctrl+S: Export worksheet\n")
	content.WriteString("- Ctrl+Q: Force quit\n")
	content.WriteString("- ?: Show this help\n\n")
	content.WriteString("Current module\n")
	if a.currentModule != nil {
		content.WriteString(a.currentModule.description)
		content.WriteString("\n\n")
	}
	for _, key := range a.CurrentFocusKeys {
		content.WriteString("- ")
		content.WriteString(key)
		content.WriteString("\n")
	}

	helpText := tview.NewTextView().
		SetText(content.String()).
		SetScrollable(true).
		SetWrap(true).
		SetWordWrap(true)
	helpText.SetBorder(true).SetTitle("Keyboard Shortcuts (scroll: Up/Down, PgUp/PgDn)")
	helpText.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyBS, tcell.KeyBackspace2:
			a.dismissHelpPopup()
			return nil
		}
		return event
	})

	dialogWidth := 58
	dialogHeight := 20

	a.Pages.RemovePage(helpPageName)
	a.Pages.AddPage(helpPageName, a.createDialogPage(helpText, dialogWidth, dialogHeight), true, true)
	a.Pages.ShowPage(helpPageName)
	a.TviewApp.SetFocus(helpText)
}

func (a *App) dismissHelpPopup() {
	a.Pages.RemovePage(helpPageName)
	a.Pages.SwitchToPage(mainPageName)
	a.TviewApp.SetFocus(a.NavPanel)
}

// resizeStatusLine adjusts the status panel height to fit its text content.
func (a *App) resizeStatusLine() {
	if a.StatusLine == nil || a.DetailsFlex == nil {
		return
	}

	_, _, innerWidth, _ := a.StatusLine.GetInnerRect()
	if innerWidth <= 0 {
		a.DetailsFlex.ResizeItem(a.StatusLine, 3, 0)
		return
	}

	text := a.StatusLine.GetText(false)
	requiredLines := wrappedLineCount(text, innerWidth)
	height := requiredLines + 2 // top and bottom border
	if height < 3 {
		height = 3
	}
	a.DetailsFlex.ResizeItem(a.StatusLine, height, 0)
}

// wrappedLineCount returns the number of visual lines after word wrapping.
func wrappedLineCount(text string, width int) int {
	if width <= 0 {
		return 1
	}
	totalLines := 0
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			totalLines++
			continue
		}
		wrapped := tview.WordWrap(line, width)
		if len(wrapped) == 0 {
			totalLines++
			continue
		}
		totalLines += len(wrapped)
	}
	if totalLines < 1 {
		return 1
	}
	return totalLines
}
