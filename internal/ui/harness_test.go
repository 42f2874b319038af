package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

const sentinelSyncKey = tcell.KeyF63

// testHarness drives the full application against a simulation screen.
type testHarness struct {
	t      *testing.T
	app    *App
	screen tcell.SimulationScreen
	runErr chan error
	once   sync.Once
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	app, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	app.TviewApp.SetScreen(screen)

	h := &testHarness{
		t:      t,
		app:    app,
		screen: screen,
		runErr: make(chan error, 1),
	}
	t.Cleanup(h.Close)

	go func() {
		h.runErr <- app.Run()
	}()

	h.WaitForDraw()
	// app.Run re-initializes the screen, which resets the simulation
	// screen to its 80x25 default, so the size must be applied after
	// the application has started.
	screen.SetSize(100, 50)
	h.WaitForDraw()
	return h
}

func (h *testHarness) Close() {
	h.once.Do(func() {
		h.app.Stop()
		select {
		case err := <-h.runErr:
			if err != nil {
				h.t.Fatalf("app run failed: %v", err)
			}
		case <-time.After(2 * time.Second):
		}
	})
}

func (h *testHarness) WaitForDraw() {
	done := make(chan struct{})
	h.app.TviewApp.QueueUpdateDraw(func() {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for draw")
	}
}

// PressKey injects a key followed by a sentinel key and waits until the
// application's input capture acknowledges the sentinel. This
// guarantees the real key has been fully processed.
func (h *testHarness) PressKey(key tcell.Key, r rune, mod tcell.ModMask) {
	h.t.Helper()

	done := make(chan struct{})
	h.app.SentinelCh = done

	h.screen.InjectKey(key, r, mod)
	h.screen.InjectKey(sentinelSyncKey, 0, tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for key processing")
	}
	h.WaitForDraw()
}

func (h *testHarness) PressRune(r rune) {
	h.PressKey(tcell.KeyRune, r, tcell.ModNone)
}

func (h *testHarness) TypeText(s string) {
	for _, r := range s {
		h.PressRune(r)
	}
}

func (h *testHarness) PressEnter() {
	h.PressKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func (h *testHarness) PressEscape() {
	h.PressKey(tcell.KeyEscape, 0, tcell.ModNone)
}

func (h *testHarness) PressDown() {
	h.PressKey(tcell.KeyDown, 0, tcell.ModNone)
}

func (h *testHarness) PressTab() {
	h.PressKey(tcell.KeyTab, 0, tcell.ModNone)
}

func (h *testHarness) GetScreenText() string {
	cells, width, height := h.screen.GetContents()
	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := cells[row*width+col]
			if len(cell.Runes) > 0 && cell.Runes[0] != 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func (h *testHarness) DumpScreen() {
	h.t.Logf("\n%s", h.GetScreenText())
}

func (h *testHarness) AssertScreenContains(substr string) {
	h.t.Helper()
	text := h.GetScreenText()
	if !strings.Contains(text, substr) {
		h.DumpScreen()
		h.t.Fatalf("screen does not contain %q", substr)
	}
}

func (h *testHarness) AssertScreenNotContains(substr string) {
	h.t.Helper()
	text := h.GetScreenText()
	if strings.Contains(text, substr) {
		h.DumpScreen()
		h.t.Fatalf("screen unexpectedly contains %q", substr)
	}
}
