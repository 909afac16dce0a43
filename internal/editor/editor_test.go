package editor

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

type saved struct {
	cfg    config.Wallpaper
	device string
}

func newTestModel(t *testing.T, saves *[]saved) Model {
	t.Helper()
	mini, ok := device.ByName("iPhone 13 mini")
	if !ok {
		t.Fatal("iPhone 13 mini missing from the catalogue")
	}
	return New(Options{
		Config:  config.Default(),
		Device:  mini,
		BaseURL: "https://example.com",
		Clock:   func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
		Save: func(cfg config.Wallpaper, name string) error {
			*saves = append(*saves, saved{cfg, name})
			return nil
		},
	})
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// keystrokes sends s one rune at a time.
func keystrokes(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, typed(string(r)))
	}
	return msgs
}

func TestNewDefaultsDevice(t *testing.T) {
	m := New(Options{Config: config.Default()})
	if got := m.Device().Name; got != device.DefaultModel {
		t.Errorf("Device() = %q, want %q", got, device.DefaultModel)
	}
}

func TestSelectorsCycle(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	m = press(t, m, right)
	if got := m.Device().Name; got != "iPhone 17 Pro Max" {
		t.Errorf("device after wrap = %q, want iPhone 17 Pro Max", got)
	}
	m = press(t, m, left)
	if got := m.Device().Name; got != "iPhone 13 mini" {
		t.Errorf("device after left = %q, want iPhone 13 mini", got)
	}

	m = press(t, m, down, right)
	if m.Config().Theme != theme.Light {
		t.Errorf("theme = %s, want light", m.Config().Theme)
	}
	m = press(t, m, left, left)
	if m.Config().Theme != theme.Sunset {
		t.Errorf("theme = %s, want sunset", m.Config().Theme)
	}

	m = press(t, m, down, right)
	if m.Config().Widget != widget.DotGrid {
		t.Errorf("widget = %s, want dotgrid", m.Config().Widget)
	}

	if len(saves) != 6 {
		t.Fatalf("saved %d times, want 6", len(saves))
	}
	last := saves[len(saves)-1]
	if last.device != "iPhone 13 mini" || last.cfg.Theme != theme.Sunset || last.cfg.Widget != widget.DotGrid {
		t.Errorf("last save = %+v", last)
	}
}

func TestFocusWraps(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	m = press(t, m, up)
	if m.focus != fieldLabel {
		t.Errorf("focus after up from first field = %d, want label", m.focus)
	}
	m = press(t, m, down)
	if m.focus != fieldDevice {
		t.Errorf("focus after down from last field = %d, want device", m.focus)
	}
}

func TestLabelInput(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	m = press(t, m, down, down, down, down, typed("Go"), typed("!"))
	if got := m.Config().Label; got != "Go!" {
		t.Errorf("label = %q, want Go!", got)
	}
	if len(saves) != 2 {
		t.Errorf("saved %d times, want 2", len(saves))
	}

	// Arrow keys move the cursor instead of cycling a selector.
	m = press(t, m, left, right)
	if m.Config().Theme != theme.Dark {
		t.Errorf("theme changed while editing text: %s", m.Config().Theme)
	}
}

func TestColourInput(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	m = press(t, m, down, down, down)
	m = press(t, m, keystrokes("#ff00f")...)
	if got := m.Config().CustomColor; got != "#ff0" {
		t.Errorf("colour while typing = %q, want last valid value #ff0", got)
	}

	m = press(t, m, typed("f"))
	if got := m.Config().CustomColor; got != "#ff00ff" {
		t.Errorf("colour = %q, want #ff00ff", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.Config().CustomColor; got != "" {
		t.Errorf("colour after reset = %q, want empty", got)
	}
	if m.color.Value() != "" {
		t.Errorf("colour input after reset = %q, want empty", m.color.Value())
	}
}

func TestRender(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	var gotRes device.Resolution
	m.opts.Render = func(cfg config.Wallpaper, res device.Resolution) (string, error) {
		gotRes = res
		return "/tmp/wall.png", nil
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("render key returned no command")
	}
	m = press(t, next.(Model), cmd())

	if gotRes != (device.Resolution{Width: 1080, Height: 2340}) {
		t.Errorf("rendered at %v, want 1080x2340", gotRes)
	}
	if !strings.Contains(m.View(), "wrote /tmp/wall.png") {
		t.Error("view does not report the written file")
	}

	m.opts.Render = func(config.Wallpaper, device.Resolution) (string, error) {
		return "", errors.New("disk full")
	}
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, next.(Model), cmd())
	if !strings.Contains(m.View(), "disk full") {
		t.Error("view does not report the render error")
	}
}

func TestQuit(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not quit", k)
		}
	}
}

func TestSaveError(t *testing.T) {
	m := New(Options{
		Config: config.Default(),
		Save:   func(config.Wallpaper, string) error { return errors.New("read-only") },
	})

	m = press(t, m, right)
	if !strings.Contains(m.View(), "error: read-only") {
		t.Error("view does not report the save error")
	}
}

func TestView(t *testing.T) {
	var saves []saved
	m := newTestModel(t, &saves)

	view := m.View()
	for _, want := range []string{
		"iPhone 13 mini (1080x2340)",
		"https://example.com/api/og?",
		"theme=dark",
		"16.7%",
		"305",
		"generated at - 00:00 on 01 Mar",
		"2024",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWidgetPreview(t *testing.T) {
	facts, err := progress.Compute(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "UTC")
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	style := lipgloss.NewStyle()

	tests := []struct {
		kind     widget.Kind
		rows     int
		contains string
	}{
		{widget.Ring, 2, "2024"},
		{widget.DotGrid, 5, "●"},
		{widget.Numeric, 2, widget.Caption},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			rows := widgetPreview(tt.kind, facts, style, style)
			if len(rows) != tt.rows {
				t.Errorf("got %d rows, want %d", len(rows), tt.rows)
			}
			if !strings.Contains(strings.Join(rows, "\n"), tt.contains) {
				t.Errorf("preview missing %q: %q", tt.contains, rows)
			}
		})
	}
}
