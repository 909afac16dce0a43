// Package editor is the interactive terminal editor for wallpaper settings.
//
// Every change is persisted through Options.Save and reflected immediately in
// a live summary and the shareable link, mirroring the web editor the
// wallpaper endpoint was built for.
package editor

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/yearpaper/internal/colour"
	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

type field int

const (
	fieldDevice field = iota
	fieldTheme
	fieldWidget
	fieldColor
	fieldLabel
	fieldCount
)

// SaveFunc persists the current settings.
type SaveFunc func(cfg config.Wallpaper, deviceName string) error

// RenderFunc renders the current settings and returns where the image went.
type RenderFunc func(cfg config.Wallpaper, res device.Resolution) (string, error)

// Options configures a Model.
type Options struct {
	Config  config.Wallpaper
	Device  device.Profile
	BaseURL string

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Save is called after every change. Nil disables persistence.
	Save SaveFunc

	// Render is called when the render key is pressed. Nil disables rendering.
	Render RenderFunc
}

type renderedMsg struct {
	dest string
	err  error
}

// Model is the bubbletea model for the editor.
type Model struct {
	opts   Options
	keys   KeyMap
	cfg    config.Wallpaper
	models []device.Profile
	device int
	focus  field

	color textinput.Model
	label textinput.Model

	status    string
	err       error
	rendering bool
	width     int
}

// New creates an editor starting from opts.Config and opts.Device.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	m := Model{
		opts:   opts,
		keys:   DefaultKeyMap(),
		cfg:    opts.Config.Normalise(),
		models: device.Models(),
	}
	m.device = m.indexOf(opts.Device.Name)
	if m.device < 0 {
		m.device = max(0, m.indexOf(device.DefaultModel))
	}

	m.color = textinput.New()
	m.color.Prompt = ""
	m.color.CharLimit = 7
	m.color.Placeholder = theme.Resolve(m.cfg.Theme).Accent
	m.color.SetValue(m.cfg.CustomColor)

	m.label = textinput.New()
	m.label.Prompt = ""
	m.label.CharLimit = config.MaxLabelLength
	m.label.Placeholder = "header text"
	m.label.SetValue(m.cfg.Label)

	return m
}

func (m Model) indexOf(name string) int {
	return slices.IndexFunc(m.models, func(p device.Profile) bool { return p.Name == name })
}

// Config returns the settings being edited.
func (m Model) Config() config.Wallpaper {
	return m.cfg
}

// Device returns the selected device profile.
func (m Model) Device() device.Profile {
	return m.models[m.device]
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case renderedMsg:
		m.rendering = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "wrote " + msg.dest
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case key.Matches(msg, m.keys.Render):
			return m, m.render()
		case key.Matches(msg, m.keys.Reset):
			m.color.SetValue("")
			m.cfg.CustomColor = ""
			m.changed()
			return m, nil
		}

		if m.focus < fieldColor {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.cycle(-1)
			case key.Matches(msg, m.keys.Right):
				m.cycle(1)
			}
			return m, nil
		}
		return m.updateInput(msg)
	}

	return m, nil
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.color.Blur()
	m.label.Blur()
	switch f {
	case fieldColor:
		return m.color.Focus()
	case fieldLabel:
		return m.label.Focus()
	}
	return nil
}

// cycle steps the focused selector by delta, wrapping at either end.
func (m *Model) cycle(delta int) {
	switch m.focus {
	case fieldDevice:
		m.device = wrap(m.device+delta, len(m.models))
	case fieldTheme:
		names := theme.Names()
		i := slices.Index(names, m.cfg.Theme)
		m.cfg.Theme = names[wrap(i+delta, len(names))]
		m.color.Placeholder = theme.Resolve(m.cfg.Theme).Accent
	case fieldWidget:
		kinds := widget.Kinds()
		i := slices.Index(kinds, m.cfg.Widget)
		m.cfg.Widget = kinds[wrap(i+delta, len(kinds))]
	default:
		return
	}
	m.changed()
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldColor:
		m.color, cmd = m.color.Update(msg)
		// Partially typed colours keep the last good value.
		v := m.color.Value()
		if _, err := colour.ParseHex(v); v == "" || err == nil {
			if v != m.cfg.CustomColor {
				m.cfg.CustomColor = v
				m.changed()
			}
		}
	case fieldLabel:
		m.label, cmd = m.label.Update(msg)
		if v := m.label.Value(); v != m.cfg.Label {
			m.cfg.Label = v
			m.changed()
		}
	}
	return m, cmd
}

// changed persists the settings after an edit.
func (m *Model) changed() {
	m.status = ""
	m.err = nil
	if m.opts.Save == nil {
		return
	}
	if err := m.opts.Save(m.cfg, m.Device().Name); err != nil {
		m.err = err
	}
}

func (m *Model) render() tea.Cmd {
	if m.opts.Render == nil || m.rendering {
		return nil
	}
	m.rendering = true
	m.status = "rendering..."
	cfg, res, fn := m.cfg, m.Device().Resolution, m.opts.Render
	return func() tea.Msg {
		dest, err := fn(cfg, res)
		return renderedMsg{dest: dest, err: err}
	}
}
