package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

const previewWidth = 34

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#a3a3a3", Dark: "#737373"}
	highlight = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}

	titleStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(1, 2)

	captionStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Width(9)

	focusCaptionStyle = captionStyle.
				Foreground(highlight).
				Bold(true)

	helpStyle  = lipgloss.NewStyle().Foreground(subtle)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

// View implements tea.Model.
func (m Model) View() string {
	p := m.Device()
	palette := theme.Resolve(m.cfg.Theme)

	controls := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Wallpaper Generator"),
		m.row(fieldDevice, "Device", selector(fmt.Sprintf("%s (%s)", p.Name, p.Resolution))),
		m.row(fieldTheme, "Theme", selector(string(m.cfg.Theme))+" "+
			lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Background)).Render("●")),
		m.row(fieldWidget, "Widget", selector(string(m.cfg.Widget))),
		m.row(fieldColor, "Accent", m.color.View()),
		m.row(fieldLabel, "Label", m.label.View()),
	)

	ui := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(controls),
		panelStyle.Render(m.preview()),
	)

	lines := []string{ui}
	if link, err := m.cfg.URL(m.opts.BaseURL, p.Resolution); err == nil {
		lines = append(lines, link)
	}
	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render("error: "+m.err.Error()))
	case m.status != "":
		lines = append(lines, m.status)
	}
	lines = append(lines, m.help())
	return strings.Join(lines, "\n")
}

func (m Model) row(f field, caption, value string) string {
	style, marker := captionStyle, "  "
	if m.focus == f {
		style, marker = focusCaptionStyle, "> "
	}
	return marker + style.Render(caption) + value
}

func selector(s string) string {
	return "‹ " + s + " ›"
}

// preview summarises the wallpaper in its own colours.
func (m Model) preview() string {
	facts, err := progress.Compute(m.opts.Clock(), m.cfg.Timezone)
	if err != nil {
		return errorStyle.Render(err.Error())
	}

	palette := theme.Resolve(m.cfg.Theme)
	bg := lipgloss.Color(palette.Background)
	base := lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color(palette.Foreground)).
		Width(previewWidth).
		Align(lipgloss.Center)
	accent := base.Foreground(lipgloss.Color(theme.EffectiveAccent(palette, m.cfg.CustomColor))).Bold(true)
	muted := base.Faint(true)

	label := m.cfg.Label
	if label == "" {
		label = " "
	}

	lines := []string{
		base.Render(" "),
		base.Bold(true).Render(label),
		base.Render(" "),
	}
	lines = append(lines, widgetPreview(m.cfg.Widget, facts, accent, muted)...)
	lines = append(lines,
		base.Render(" "),
		muted.Render(compose.CaptionPassed+"   "+compose.CaptionRemaining),
		accent.Render(facts.Percentage+"%   "+strconv.Itoa(facts.DaysRemaining)),
		base.Render(" "),
		muted.Render(fmt.Sprintf(compose.GeneratedAtFormat, facts.GeneratedAt)),
		base.Render(" "),
	)
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// widgetPreview approximates each widget with text.
func widgetPreview(kind widget.Kind, f progress.Facts, accent, muted lipgloss.Style) []string {
	switch kind {
	case widget.DotGrid:
		// One cell per week keeps the grid small enough for a terminal.
		const cols = 13
		weeks := int(math.Ceil(float64(f.TotalDays) / 7))
		passed := f.DayOfYear / 7
		var rows []string
		for start := 0; start < weeks; start += cols {
			var b strings.Builder
			for i := start; i < min(start+cols, weeks); i++ {
				if i < passed {
					b.WriteString("● ")
				} else {
					b.WriteString("· ")
				}
			}
			rows = append(rows, accent.Render(strings.TrimSpace(b.String())))
		}
		return rows
	case widget.Numeric:
		return []string{
			accent.Render(strconv.Itoa(f.DaysRemaining)),
			muted.Render(widget.Caption),
		}
	default:
		const width = 24
		filled := int(math.Round(f.Fraction() * width))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		return []string{
			accent.Render(bar),
			muted.Render(strconv.Itoa(f.Year)),
		}
	}
}

func (m Model) help() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
