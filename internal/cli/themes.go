package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/yearpaper/internal/colour"
	"github.com/jmylchreest/yearpaper/internal/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the colour themes",
		Long: `List the colour themes with a preview swatch and the contrast ratio of
their text against the background.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer := lipgloss.NewRenderer(cmd.OutOrStdout())

			table := NewTable("THEME", "PREVIEW", "BACKGROUND", "FOREGROUND", "ACCENT", "CONTRAST")
			for _, name := range theme.Names() {
				p := theme.Resolve(name)
				rgb, err := p.Parsed()
				if err != nil {
					return fmt.Errorf("theme %s: %w", name, err)
				}
				table.AddRow(
					string(name),
					swatch(renderer, p),
					p.Background,
					p.Foreground,
					p.Accent,
					fmt.Sprintf("%.1f:1", colour.ContrastRatio(rgb.Foreground, rgb.Background)),
				)
			}
			_, err := table.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

// swatch draws the palette as foreground and accent text on the background.
func swatch(r *lipgloss.Renderer, p theme.Palette) string {
	bg := lipgloss.Color(p.Background)
	fg := r.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Foreground)).Render(" Aa ")
	accent := r.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)).Render("●●● ")
	return fg + accent
}
