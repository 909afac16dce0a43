package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DefaultBaseURL is where 'yearpaper serve' listens by default.
const DefaultBaseURL = "http://localhost:8080"

func newURLCmd(a *app) *cobra.Command {
	var (
		flags wallpaperFlags
		base  string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a shareable link that renders the wallpaper on demand",
		Long: `Print a link to the wallpaper endpoint encoding the selected settings as
query parameters. Opening the link always renders the current day.

Examples:
  yearpaper url --theme midnight --widget numeric
  yearpaper url --base https://wallpaper.example.com --device "iPhone 17"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := flags.resolve(cmd, a.logger)
			if err != nil {
				return err
			}
			link, err := sel.config.URL(base, sel.resolution)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return flags.save(sel, a.logger)
		},
	}

	cmd.Flags().AddFlagSet(flags.flagSet())
	cmd.Flags().StringVar(&base, "base", DefaultBaseURL, "base URL of a running yearpaper server")
	return cmd
}
