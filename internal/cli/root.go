// Package cli provides the command-line interface for Yearpaper.
package cli

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/yearpaper/internal/logging"
	"github.com/jmylchreest/yearpaper/internal/version"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	verbose bool
	quiet   bool
	logJSON bool

	logger hclog.Logger
}

func (a *app) loggerOptions(cmd *cobra.Command) logging.Options {
	return logging.Options{
		Verbose: a.verbose,
		Quiet:   a.quiet,
		JSON:    a.logJSON,
		Output:  cmd.ErrOrStderr(),
	}
}

// NewRootCmd builds the yearpaper command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "yearpaper",
		Short: "A year-progress wallpaper generator",
		Long: `Yearpaper renders phone wallpapers that show how much of the current
calendar year has passed, measured in your own timezone.

Pick a theme, a progress widget and an optional label, then render a PNG
sized for your device or print a link to the HTTP endpoint that renders the
same wallpaper on demand.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = logging.New(a.loggerOptions(cmd))
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write log lines as JSON")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newRenderCmd(a),
		newURLCmd(a),
		newEditCmd(a),
		newProgressCmd(a),
		newServeCmd(a),
		newDevicesCmd(),
		newThemesCmd(),
		newVersionCmd(),
	)
	return root
}
