package cli

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/editor"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		opts renderOptions
		base string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit wallpaper settings interactively",
		Long: `Open a terminal editor for the wallpaper settings. Changes are remembered
as they are made, the shareable link updates live, and enter renders the
wallpaper to --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("edit needs an interactive terminal, use render or url instead")
			}
			if opts.output == "-" {
				return errors.New("edit cannot render to stdout, use --output with a file name")
			}

			// Log lines would tear the full-screen view.
			logger := hclog.NewNullLogger()

			opts.wallpaper.remember = true
			sel, err := opts.wallpaper.resolve(cmd, logger)
			if err != nil {
				return err
			}
			store, err := opts.wallpaper.store(logger)
			if err != nil {
				return err
			}
			profile, _ := device.ByName(sel.device)

			r, err := newRasterizer(cmd.Context(), opts.font, opts.fontBold, logger)
			if err != nil {
				return err
			}
			composer := compose.New(compose.WithLogger(logger))

			m := editor.New(editor.Options{
				Config:  sel.config,
				Device:  profile,
				BaseURL: base,
				Save:    store.Save,
				Render: func(cfg config.Wallpaper, res device.Resolution) (string, error) {
					if err := renderTo(nil, opts.output, composer, r, time.Now(), cfg, res); err != nil {
						return "", err
					}
					return opts.output, nil
				},
			})

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().AddFlagSet(opts.wallpaper.flagSet())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "wallpaper.png", "file written by the render key")
	cmd.Flags().StringVar(&opts.font, "font", "", "regular font file or URL (TrueType/OpenType)")
	cmd.Flags().StringVar(&opts.fontBold, "font-bold", "", "bold font file or URL (TrueType/OpenType)")
	cmd.Flags().StringVar(&base, "base", DefaultBaseURL, "base URL used for the shareable link")
	return cmd
}
