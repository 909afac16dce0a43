package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/raster"
	"github.com/jmylchreest/yearpaper/internal/util/fontcache"
)

// errTerminalOutput is returned when PNG bytes would be written to a terminal.
var errTerminalOutput = errors.New("refusing to write binary image data to a terminal, use --output")

type renderOptions struct {
	wallpaper wallpaperFlags
	output    string
	font      string
	fontBold  string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a wallpaper to a PNG file",
		Long: `Render a year-progress wallpaper as a PNG image.

The image size comes from the selected device profile unless --width and
--height are given. The timezone defaults to the host's zone.

Examples:
  # Default wallpaper for an iPhone 16 Pro Max
  yearpaper render -o wallpaper.png

  # Sunset theme with the dot grid and a label
  yearpaper render --theme sunset --widget dotgrid --label "Make it count"

  # Custom accent for an iPhone 13 mini, remembered for next time
  yearpaper render --device "iPhone 13 mini" --color "#ff00ff" --remember

  # Stream to another program
  yearpaper render -o - | wl-copy --type image/png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts, a.logger)
		},
	}

	cmd.Flags().AddFlagSet(opts.wallpaper.flagSet())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "wallpaper.png", "output file, or - for stdout")
	cmd.Flags().StringVar(&opts.font, "font", "", "regular font file or URL (TrueType/OpenType)")
	cmd.Flags().StringVar(&opts.fontBold, "font-bold", "", "bold font file or URL (TrueType/OpenType)")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, logger hclog.Logger) error {
	sel, err := opts.wallpaper.resolve(cmd, logger)
	if err != nil {
		return err
	}

	r, err := newRasterizer(cmd.Context(), opts.font, opts.fontBold, logger)
	if err != nil {
		return err
	}
	composer := compose.New(compose.WithLogger(logger))

	if err := renderTo(cmd.OutOrStdout(), opts.output, composer, r, sel.now, sel.config, sel.resolution); err != nil {
		return err
	}

	logger.Info("rendered wallpaper",
		"output", opts.output,
		"size", sel.resolution.String(),
		"theme", sel.config.Theme,
		"widget", sel.config.Widget,
		"timezone", sel.config.Timezone,
	)

	return opts.wallpaper.save(sel, logger)
}

func newRasterizer(ctx context.Context, font, fontBold string, logger hclog.Logger) (*raster.Rasterizer, error) {
	fonts, err := loadFonts(ctx, font, fontBold)
	if err != nil {
		return nil, err
	}
	r, err := raster.New(raster.WithFonts(fonts), raster.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialise rasterizer: %w", err)
	}
	return r, nil
}

// renderTo composes and rasterizes one wallpaper and writes it to path.
func renderTo(stdout io.Writer, path string, composer *compose.Composer, r *raster.Rasterizer,
	now time.Time, cfg config.Wallpaper, res device.Resolution,
) error {
	frame, err := composer.ComposeAt(now, cfg, res)
	if err != nil {
		return fmt.Errorf("failed to compose wallpaper: %w", err)
	}
	img, err := r.Render(frame)
	if err != nil {
		return fmt.Errorf("failed to render wallpaper: %w", err)
	}
	return writeImage(stdout, path, func(w io.Writer) error {
		return raster.EncodePNG(w, img)
	})
}

func loadFonts(ctx context.Context, regular, bold string) (raster.Fonts, error) {
	var fonts raster.Fonts
	var err error
	if regular != "" {
		if fonts.Regular, err = raster.LoadFont(ctx, regular, fontcache.Options{}); err != nil {
			return raster.Fonts{}, err
		}
	}
	if bold != "" {
		if fonts.Bold, err = raster.LoadFont(ctx, bold, fontcache.Options{}); err != nil {
			return raster.Fonts{}, err
		}
	}
	return fonts, nil
}

// writeImage sends encoded output to path, or to stdout when path is "-".
func writeImage(stdout io.Writer, path string, encode func(io.Writer) error) error {
	if path == "-" {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errTerminalOutput
		}
		bw := bufio.NewWriter(stdout)
		if err := encode(bw); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
		return bw.Flush()
	}

	f, err := os.Create(path) // #nosec G304 - User-specified output path, intended to be written
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
