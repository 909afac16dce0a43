package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/logging"
	"github.com/jmylchreest/yearpaper/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr     string
		envFiles []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wallpapers over HTTP",
		Long: `Start an HTTP server that renders wallpapers on request.

Endpoints:
  GET /api/og     render a wallpaper from query parameters
  GET /wallpaper  alias of /api/og
  GET /healthz    liveness probe
  GET /version    build information as JSON

Settings are read from YEARPAPER_* environment variables, after loading any
of the --env-file files that exist:
  YEARPAPER_ADDR             listen address (default :8080)
  YEARPAPER_TIMEZONE_HEADER  header carrying the client's timezone
  YEARPAPER_MAX_DIMENSION    largest width or height served (default 4096)
  YEARPAPER_READ_TIMEOUT     request read timeout (default 10s)
  YEARPAPER_WRITE_TIMEOUT    response write timeout (default 30s)
  YEARPAPER_LOG_LEVEL        trace, debug, info, warn or error
  YEARPAPER_LOG_JSON         write log lines as JSON
  YEARPAPER_FONT_REGULAR     regular font file or URL
  YEARPAPER_FONT_BOLD        bold font file or URL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := server.LoadEnvFiles(envFiles...); err != nil {
				return err
			}
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			logOpts := a.loggerOptions(cmd)
			logOpts.Level = cfg.LogLevel
			logOpts.JSON = logOpts.JSON || cfg.LogJSON
			logger := logging.New(logOpts)

			r, err := newRasterizer(cmd.Context(), cfg.FontRegular, cfg.FontBold, logger.Named("raster"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, compose.New(compose.WithLogger(logger.Named("compose"))), r, logger.Named("http"))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides YEARPAPER_ADDR)")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "environment files to load if present")
	return cmd
}
