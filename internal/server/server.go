// Package server exposes wallpaper rendering over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/raster"
	"github.com/jmylchreest/yearpaper/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Server renders wallpapers on request. Every request is independent.
type Server struct {
	cfg      Config
	composer *compose.Composer
	raster   *raster.Rasterizer
	logger   hclog.Logger
	mux      *http.ServeMux
}

// New creates a Server. A nil logger discards output.
func New(cfg Config, composer *compose.Composer, rasterizer *raster.Rasterizer, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &Server{
		cfg:      cfg,
		composer: composer,
		raster:   rasterizer,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/og", s.handleWallpaper)
	s.mux.HandleFunc("GET /wallpaper", s.handleWallpaper)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleWallpaper(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	cfg, res := config.FromQuery(r.URL.Query())
	cfg.Timezone = s.resolveTimezone(cfg.Timezone, r.Header.Get(s.cfg.TimezoneHeader))
	res = s.clamp(res)

	frame, err := s.composer.Compose(cfg, res)
	if err != nil {
		s.logger.Error("failed to compose wallpaper", "error", err)
		http.Error(w, "failed to compose wallpaper", http.StatusInternalServerError)
		return
	}

	img, err := s.raster.Render(frame)
	if err != nil {
		s.logger.Error("failed to rasterize wallpaper", "error", err)
		http.Error(w, "failed to render wallpaper", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		s.logger.Error("failed to encode wallpaper", "error", err)
		http.Error(w, "failed to encode wallpaper", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("client went away", "error", err)
		return
	}

	s.logger.Debug("rendered wallpaper",
		"theme", cfg.Theme,
		"widget", cfg.Widget,
		"timezone", cfg.Timezone,
		"size", res.String(),
		"bytes", buf.Len(),
		"duration", time.Since(start),
	)
}

// resolveTimezone walks the fallback chain: explicit parameter, then the
// client timezone header, then UTC.
func (s *Server) resolveTimezone(param, header string) string {
	tz, rejected := config.ResolveTimezone(param, header)
	for _, r := range rejected {
		s.logger.Warn("ignoring unrecognised timezone", "timezone", r)
	}
	return tz
}

// clamp keeps the requested size within what the server is willing to allocate.
func (s *Server) clamp(res device.Resolution) device.Resolution {
	if res.Width <= 0 || res.Height <= 0 {
		s.logger.Debug("non-positive size requested, using default", "size", res.String())
		return config.DefaultResolution
	}
	res.Width = min(res.Width, s.cfg.MaxDimension)
	res.Height = min(res.Height, s.cfg.MaxDimension)
	return res
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(version.GetInfo()); err != nil {
		s.logger.Debug("failed to write version", "error", err)
	}
}
