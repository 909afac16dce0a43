package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/yearpaper/internal/compose"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/raster"
	"github.com/jmylchreest/yearpaper/internal/version"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	r, err := raster.New()
	if err != nil {
		t.Fatalf("raster.New() unexpected error: %v", err)
	}
	clock := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return New(cfg, compose.New(compose.WithClock(clock)), r, hclog.NewNullLogger())
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := ParseConfig(map[string]string{})
	if err != nil {
		t.Fatalf("ParseConfig() unexpected error: %v", err)
	}
	return cfg
}

func TestWallpaperEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	for _, path := range []string{"/api/og", "/wallpaper"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path+"?theme=light&widget=dots&width=120&height=240", nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := rec.Header().Get("Content-Type"); got != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", got)
			}

			img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
			if err != nil {
				t.Fatalf("png.Decode() unexpected error: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 240 {
				t.Errorf("image size = %dx%d, want 120x240", b.Dx(), b.Dy())
			}
			r, g, b, _ := img.At(0, 0).RGBA()
			if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
				t.Errorf("corner pixel = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestWallpaperEndpointClampsSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxDimension = 64
	srv := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/og?width=5000&height=9000", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode() unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("image size = %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}

func TestWallpaperEndpointRejectsOtherMethods(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/og", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestResolveTimezone(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	tests := []struct {
		name   string
		param  string
		header string
		want   string
	}{
		{"parameter wins", "Asia/Kolkata", "Europe/London", "Asia/Kolkata"},
		{"header when no parameter", "", "Europe/London", "Europe/London"},
		{"utc when neither", "", "", "UTC"},
		{"invalid parameter falls through", "Not/AZone", "Europe/London", "Europe/London"},
		{"both invalid", "Not/AZone", "Mars/Olympus", "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := srv.resolveTimezone(tt.param, tt.header); got != tt.want {
				t.Errorf("resolveTimezone(%q, %q) = %q, want %q", tt.param, tt.header, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxDimension = 2000
	srv := newTestServer(t, cfg)

	tests := []struct {
		in   device.Resolution
		want device.Resolution
	}{
		{device.Resolution{Width: 1170, Height: 2532}, device.Resolution{Width: 1170, Height: 2000}},
		{device.Resolution{Width: 0, Height: 100}, device.Resolution{Width: 1080, Height: 1920}},
		{device.Resolution{Width: -5, Height: -5}, device.Resolution{Width: 1080, Height: 1920}},
		{device.Resolution{Width: 300, Height: 400}, device.Resolution{Width: 300, Height: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := srv.clamp(tt.in); got != tt.want {
				t.Errorf("clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info version.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode /version: %v", err)
	}
	if info.Version != version.Version {
		t.Errorf("version = %q, want %q", info.Version, version.Version)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			environ: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				if cfg.Addr != ":8080" {
					t.Errorf("Addr = %q, want :8080", cfg.Addr)
				}
				if cfg.TimezoneHeader != "X-Vercel-IP-Timezone" {
					t.Errorf("TimezoneHeader = %q", cfg.TimezoneHeader)
				}
				if cfg.MaxDimension != 4096 {
					t.Errorf("MaxDimension = %d, want 4096", cfg.MaxDimension)
				}
				if cfg.ReadTimeout != 10*time.Second {
					t.Errorf("ReadTimeout = %v, want 10s", cfg.ReadTimeout)
				}
			},
		},
		{
			name: "overrides",
			environ: map[string]string{
				"YEARPAPER_ADDR":            "127.0.0.1:9000",
				"YEARPAPER_TIMEZONE_HEADER": "X-Client-Timezone",
				"YEARPAPER_MAX_DIMENSION":   "2048",
				"YEARPAPER_WRITE_TIMEOUT":   "1m",
				"YEARPAPER_LOG_JSON":        "true",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Addr != "127.0.0.1:9000" {
					t.Errorf("Addr = %q", cfg.Addr)
				}
				if cfg.TimezoneHeader != "X-Client-Timezone" {
					t.Errorf("TimezoneHeader = %q", cfg.TimezoneHeader)
				}
				if cfg.MaxDimension != 2048 {
					t.Errorf("MaxDimension = %d, want 2048", cfg.MaxDimension)
				}
				if cfg.WriteTimeout != time.Minute {
					t.Errorf("WriteTimeout = %v, want 1m", cfg.WriteTimeout)
				}
				if !cfg.LogJSON {
					t.Error("LogJSON = false, want true")
				}
			},
		},
		{
			name:    "non-positive max dimension",
			environ: map[string]string{"YEARPAPER_MAX_DIMENSION": "0"},
			wantErr: true,
		},
		{
			name:    "unparseable duration",
			environ: map[string]string{"YEARPAPER_READ_TIMEOUT": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig(tt.environ)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("YEARPAPER_TEST_ENV_FILE=loaded\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("YEARPAPER_TEST_ENV_FILE") })

	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnvFiles() unexpected error: %v", err)
	}
	if got := os.Getenv("YEARPAPER_TEST_ENV_FILE"); got != "loaded" {
		t.Errorf("YEARPAPER_TEST_ENV_FILE = %q, want loaded", got)
	}
}
