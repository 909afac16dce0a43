package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/state"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

// wallpaperFlags are the editor controls shared by render and url.
type wallpaperFlags struct {
	theme    string
	widget   string
	label    string
	timezone string
	color    string
	device   string
	width    int
	height   int
	now      string
	preset   string
	remember bool
	stateDir string
}

func (f *wallpaperFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("wallpaper", pflag.ContinueOnError)
	fs.StringVarP(&f.theme, "theme", "t", string(theme.Default), "colour theme ("+joinNames(theme.Names())+")")
	fs.StringVarP(&f.widget, "widget", "w", string(widget.Default), "progress widget ("+joinNames(widget.Kinds())+")")
	fs.StringVarP(&f.label, "label", "l", "", fmt.Sprintf("header text, up to %d characters", config.MaxLabelLength))
	fs.StringVar(&f.timezone, "tz", "", "IANA timezone (default: host timezone, then UTC)")
	fs.StringVarP(&f.color, "color", "c", "", "accent colour override as hex (e.g. #ff00ff)")
	fs.StringVarP(&f.device, "device", "d", device.DefaultModel, "named device profile (see 'yearpaper devices')")
	fs.IntVar(&f.width, "width", 0, "image width in pixels (overrides --device)")
	fs.IntVar(&f.height, "height", 0, "image height in pixels (overrides --device)")
	fs.StringVar(&f.now, "now", "", "render as of this RFC3339 instant instead of the current time")
	fs.StringVarP(&f.preset, "preset", "p", "", "YAML file of wallpaper settings applied before other flags")
	fs.BoolVar(&f.remember, "remember", false, "load and save the last-used settings")
	fs.StringVar(&f.stateDir, "state-dir", "", "directory for remembered settings (default: user config dir)")
	return fs
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// selection is a resolved set of editor choices.
type selection struct {
	config     config.Wallpaper
	resolution device.Resolution
	device     string
	now        time.Time
}

// resolve merges remembered state, a preset file, explicit flags and the host
// environment into a selection, later sources winning. Only flags the user set
// override earlier values.
func (f *wallpaperFlags) resolve(cmd *cobra.Command, logger hclog.Logger) (selection, error) {
	changed := cmd.Flags().Changed

	cfg := config.Default()
	profile, _ := device.ByName(device.DefaultModel)

	store, err := f.store(logger)
	if err != nil {
		return selection{}, err
	}
	if store != nil {
		st := store.Load()
		cfg, profile = st.Config, st.Device
		logger.Debug("loaded remembered settings", "dir", store.Dir(), "device", profile.Name)
	}

	if f.preset != "" {
		p, err := config.ReadPreset(f.preset)
		if err != nil {
			return selection{}, err
		}
		cfg = p.Apply(cfg)
		if p.Device != "" {
			dp, ok := device.ByName(p.Device)
			if !ok {
				return selection{}, fmt.Errorf("preset names unknown device %q", p.Device)
			}
			profile = dp
		}
		if p.Width > 0 {
			profile.Width = p.Width
		}
		if p.Height > 0 {
			profile.Height = p.Height
		}
	}

	if changed("theme") {
		cfg.Theme = theme.Name(f.theme)
	}
	if changed("widget") {
		cfg.Widget = widget.Kind(f.widget)
	}
	if changed("label") {
		cfg.Label = f.label
	}
	if changed("color") {
		cfg.CustomColor = f.color
	}
	if err := cfg.Validate(); err != nil {
		return selection{}, err
	}
	cfg = cfg.Normalise()

	if changed("device") {
		p, ok := device.ByName(f.device)
		if !ok {
			return selection{}, fmt.Errorf("unknown device %q, run 'yearpaper devices' to list them", f.device)
		}
		profile = p
	}

	res := profile.Resolution
	if changed("width") {
		res.Width = f.width
	}
	if changed("height") {
		res.Height = f.height
	}
	if res.Width <= 0 || res.Height <= 0 {
		return selection{}, fmt.Errorf("invalid size %s", res)
	}

	// A remembered timezone is never reused; the host decides.
	tz, rejected := config.ResolveTimezone(f.timezone, hostTimezone())
	for _, r := range rejected {
		logger.Warn("ignoring unrecognised timezone", "timezone", r)
	}
	cfg.Timezone = tz

	now := time.Now()
	if f.now != "" {
		now, err = time.Parse(time.RFC3339, f.now)
		if err != nil {
			return selection{}, fmt.Errorf("invalid --now value: %w", err)
		}
	}

	return selection{config: cfg, resolution: res, device: profile.Name, now: now}, nil
}

// store returns the state store when --remember is set, otherwise nil.
func (f *wallpaperFlags) store(logger hclog.Logger) (*state.Store, error) {
	if !f.remember {
		return nil, nil
	}
	dir := f.stateDir
	if dir == "" {
		var err error
		dir, err = state.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return state.NewStore(dir, logger), nil
}

// save persists sel when --remember is set.
func (f *wallpaperFlags) save(sel selection, logger hclog.Logger) error {
	store, err := f.store(logger)
	if err != nil || store == nil {
		return err
	}
	if err := store.Save(sel.config, sel.device); err != nil {
		return fmt.Errorf("failed to remember settings: %w", err)
	}
	logger.Debug("saved settings", "dir", store.Dir())
	return nil
}

// hostTimezone returns the IANA name of the host zone, or "" when it cannot
// be determined.
func hostTimezone() string {
	if tz, ok := os.LookupEnv("TZ"); ok {
		return strings.TrimPrefix(tz, ":")
	}
	if name := time.Local.String(); name != "Local" {
		return name
	}
	target, err := os.Readlink("/etc/localtime")
	if err != nil {
		return ""
	}
	if _, zone, ok := strings.Cut(target, "zoneinfo/"); ok {
		return zone
	}
	return ""
}
