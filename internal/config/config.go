// Package config defines the user-facing wallpaper configuration and its
// query-string encoding used by shareable links and the HTTP endpoint.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmylchreest/yearpaper/internal/device"
	"github.com/jmylchreest/yearpaper/internal/progress"
	"github.com/jmylchreest/yearpaper/internal/theme"
	"github.com/jmylchreest/yearpaper/internal/widget"
)

// Query parameter names.
const (
	ParamTheme    = "theme"
	ParamWidget   = "widget"
	ParamName     = "name"
	ParamTimezone = "tz"
	ParamColor    = "color"
	ParamWidth    = "width"
	ParamHeight   = "height"
)

// DefaultTimezone is the last link of every timezone fallback chain.
const DefaultTimezone = "UTC"

// MaxLabelLength is the label limit enforced by interactive editors.
const MaxLabelLength = 50

// DefaultResolution is used when a request does not name a size.
var DefaultResolution = device.Resolution{Width: 1080, Height: 1920}

// Wallpaper is everything a user chooses about their wallpaper.
// CustomColor is optional: the empty string means "use the theme accent".
type Wallpaper struct {
	Theme       theme.Name  `json:"theme"`
	Widget      widget.Kind `json:"widget"`
	Label       string      `json:"name"`
	Timezone    string      `json:"timezone"`
	CustomColor string      `json:"customColor,omitempty"`
}

// Default returns the configuration used when nothing is specified.
func Default() Wallpaper {
	return Wallpaper{
		Theme:    theme.Default,
		Widget:   widget.Default,
		Timezone: DefaultTimezone,
	}
}

// Normalise maps theme and widget to canonical values, substituting the
// defaults for anything unrecognised. It never fails.
func (w Wallpaper) Normalise() Wallpaper {
	w.Theme, _ = theme.Parse(string(w.Theme))
	w.Widget, _ = widget.ParseKind(string(w.Widget))
	w.CustomColor = strings.TrimSpace(w.CustomColor)
	return w
}

// Validate reports problems an interactive editor should reject.
// The renderer itself tolerates all of them.
func (w Wallpaper) Validate() error {
	if n := len([]rune(w.Label)); n > MaxLabelLength {
		return fmt.Errorf("label is %d characters, maximum is %d", n, MaxLabelLength)
	}
	if _, ok := theme.Parse(string(w.Theme)); !ok {
		return fmt.Errorf("unknown theme %q", w.Theme)
	}
	if _, ok := widget.ParseKind(string(w.Widget)); !ok {
		return fmt.Errorf("unknown widget %q", w.Widget)
	}
	return nil
}

// Query encodes the configuration and target size as query parameters.
// The colour parameter is omitted when no override is set.
func (w Wallpaper) Query(res device.Resolution) url.Values {
	v := url.Values{}
	v.Set(ParamTheme, string(w.Theme))
	v.Set(ParamWidget, string(w.Widget))
	v.Set(ParamName, w.Label)
	v.Set(ParamTimezone, w.Timezone)
	if w.CustomColor != "" {
		v.Set(ParamColor, w.CustomColor)
	}
	v.Set(ParamWidth, strconv.Itoa(res.Width))
	v.Set(ParamHeight, strconv.Itoa(res.Height))
	return v
}

// URL builds a shareable link to the image endpoint at base.
func (w Wallpaper) URL(base string, res device.Resolution) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: scheme and host are required", base)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api/og"
	}
	u.RawQuery = w.Query(res).Encode()
	return u.String(), nil
}

// FromQuery decodes query parameters. Missing or malformed values take their
// defaults. The timezone is left empty when absent so the caller can apply its
// own fallback chain.
func FromQuery(v url.Values) (Wallpaper, device.Resolution) {
	w := Wallpaper{
		Theme:       theme.Name(v.Get(ParamTheme)),
		Widget:      widget.Kind(v.Get(ParamWidget)),
		Label:       v.Get(ParamName),
		Timezone:    strings.TrimSpace(v.Get(ParamTimezone)),
		CustomColor: v.Get(ParamColor),
	}

	res := DefaultResolution
	if n, err := strconv.Atoi(v.Get(ParamWidth)); err == nil {
		res.Width = n
	}
	if n, err := strconv.Atoi(v.Get(ParamHeight)); err == nil {
		res.Height = n
	}

	return w.Normalise(), res
}

// ResolveTimezone returns the first candidate that names a valid IANA zone,
// skipping empty ones. Non-empty candidates that failed to load are returned
// in rejected so the caller can report them. DefaultTimezone ends the chain.
func ResolveTimezone(candidates ...string) (tz string, rejected []string) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := progress.LoadLocation(c); err != nil {
			rejected = append(rejected, c)
			continue
		}
		return c, rejected
	}
	return DefaultTimezone, rejected
}
