// Package config holds the settings shared by the page and the dev server.
//
// Settings come from a lookup function so the same keys can be read from
// environment variables (dev server) or URL query parameters (the page).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Limits for canvas dimensions.
const (
	MinCanvasSize = 16
	MaxCanvasSize = 2048
)

// Config is the digit pad configuration.
type Config struct {
	// Endpoint is the classifier URL the page posts to.
	Endpoint string

	// CanvasID is the id of the drawing canvas element.
	CanvasID string

	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// ImageType is the MIME type the canvas is exported as.
	ImageType string

	// Timeout bounds a single prediction request. Zero means no timeout.
	Timeout time.Duration

	// Debug enables verbose logging.
	Debug bool

	// Addr is the dev server listen address.
	Addr string

	// StaticDir is the directory the dev server serves the page from.
	StaticDir string

	// BackendURL is the classifier the dev server proxies Endpoint to.
	// Empty disables the proxy.
	BackendURL string
}

// Default returns the settings of the original demo page.
func Default() Config {
	return Config{
		Endpoint:  "/hook2",
		CanvasID:  "the_stage",
		Width:     200,
		Height:    200,
		ImageType: "image/png",
		Timeout:   30 * time.Second,
		Addr:      ":8080",
		StaticDir: "web",
	}
}

// Lookup returns the raw value for a key and whether it was set.
type Lookup func(key string) (string, bool)

// Keys maps each setting to the name it is looked up under.
type Keys struct {
	Endpoint   string
	CanvasID   string
	Width      string
	Height     string
	ImageType  string
	Timeout    string
	Debug      string
	Addr       string
	StaticDir  string
	BackendURL string
}

// EnvKeys are the environment variable names used by the dev server. PORT
// is honored for platforms that assign one.
var EnvKeys = Keys{
	Endpoint:   "DIGITPAD_ENDPOINT",
	CanvasID:   "DIGITPAD_CANVAS_ID",
	Width:      "DIGITPAD_WIDTH",
	Height:     "DIGITPAD_HEIGHT",
	ImageType:  "DIGITPAD_IMAGE_TYPE",
	Timeout:    "DIGITPAD_TIMEOUT",
	Debug:      "DIGITPAD_LOG_LEVEL",
	Addr:       "PORT",
	StaticDir:  "DIGITPAD_STATIC_DIR",
	BackendURL: "DIGITPAD_BACKEND_URL",
}

// QueryKeys are the URL query parameter names read by the page.
var QueryKeys = Keys{
	Endpoint:  "endpoint",
	CanvasID:  "canvas",
	Width:     "w",
	Height:    "h",
	ImageType: "type",
	Timeout:   "timeout",
	Debug:     "debug",
}

// FromEnv loads the configuration from environment variables.
func FromEnv() (Config, error) {
	return Load(os.LookupEnv, EnvKeys)
}

// FromQuery loads the configuration from a URL query string such as
// window.location.search.
func FromQuery(rawQuery string) (Config, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Default(), fmt.Errorf("invalid query string: %w", err)
	}
	lookup := func(key string) (string, bool) {
		if !values.Has(key) {
			return "", false
		}
		return values.Get(key), true
	}
	return Load(lookup, QueryKeys)
}

// Load applies every key found by lookup on top of Default. Keys with an
// empty name are skipped. On error the returned Config holds the defaults
// for the offending setting and the values parsed so far.
func Load(lookup Lookup, keys Keys) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		if key == "" {
			return "", false
		}
		v, ok := lookup(key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get(keys.Endpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := get(keys.CanvasID); ok {
		cfg.CanvasID = v
	}
	if v, ok := get(keys.ImageType); ok {
		cfg.ImageType = v
	}
	if v, ok := get(keys.StaticDir); ok {
		cfg.StaticDir = v
	}
	if v, ok := get(keys.BackendURL); ok {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, fmt.Errorf("%s: invalid backend URL %q", keys.BackendURL, v)
		}
		cfg.BackendURL = v
	}
	if v, ok := get(keys.Addr); ok {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.Addr = v
	}
	if v, ok := get(keys.Debug); ok {
		cfg.Debug = parseDebug(v)
	}

	if v, ok := get(keys.Width); ok {
		n, err := parseSize(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", keys.Width, err)
		}
		cfg.Width = n
	}
	if v, ok := get(keys.Height); ok {
		n, err := parseSize(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", keys.Height, err)
		}
		cfg.Height = n
	}
	if v, ok := get(keys.Timeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", keys.Timeout, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// parseDebug accepts "debug" (the log level form) and boolean spellings.
func parseDebug(v string) bool {
	if strings.EqualFold(v, "debug") {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func parseSize(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", v)
	}
	if n < MinCanvasSize || n > MaxCanvasSize {
		return 0, fmt.Errorf("size %d outside %d-%d", n, MinCanvasSize, MaxCanvasSize)
	}
	return n, nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative timeout %q", v)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return d, nil
}
