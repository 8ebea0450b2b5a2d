package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Supported terminal backends.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// LogFileNone disables logging when used as log.file.
const LogFileNone = "none"

// Bounds for editor.render_delay.
const (
	MinRenderDelay = time.Millisecond
	MaxRenderDelay = 10 * time.Second
)

// Config is the complete editor configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Terminal TerminalConfig `toml:"terminal"`
	Log      LogConfig      `toml:"log"`
}

// EditorConfig holds editing behavior settings.
type EditorConfig struct {
	// RenderDelay is the length of one input batching window.
	RenderDelay Duration `toml:"render_delay"`

	// UnknownKeysDirty makes keys without a binding trigger a repaint.
	UnknownKeysDirty bool `toml:"unknown_keys_dirty"`
}

// TerminalConfig selects the terminal backend.
type TerminalConfig struct {
	// Backend is "tcell" or "ansi".
	Backend string `toml:"backend"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`

	// File is the log file path. Empty means modal.log in the temp
	// directory; "none" disables logging.
	File string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "50ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			RenderDelay:      Duration(50 * time.Millisecond),
			UnknownKeysDirty: true,
		},
		Terminal: TerminalConfig{
			Backend: BackendTcell,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from defaults, the file at path and the
// environment, then validates it. An empty path or a missing file leaves
// the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.parse(path, data); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// Defaults apply.
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Environment variables are not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.parse("<data>", data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes data into c. Keys absent from data keep their values.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = strings.TrimSpace(serr.String())
		}
		return perr
	}
	return nil
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Set assigns a setting from its string form. path is the dotted TOML
// key, such as "log.level".
func (c *Config) Set(path, value string) error {
	switch path {
	case "editor.render_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return &ValidationError{Path: path, Message: "not a duration", Value: value}
		}
		c.Editor.RenderDelay = Duration(d)
	case "editor.unknown_keys_dirty":
		b, ok := parseBool(value)
		if !ok {
			return &ValidationError{Path: path, Message: "not a boolean", Value: value}
		}
		c.Editor.UnknownKeysDirty = b
	case "terminal.backend":
		c.Terminal.Backend = strings.ToLower(value)
	case "log.level":
		c.Log.Level = strings.ToLower(value)
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	return nil
}

// ApplyOverrides calls Set for each path in overrides, in sorted path
// order, and stops at the first error. Overrides are the command-line
// layer; they must be applied again whenever the file is reloaded.
func (c *Config) ApplyOverrides(overrides map[string]string) error {
	paths := make([]string, 0, len(overrides))
	for path := range overrides {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	for _, path := range paths {
		if err := c.Set(path, overrides[path]); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if d := c.Editor.RenderDelay.Std(); d < MinRenderDelay || d > MaxRenderDelay {
		return &ValidationError{
			Path:    "editor.render_delay",
			Message: fmt.Sprintf("must be between %v and %v", MinRenderDelay, MaxRenderDelay),
			Value:   d,
		}
	}
	switch c.Terminal.Backend {
	case BackendTcell, BackendANSI:
	default:
		return &ValidationError{
			Path:    "terminal.backend",
			Message: fmt.Sprintf("must be %q or %q", BackendTcell, BackendANSI),
			Value:   c.Terminal.Backend,
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
		}
	}
	return nil
}

// LogPath returns the log file path, or "" when logging is disabled.
func (c *Config) LogPath() string {
	switch c.Log.File {
	case "":
		return filepath.Join(os.TempDir(), "modal.log")
	case LogFileNone:
		return ""
	default:
		return c.Log.File
	}
}

// parseBool accepts the usual spellings found in environment variables.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}
