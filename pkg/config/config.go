// Package config loads artkit's user configuration from a TOML file.
//
//	units = "mm"
//	precision = 3
//	bounds = "visible"
//	seed = 7
//	cache = true
//
//	[render]
//	width = 800
//	height = 600
//	scale = 2.0
//
// A missing file yields [Default]. Command-line flags override every value.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/artkit/pkg/errors"
	"github.com/matzehuels/artkit/pkg/shape"
	"github.com/matzehuels/artkit/pkg/units"
)

// Render holds preview rendering defaults.
type Render struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
}

// Config is the user configuration.
type Config struct {
	Units     string `toml:"units"`
	Precision int    `toml:"precision"`
	Bounds    string `toml:"bounds"`
	Seed      uint64 `toml:"seed"`
	Cache     bool   `toml:"cache"`
	Render    Render `toml:"render"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Units:     "pt",
		Precision: 2,
		Bounds:    "visible",
		Seed:      42,
		Cache:     true,
		Render:    Render{Width: 800, Height: 600, Scale: 1},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/artkit/config.toml, falling back to
// ~/.config/artkit/config.toml.
func DefaultPath() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "artkit", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".config", "artkit", "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path selects
// DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks every value.
func (c Config) Validate() error {
	if _, err := units.ParseUnit(c.Units); err != nil {
		return err
	}
	if c.Precision < 0 || c.Precision > 12 {
		return errors.New(errors.ErrCodeInvalidInput, "precision must be between 0 and 12, got %d", c.Precision)
	}
	if _, err := shape.ParseBoundsKind(c.Bounds); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return errors.ValidatePositive("render scale", c.Render.Scale)
}

// Unit returns the parsed display unit.
func (c Config) Unit() units.Unit {
	u, err := units.ParseUnit(c.Units)
	if err != nil {
		return units.Pt
	}
	return u
}

// BoundsKind returns the parsed bounds kind.
func (c Config) BoundsKind() shape.BoundsKind {
	k, _ := shape.ParseBoundsKind(c.Bounds)
	return k
}

// Write encodes c as TOML to path, creating parent directories.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}
