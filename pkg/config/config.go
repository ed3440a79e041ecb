// Package config loads optional user defaults for docxgrep.
// Settings live in a TOML file under the XDG config directory and only
// provide flag defaults; explicit command-line flags always win.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/docxgrep/pkg/errors"
)

// ConfigFileName is the file looked up under $XDG_CONFIG_HOME/docxgrep/
const ConfigFileName = "config.toml"

// Config holds user-tunable defaults
type Config struct {
	Output OutputConfig `toml:"output"`
	Search SearchConfig `toml:"search"`
}

// OutputConfig mirrors the rendering flags
type OutputConfig struct {
	Color         bool `toml:"color"`
	Hyperlink     bool `toml:"hyperlink"`
	HangingIndent bool `toml:"hanging_indent"`
	InitialTab    bool `toml:"initial_tab"`
	NoProgressBar bool `toml:"no_progress_bar"`
	// WrapMargin is subtracted from the terminal width before wrapping
	WrapMargin int `toml:"wrap_margin"`
}

// SearchConfig mirrors the matching flags
type SearchConfig struct {
	IgnoreCase bool `toml:"ignore_case"`
	Recursive  bool `toml:"recursive"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			WrapMargin: 8,
		},
	}
}

// Path returns the location of the user config file, whether or not it exists
func Path() string {
	return filepath.Join(xdg.ConfigHome, "docxgrep", ConfigFileName)
}

// Load reads the user config file, overlaying it on the defaults.
// A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read config file").
			WithDetail("path", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot parse config file").
			WithDetail("path", path)
	}

	return cfg, nil
}
