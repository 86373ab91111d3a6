package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is parsec-calc's on-disk configuration, loaded from the TOML
// file named by --settings. It replaces the old string-keyed Config bundle
// the grammar compiler used with a typed struct, since BurntSushi/toml
// decodes straight into one.
type Settings struct {
	Color   ColorSettings  `toml:"color"`
	Numbers NumberSettings `toml:"numbers"`
}

// ColorSettings controls colored CLI output. Enabled turns color on or off;
// Theme is decoded but not read: output always uses ascii.DefaultTheme.
type ColorSettings struct {
	Enabled bool   `toml:"enabled"`
	Theme   string `toml:"theme"`
}

// NumberSettings governs the calc subcommand's term parser.
type NumberSettings struct {
	// AllowFloats, if set, would switch calc's term parser from
	// tp.Decimal() to tp.Number(); the scenario this binary demos is
	// integer-only, so it defaults to off and is not yet wired.
	AllowFloats bool `toml:"allow_floats"`
}

// NewSettings returns the built-in defaults.
func NewSettings() *Settings {
	return &Settings{
		Color: ColorSettings{Enabled: true, Theme: "default"},
	}
}

// LoadSettings reads path as TOML over top of the defaults. A missing file
// is not an error — the defaults stand alone, the way a hand-rolled CLI
// with no config file present would behave.
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings()
	if path == "" {
		return s, nil
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("parsec-calc: reading settings %s: %w", path, err)
	}
	return s, nil
}
