// Package config loads the CLI's display settings file. The engine itself
// takes no configuration; everything here is presentation.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fincalcs/engine/internal/output"
)

// Settings is the optional settings record, usually fincalc.yaml.
type Settings struct {
	// Currency display: symbol, grouping convention, decimal places.
	Symbol   string
	Grouping string
	Places   int32
	// Format is the default output format (text, json or yaml).
	Format string
	// Debug switches the logger to development mode.
	Debug bool
}

// Defaults returns the settings used when no file is given.
func Defaults() Settings {
	return Settings{
		Grouping: string(output.Western),
		Places:   2,
		Format:   "text",
	}
}

// Load reads a settings file, layered over Defaults. Environment variables
// (FINCALC_FORMAT and friends) override the file.
func Load(path string) (Settings, error) {
	settings := Defaults()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("fincalc")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return settings, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	if err := viper.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("decoding settings file %s: %w", path, err)
	}

	switch output.Grouping(settings.Grouping) {
	case output.Western, output.Indian:
	default:
		return settings, fmt.Errorf("unknown grouping %q", settings.Grouping)
	}
	return settings, nil
}

// Display builds the formatter config these settings describe.
func (s Settings) Display() output.Config {
	return output.Config{
		Symbol:   s.Symbol,
		Grouping: output.Grouping(s.Grouping),
		Places:   s.Places,
	}
}
