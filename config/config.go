// Package config reads the worldgraph CLI settings from a TOML file.
//
// Every key is optional; missing keys keep their Default value:
//
//	cell_size     = 64      # spatial index cell edge
//	tile_size     = 256     # tile edge for tiled loading
//	workers       = 4       # concurrent tile planners, 0 = one per tile
//	log_level     = "info"  # debug, info, warn, error
//	default_graph = ""      # graph used when a document names none
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/katalvlaran/worldgraph/builder"
	"github.com/katalvlaran/worldgraph/core"
)

var (
	// ErrInvalid indicates a value out of range.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownKey indicates a key the Config does not define.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Config holds the CLI settings.
type Config struct {
	CellSize     int    `toml:"cell_size"`
	TileSize     int    `toml:"tile_size"`
	Workers      int    `toml:"workers"`
	LogLevel     string `toml:"log_level"`
	DefaultGraph string `toml:"default_graph"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		CellSize: core.DefaultCellSize,
		TileSize: builder.DefaultTileSize,
		Workers:  4,
		LogLevel: "info",
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges and the log level name.
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell_size %d", ErrInvalid, c.CellSize)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size %d", ErrInvalid, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}

	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return l
}
