package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SaveDirectory string  `toml:"save_directory"`
	Confirmations bool    `toml:"confirmations"`
	GridUnit      float64 `toml:"grid_unit"`
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	CellWidth     int     `toml:"cell_width"`
	CellHeight    int     `toml:"cell_height"`
	LogFile       string  `toml:"log_file"`
	TableShape    string  `toml:"table_shape"`
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		GridUnit:      20,
		Width:         1000,
		Height:        800,
		CellWidth:     defaultCellWidth,
		CellHeight:    defaultCellHeight,
		TableShape:    "square",
	}
}

// configPath is $XDG_CONFIG_HOME/seatplan/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "seatplan", "config.toml")
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory)
	config.LogFile = expandPath(config.LogFile)
	if config.GridUnit <= 0 {
		config.GridUnit = 20
	}
	if config.Width <= 0 {
		config.Width = 1000
	}
	if config.Height <= 0 {
		config.Height = 800
	}
	if config.CellWidth <= 0 {
		config.CellWidth = defaultCellWidth
	}
	if config.CellHeight <= 0 {
		config.CellHeight = defaultCellHeight
	}
	if config.TableShape == "" {
		config.TableShape = "square"
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if abs, err := filepath.Abs(value); err == nil {
			value = abs
		}
	}
	return value
}

// SavePath places filename in the save directory, creating it if needed.
// Absolute names are kept as given.
func (c *Config) SavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// listDir is where the open dialog looks for layouts.
func (c *Config) listDir() string {
	if c.SaveDirectory != "" {
		return c.SaveDirectory
	}
	return "."
}
