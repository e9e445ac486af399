// Package config handles burl configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all burl settings.
type Config struct {
	Kernel   KernelConfig   `yaml:"kernel"`
	Geometry GeometryConfig `yaml:"geometry"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// KernelConfig selects and tunes the geometry backend.
type KernelConfig struct {
	Backend   string `yaml:"backend"`    // "bsp" or "sdfx"
	Segments  int    `yaml:"segments"`   // default curved-surface segments (bsp)
	MeshCells int    `yaml:"mesh_cells"` // marching cubes resolution (sdfx)
}

// GeometryConfig holds numeric tolerances for the polygon core.
type GeometryConfig struct {
	Epsilon float64 `yaml:"epsilon"` // plane classification tolerance
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "stl" or "obj"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			Backend:   "bsp",
			Segments:  16,
			MeshCells: 200,
		},
		Geometry: GeometryConfig{
			Epsilon: 1e-5,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "stl",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Load returns the default configuration overlaid with the given YAML
// file. An empty path means defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// Validate checks for settings no backend can honor.
func (c *Config) Validate() error {
	switch c.Kernel.Backend {
	case "bsp", "sdfx":
	default:
		return fmt.Errorf("config: unknown kernel backend %q (want bsp or sdfx)", c.Kernel.Backend)
	}
	switch c.Output.Format {
	case "stl", "obj":
	default:
		return fmt.Errorf("config: unknown output format %q (want stl or obj)", c.Output.Format)
	}
	if c.Geometry.Epsilon <= 0 {
		return fmt.Errorf("config: epsilon must be positive, got %g", c.Geometry.Epsilon)
	}
	if c.Kernel.Segments < 0 || (c.Kernel.Segments > 0 && c.Kernel.Segments < 3) {
		return fmt.Errorf("config: segments must be 0 (default) or at least 3, got %d", c.Kernel.Segments)
	}
	return nil
}
