package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical dashboard defaults file.
const DefaultConfigPath = "config/dashboard.defaults.json"

// Built-in defaults used when a field is omitted from the config file.
const (
	DefaultListen          = ":8050"
	DefaultDataFile        = "data_precomputed.csv"
	DefaultAudioDir        = "audio"
	DefaultImageDir        = "spider_plots"
	DefaultAssetsHost      = "https://go-echarts.github.io/go-echarts-assets/assets/"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultColorBy         = "valence_arousal_refined"
	DefaultPointSize       = 3
	DefaultOpacity         = 1.0
)

// DashboardConfig is the startup configuration. Every field is optional;
// the Get* methods fall back to the built-in defaults, so partial configs
// are safe.
type DashboardConfig struct {
	// Server
	Listen          *string `json:"listen,omitempty"`
	ShutdownTimeout *string `json:"shutdown_timeout,omitempty"` // duration string like "5s"
	Debug           *bool   `json:"debug,omitempty"`

	// Files, relative paths resolve against the base directory
	BaseDir  *string `json:"base_dir,omitempty"`
	DataFile *string `json:"data_file,omitempty"`
	AudioDir *string `json:"audio_dir,omitempty"`
	ImageDir *string `json:"image_dir,omitempty"`

	// Chart assets
	AssetsHost *string `json:"assets_host,omitempty"`

	// Initial control state
	ColorBy   *string  `json:"color_by,omitempty"`
	PointSize *int     `json:"point_size,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
}

// EmptyDashboardConfig returns a config with every field unset.
func EmptyDashboardConfig() *DashboardConfig {
	return &DashboardConfig{}
}

// LoadDashboardConfig loads a config from a JSON file. The file must have a
// .json extension and be under 1MB.
func LoadDashboardConfig(path string) (*DashboardConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyDashboardConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching from the current
// directory up to the repository root. Panics if the file cannot be loaded;
// intended for test setup.
func MustLoadDefaultConfig() *DashboardConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadDashboardConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *DashboardConfig) Validate() error {
	if c.Listen != nil && *c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}
	if c.ShutdownTimeout != nil && *c.ShutdownTimeout != "" {
		d, err := time.ParseDuration(*c.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout '%s': %w", *c.ShutdownTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("shutdown_timeout must be non-negative, got %s", d)
		}
	}
	if c.PointSize != nil && (*c.PointSize < 1 || *c.PointSize > 11) {
		return fmt.Errorf("point_size must be between 1 and 11, got %d", *c.PointSize)
	}
	if c.Opacity != nil && (*c.Opacity < 0.3 || *c.Opacity > 1.0) {
		return fmt.Errorf("opacity must be between 0.3 and 1.0, got %f", *c.Opacity)
	}
	return nil
}

// GetListen returns the listen address or the default.
func (c *DashboardConfig) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return DefaultListen
	}
	return *c.Listen
}

// GetShutdownTimeout parses and returns the graceful shutdown timeout.
func (c *DashboardConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == nil || *c.ShutdownTimeout == "" {
		return DefaultShutdownTimeout
	}
	d, err := time.ParseDuration(*c.ShutdownTimeout)
	if err != nil {
		return DefaultShutdownTimeout
	}
	return d
}

// GetDebug returns whether the /debug/ routes are mounted.
func (c *DashboardConfig) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}

// GetBaseDir returns the configured base directory, or "" meaning "the
// directory of the running executable".
func (c *DashboardConfig) GetBaseDir() string {
	if c.BaseDir == nil {
		return ""
	}
	return *c.BaseDir
}

// GetAssetsHost returns the URL prefix for the echarts JS assets.
func (c *DashboardConfig) GetAssetsHost() string {
	if c.AssetsHost == nil || *c.AssetsHost == "" {
		return DefaultAssetsHost
	}
	return *c.AssetsHost
}

// GetColorBy returns the initial colour-by field.
func (c *DashboardConfig) GetColorBy() string {
	if c.ColorBy == nil || *c.ColorBy == "" {
		return DefaultColorBy
	}
	return *c.ColorBy
}

// GetPointSize returns the initial point size.
func (c *DashboardConfig) GetPointSize() int {
	if c.PointSize == nil {
		return DefaultPointSize
	}
	return *c.PointSize
}

// GetOpacity returns the initial opacity.
func (c *DashboardConfig) GetOpacity() float64 {
	if c.Opacity == nil {
		return DefaultOpacity
	}
	return *c.Opacity
}

// Paths holds the resolved on-disk locations the server reads.
type Paths struct {
	DataFile string
	AudioDir string
	ImageDir string
}

// ResolvePaths joins the configured file locations onto base. Absolute
// entries are kept as-is.
func (c *DashboardConfig) ResolvePaths(base string) Paths {
	pick := func(v *string, def string) string {
		p := def
		if v != nil && *v != "" {
			p = *v
		}
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	return Paths{
		DataFile: pick(c.DataFile, DefaultDataFile),
		AudioDir: pick(c.AudioDir, DefaultAudioDir),
		ImageDir: pick(c.ImageDir, DefaultImageDir),
	}
}
