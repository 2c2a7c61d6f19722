package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Display DisplayConfig
	Preview PreviewConfig
	Engine  EngineConfig
	Window  WindowConfig
}

// DisplayConfig holds result formatting settings.
type DisplayConfig struct {
	Locale   string
	Decimals int
}

// PreviewConfig holds mesh generation settings. Kernel is "sdfx" or
// "manifold"; MeshCells applies to sdfx and Segments to manifold.
type PreviewConfig struct {
	Kernel    string
	MeshCells int `mapstructure:"mesh_cells"`
	Segments  int
}

// EngineConfig holds worksheet evaluation settings.
type EngineConfig struct {
	EvalTimeout time.Duration `mapstructure:"eval_timeout"`
}

// WindowConfig holds the initial window size.
type WindowConfig struct {
	Width  int
	Height int
}

// Path returns the config file location. SHAPECALC_CONFIG takes precedence.
func Path() string {
	if p := os.Getenv("SHAPECALC_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "shapecalc", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SHAPECALC_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("display.locale", "id")
	v.SetDefault("display.decimals", 2)
	v.SetDefault("preview.kernel", "sdfx")
	v.SetDefault("preview.mesh_cells", 64)
	v.SetDefault("preview.segments", 64)
	v.SetDefault("engine.eval_timeout", 5*time.Second)
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SHAPECALC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "shapecalc"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHAPECALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Display.Decimals < 0 {
		return Config{}, fmt.Errorf("display.decimals must not be negative, got %d", c.Display.Decimals)
	}
	return c, nil
}

// Save writes the display preferences to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("display.locale", cfg.Display.Locale)
	v.Set("display.decimals", cfg.Display.Decimals)
	v.Set("preview.kernel", cfg.Preview.Kernel)
	v.Set("preview.mesh_cells", cfg.Preview.MeshCells)
	v.Set("preview.segments", cfg.Preview.Segments)
	v.Set("engine.eval_timeout", cfg.Engine.EvalTimeout.String())
	v.Set("window.width", cfg.Window.Width)
	v.Set("window.height", cfg.Window.Height)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
