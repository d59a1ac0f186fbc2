package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
)

// Config holds the optional TOML configuration. Every field has a
// working default; the file only overrides.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Style  StyleConfig  `toml:"style"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// StoreConfig selects the diagram store backend for the server.
type StoreConfig struct {
	Backend         string `toml:"backend"` // memory (default), sqlite, mongo
	Path            string `toml:"path"`    // sqlite database file
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// StyleConfig overrides the default diagram style.
type StyleConfig struct {
	BorderThickness int    `toml:"border_thickness"`
	BorderColor     string `toml:"border_color"`
}

// LayoutConfig overrides layout dimensions.
type LayoutConfig struct {
	MaxCanvasWidth float64 `toml:"max_canvas_width"`
	GapX           float64 `toml:"gap_x"`
	GapY           float64 `toml:"gap_y"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: "memory", MongoCollection: "diagrams"},
	}
}

// defaultConfigPath returns ~/.config/classdraw/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the TOML file at path, or the default location when
// path is empty. A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config file")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file")
	}
	return cfg, nil
}

// layoutConfig builds the layout configuration from defaults plus overrides.
func (c Config) layoutConfig() layout.Config {
	lc := layout.DefaultConfig()
	if c.Layout.MaxCanvasWidth > 0 {
		lc.MaxCanvasWidth = c.Layout.MaxCanvasWidth
	}
	if c.Layout.GapX > 0 {
		lc.GapX = c.Layout.GapX
	}
	if c.Layout.GapY > 0 {
		lc.GapY = c.Layout.GapY
	}
	return lc
}

// applyStyle overrides the diagram style with configured defaults,
// keeping whatever the document itself set when the config is silent.
func (c Config) applyStyle(d model.Diagram) model.Diagram {
	s := d.Style
	if c.Style.BorderThickness != 0 {
		s.BorderThickness = c.Style.BorderThickness
	}
	if c.Style.BorderColor != "" {
		s.BorderColor = c.Style.BorderColor
	}
	return d.SetStyle(s)
}
