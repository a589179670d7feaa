package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"photogrid/internal/eventbus"
	"photogrid/internal/selection"
)

// FileName is the per-gallery configuration file
const FileName = ".photogrid.toml"

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	PhotoDir  string            `toml:"photo_dir"`
	MoveDir   string            `toml:"move_dir"`
	TrashDir  string            `toml:"trash_dir"`
	Favorites []string          `toml:"favorites"`
	Selection SelectionSettings `toml:"selection"`
	Scan      ScanSettings      `toml:"scan"`
	UI        UISettings        `toml:"ui"`
}

// SelectionSettings tunes the paint selection engine
type SelectionSettings struct {
	DebounceMoves int `toml:"debounce_moves"`
}

// ScanSettings tunes gallery discovery
type ScanSettings struct {
	MaxDepth int `toml:"max_depth"`
	Workers  int `toml:"workers"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CellWidth      int  `toml:"cell_width"`
	ShowDimensions bool `toml:"show_dimensions"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the gallery in photoDir
func NewConfigService(photoDir string) ConfigService {
	return &configService{
		filePath: filepath.Join(photoDir, FileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(photoDir string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(photoDir).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the gallery configuration, falling back to defaults when the
// file does not exist yet
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig(filepath.Dir(cs.filePath))
	} else {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{PhotoDir: cfg.PhotoDir})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from the file keep sane values
	cfg := DefaultConfig(filepath.Dir(path))
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration for a gallery directory
func DefaultConfig(photoDir string) *Config {
	return &Config{
		Version:   1,
		PhotoDir:  photoDir,
		MoveDir:   filepath.Join(photoDir, "sorted"),
		TrashDir:  filepath.Join(photoDir, ".photogrid-trash"),
		Favorites: []string{},
		Selection: SelectionSettings{
			DebounceMoves: selection.DefaultDebounceMoves,
		},
		Scan: ScanSettings{
			MaxDepth: 5,
			Workers:  8,
		},
		UI: UISettings{
			CellWidth:      20,
			ShowDimensions: true,
		},
	}
}

// normalize repairs out-of-range values read from disk
func (c *Config) normalize() {
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	if c.Selection.DebounceMoves < 0 {
		c.Selection.DebounceMoves = 0
	}
	if c.Scan.MaxDepth <= 0 {
		c.Scan.MaxDepth = 5
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = 8
	}
	if c.UI.CellWidth < 8 {
		c.UI.CellWidth = 8
	}
}
