package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"memodeck/internal/eventbus"
)

const fileName = "config.toml"

// ErrInvalid is returned when a loaded config fails validation
var ErrInvalid = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	DBPath     string       `toml:"db_path"`
	LogFile    string       `toml:"log_file"`
	Bulk       BulkSettings `toml:"bulk"`
	UISettings UISettings   `toml:"ui"`
	Data       DataSettings `toml:"data"`
}

// BulkSettings tunes batch delete/restore. Durations are milliseconds.
type BulkSettings struct {
	Cap             int    `toml:"cap"`
	CountCap        int    `toml:"count_cap"`
	AnimationMS     int    `toml:"animation_ms"`
	IntervalMS      int    `toml:"interval_ms"`
	SettleMS        int    `toml:"settle_ms"`
	LidCloseMS      int    `toml:"lid_close_ms"`
	ProcessingEndMS int    `toml:"processing_end_ms"`
	Concurrency     int    `toml:"concurrency"`
	Easing          string `toml:"easing"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DefaultSort    string `toml:"default_sort"`
	ShowHelpBar    bool   `toml:"show_help_bar"`
	RenderMarkdown bool   `toml:"render_markdown"`
}

// DataSettings adds artificial latency to store mutations
type DataSettings struct {
	LatencyMS int `toml:"latency_ms"`
	JitterMS  int `toml:"jitter_ms"`
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (b BulkSettings) AnimationDuration() time.Duration { return ms(b.AnimationMS) }
func (b BulkSettings) Interval() time.Duration { return ms(b.IntervalMS) }
func (b BulkSettings) SettleDelay() time.Duration { return ms(b.SettleMS) }
func (b BulkSettings) LidCloseDelay() time.Duration { return ms(b.LidCloseMS) }
func (b BulkSettings) ProcessingEndDelay() time.Duration { return ms(b.ProcessingEndMS) }
func (d DataSettings) Latency() (base, jitter time.Duration) { return ms(d.LatencyMS), ms(d.JitterMS) }

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns ~/.config/memodeck/config.toml or the platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "memodeck", fileName)
}

// NewConfigService creates a config service reading path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it doesn't exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: true})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it sets
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
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

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// Validate rejects settings the bulk engine can't run with
func (c *Config) Validate() error {
	b := c.Bulk
	switch {
	case b.Cap <= 0:
		return fmt.Errorf("%w: bulk.cap must be positive, got %d", ErrInvalid, b.Cap)
	case b.CountCap <= 0:
		return fmt.Errorf("%w: bulk.count_cap must be positive, got %d", ErrInvalid, b.CountCap)
	case b.IntervalMS <= 0:
		return fmt.Errorf("%w: bulk.interval_ms must be positive, got %d", ErrInvalid, b.IntervalMS)
	case b.AnimationMS < 0 || b.SettleMS < 0 || b.LidCloseMS < 0 || b.ProcessingEndMS < 0:
		return fmt.Errorf("%w: bulk delays must not be negative", ErrInvalid)
	case b.Concurrency <= 0:
		return fmt.Errorf("%w: bulk.concurrency must be positive, got %d", ErrInvalid, b.Concurrency)
	}
	if c.Data.LatencyMS < 0 || c.Data.JitterMS < 0 {
		return fmt.Errorf("%w: data latency must not be negative", ErrInvalid)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "memodeck")
	}

	return &Config{
		Version: 1,
		DBPath:  filepath.Join(dataDir, "memodeck.db"),
		LogFile: "memodeck.log",
		Bulk: BulkSettings{
			Cap:             100,
			CountCap:        999,
			AnimationMS:     1000,
			IntervalMS:      40,
			SettleMS:        1000,
			LidCloseMS:      500,
			ProcessingEndMS: 600,
			Concurrency:     8,
			Easing:          "ease-out-cubic",
		},
		UISettings: UISettings{
			DefaultSort:    "created",
			ShowHelpBar:    true,
			RenderMarkdown: true,
		},
	}
}
