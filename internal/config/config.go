package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/genricoloni/umbra/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultFrameRate        = 30
	defaultHoldDuration     = 2 * time.Second
	defaultKeyPollInterval  = 10 * time.Millisecond
	defaultScanInterval     = time.Second
	defaultFailureThreshold = 3
)

// Config holds every tunable of the daemon. Values come from an optional
// YAML file (UMBRA_CONFIG) overridden by individual environment variables.
type Config struct {
	// FrameInterval is the capture loop period (derived from frame rate).
	FrameInterval time.Duration `yaml:"-"`
	// FrameRate is the target capture rate in Hz, best effort.
	FrameRate int `yaml:"frame_rate"`
	// HoldDuration is how long the toggle key must be held to fire.
	HoldDuration time.Duration `yaml:"hold_duration"`
	// KeyPollInterval is the gesture detector poll period.
	KeyPollInterval time.Duration `yaml:"key_poll_interval"`
	// ScanInterval is the video-window rescan period.
	ScanInterval time.Duration `yaml:"scan_interval"`
	// FailureThreshold is how many consecutive capture failures mark the
	// pipeline degraded.
	FailureThreshold int `yaml:"failure_threshold"`
	// Monitor is the default monitor index selected at startup.
	Monitor int `yaml:"monitor"`
	// ToggleKeys names the keys that arm the hold gesture. Any one of
	// them held past HoldDuration toggles inversion.
	ToggleKeys []string `yaml:"toggle_keys"`
}

// Keys resolves the configured key names to virtual-key codes, dropping
// names it does not know.
func (c *Config) Keys(logger *zap.Logger) []domain.Key {
	keys := make([]domain.Key, 0, len(c.ToggleKeys))
	for _, name := range c.ToggleKeys {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "lsuper", "lwin":
			keys = append(keys, domain.KeyLeftSuper)
		case "rsuper", "rwin":
			keys = append(keys, domain.KeyRightSuper)
		default:
			logger.Warn("Unknown toggle key name, ignoring", zap.String("key", name))
		}
	}
	if len(keys) == 0 {
		keys = []domain.Key{domain.KeyLeftSuper, domain.KeyRightSuper}
	}
	return keys
}

// Load builds the configuration from the environment and the optional
// YAML file named by UMBRA_CONFIG.
func Load(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		FrameRate:        defaultFrameRate,
		HoldDuration:     defaultHoldDuration,
		KeyPollInterval:  defaultKeyPollInterval,
		ScanInterval:     defaultScanInterval,
		FailureThreshold: defaultFailureThreshold,
		ToggleKeys:       []string{"lsuper", "rsuper"},
	}

	if path := os.Getenv("UMBRA_CONFIG"); path != "" {
		data, err := os.ReadFile(os.ExpandEnv(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		logger.Info("Configuration file loaded", zap.String("path", path))
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", cfg.FrameRate)
	}
	if cfg.HoldDuration <= 0 || cfg.KeyPollInterval <= 0 || cfg.ScanInterval <= 0 {
		return nil, fmt.Errorf("intervals must be positive")
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	cfg.FrameInterval = time.Second / time.Duration(cfg.FrameRate)

	logger.Info("Configuration loaded",
		zap.Int("frameRate", cfg.FrameRate),
		zap.Duration("holdDuration", cfg.HoldDuration),
		zap.Duration("scanInterval", cfg.ScanInterval),
		zap.Int("monitor", cfg.Monitor),
		zap.Strings("toggleKeys", cfg.ToggleKeys))

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("UMBRA_FRAME_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UMBRA_FRAME_RATE %q: %w", v, err)
		}
		cfg.FrameRate = n
	}
	if v := os.Getenv("UMBRA_MONITOR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UMBRA_MONITOR %q: %w", v, err)
		}
		cfg.Monitor = n
	}
	if v := os.Getenv("UMBRA_TOGGLE_KEYS"); v != "" {
		cfg.ToggleKeys = strings.Split(v, ",")
	}
	for _, d := range []struct {
		env string
		dst *time.Duration
	}{
		{"UMBRA_HOLD_DURATION", &cfg.HoldDuration},
		{"UMBRA_KEY_POLL_INTERVAL", &cfg.KeyPollInterval},
		{"UMBRA_SCAN_INTERVAL", &cfg.ScanInterval},
	} {
		if v := os.Getenv(d.env); v != "" {
			dur, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", d.env, v, err)
			}
			*d.dst = dur
		}
	}
	return nil
}
