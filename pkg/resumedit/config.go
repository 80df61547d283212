package resumedit

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config contains the tunables of the document editor
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// MaxBlankRemoval bounds how many blank paragraphs a single cleanup pass
	// may delete around a bullet block
	MaxBlankRemoval int
	// JustifyBullets forces justified alignment on rewritten bullet paragraphs
	JustifyBullets bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func loadGlobalConfig() {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		globalConfig = ConfigFromEnvironment()
		globalConfigMutex.Unlock()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		MaxBlankRemoval: 50,
		JustifyBullets:  true,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// RESUMEDIT_LOG_LEVEL
	if val := os.Getenv("RESUMEDIT_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// RESUMEDIT_MAX_BLANK_REMOVAL
	if val := os.Getenv("RESUMEDIT_MAX_BLANK_REMOVAL"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxBlankRemoval = n
		}
	}

	// RESUMEDIT_JUSTIFY_BULLETS
	if val := os.Getenv("RESUMEDIT_JUSTIFY_BULLETS"); val != "" {
		config.JustifyBullets = parseBool(val)
	}

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxBlankRemoval <= 0 {
		return errors.New("max blank removal must be positive")
	}

	return nil
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	loadGlobalConfig()

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	loadGlobalConfig()

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
