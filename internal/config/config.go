package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration. Command-line flags
// override any value set here.
type Config struct {
	// DefaultSize is the Scryfall image size used when --size is not given.
	DefaultSize string `toml:"default_size"`
	// BorderColor enables the print-bleed border when set to black, white,
	// or transparent. Empty means no border.
	BorderColor string `toml:"border_color"`
	// OutputDir is the base directory card folders are created under.
	OutputDir string `toml:"output_dir"`
	// RequestDelayMS is the minimum spacing between Scryfall requests.
	RequestDelayMS int `toml:"request_delay_ms"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "scryforge", "config.toml")
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		DefaultSize:    "png",
		BorderColor:    "",
		OutputDir:      ".",
		RequestDelayMS: 100,
	}
}

// LoadConfig loads the config file, creating it with defaults on first run.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	_, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := Default()

	// Create the file
	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}
