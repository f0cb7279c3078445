package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultStorage   = "file"
	DefaultFrameRate = 60
)

// Config holds the unified application configuration
type Config struct {
	DataDir   string `json:"data_dir"`
	BackupDir string `json:"backup_dir"`
	Storage   string `json:"storage"`
	FrameRate int    `json:"frame_rate"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir   string `json:"data_dir,omitempty"`
	BackupDir string `json:"backup_dir,omitempty"`
	Storage   string `json:"storage,omitempty"`
	FrameRate int    `json:"frame_rate,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir   string
	BackupDir string
	Storage   string
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Storage:   DefaultStorage,
		FrameRate: DefaultFrameRate,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.BackupDir != "" {
				cfg.BackupDir = expandPath(fileConfig.BackupDir)
			}
			if fileConfig.Storage != "" {
				cfg.Storage = fileConfig.Storage
			}
			if fileConfig.FrameRate > 0 {
				cfg.FrameRate = fileConfig.FrameRate
			}
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("NOTER_DATA_DIR"); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := os.Getenv("NOTER_BACKUP_DIR"); v != "" {
		cfg.BackupDir = expandPath(v)
	}
	if v := os.Getenv("NOTER_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("NOTER_FRAME_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid NOTER_FRAME_RATE %q", v)
		}
		cfg.FrameRate = rate
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.BackupDir != "" {
		cfg.BackupDir = expandPath(flags.BackupDir)
	}
	if flags.Storage != "" {
		cfg.Storage = flags.Storage
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = cfg.DataDir
	}

	switch cfg.Storage {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("unknown storage %q (want file or sqlite)", cfg.Storage)
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "noter"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "noter", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDirs ensures the data and backup directories exist
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.BackupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:   defaultDir,
		Storage:   DefaultStorage,
		FrameRate: DefaultFrameRate,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
