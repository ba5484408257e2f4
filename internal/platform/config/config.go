package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings carries the tunables a player may override in settings.yaml.
type Settings struct {
	PointsPerLevel int `yaml:"points_per_level"`
	DailyReward    int `yaml:"daily_reward"`
}

type Config struct {
	DataPath string
	DBPath   string
	Settings Settings
}

func defaultSettings() Settings {
	return Settings{PointsPerLevel: 100, DailyReward: 100}
}

// New resolves the data directory and loads settings.yaml when present.
// A missing or unreadable settings file falls back to defaults.
func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath: dataPath,
		DBPath:   filepath.Join(dataPath, ".wellquest", "history.db"),
		Settings: defaultSettings(),
	}

	payload, err := os.ReadFile(filepath.Join(dataPath, ".wellquest", "settings.yaml"))
	if err != nil {
		return cfg, nil
	}
	settings := defaultSettings()
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return cfg, nil
	}
	if settings.PointsPerLevel <= 0 {
		settings.PointsPerLevel = cfg.Settings.PointsPerLevel
	}
	if settings.DailyReward < 0 {
		settings.DailyReward = cfg.Settings.DailyReward
	}
	cfg.Settings = settings
	return cfg, nil
}
