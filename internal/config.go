package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Library       string   `mapstructure:"library"`
	ImageExt      []string `mapstructure:"image_extensions"`
	VideoExt      []string `mapstructure:"video_extensions"`
	OnConflict    string   `mapstructure:"on_conflict"`
	MtimeFallback bool     `mapstructure:"mtime_fallback"`
	UseExifTool   bool     `mapstructure:"use_exiftool"`
	UseHardlinks  bool     `mapstructure:"use_hardlinks"`
	FFprobePath   string   `mapstructure:"ffprobe_path"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("narsil")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "narsil"))

	// Set defaults:
	viper.SetDefault("library", filepath.Join(os.Getenv("HOME"), "narsil/library"))
	viper.SetDefault("image_extensions", []string{".jpg", ".jpeg", ".png", ".gif", ".heic", ".tif", ".tiff"})
	viper.SetDefault("video_extensions", []string{".mp4", ".mov", ".avi", ".mkv"})
	viper.SetDefault("on_conflict", "fail")
	viper.SetDefault("mtime_fallback", false)
	viper.SetDefault("use_exiftool", false)
	viper.SetDefault("use_hardlinks", false)
	viper.SetDefault("ffprobe_path", "ffprobe")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.OnConflict != string(ConflictFail) && cfg.OnConflict != string(ConflictMetadata) {
		return nil, fmt.Errorf("invalid on_conflict value %q (want %q or %q)",
			cfg.OnConflict, ConflictFail, ConflictMetadata)
	}

	return &cfg, nil
}
