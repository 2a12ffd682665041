package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Convert ConvertConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type AppConfig struct {
	UploadDir     string
	OutputDir     string
	MaxUploadSize int64
}

type ConvertConfig struct {
	WorkerCount int
	Timeout     time.Duration
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("APP_UPLOAD_DIR", "./uploads")
	viper.SetDefault("APP_OUTPUT_DIR", "./outputs")
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10MB
	viper.SetDefault("CONVERT_WORKER_COUNT", runtime.NumCPU())
	viper.SetDefault("CONVERT_TIMEOUT", "120s")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		App: AppConfig{
			UploadDir:     viper.GetString("APP_UPLOAD_DIR"),
			OutputDir:     viper.GetString("APP_OUTPUT_DIR"),
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
		},
		Convert: ConvertConfig{
			WorkerCount: viper.GetInt("CONVERT_WORKER_COUNT"),
			Timeout:     viper.GetDuration("CONVERT_TIMEOUT"),
		},
	}

	if cfg.Convert.WorkerCount < 1 {
		cfg.Convert.WorkerCount = 1
	}

	if err := createDirs(cfg); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

func createDirs(cfg *Config) error {
	dirs := []string{
		cfg.App.UploadDir,
		cfg.App.OutputDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
