package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath = "./data.db3"
	configName  = ".flowlog" // .yaml is implicit
	envPrefix   = "FLOWLOG"
)

// FileConfig is the settings resolved from .flowlog.yaml and FLOWLOG_* variables.
type FileConfig struct {
	StoreBackend string `mapstructure:"backend"`
	Path         string `mapstructure:"path"`
	Memory       bool   `mapstructure:"memory"`
	WeekStart    string `mapstructure:"week_start"`
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
}

func (f *FileConfig) Backend() string  { return f.StoreBackend }
func (f *FileConfig) BasePath() string { return f.Path }
func (f *FileConfig) InMemory() bool   { return f.Memory }

// LoadConfig looks for .flowlog.yaml in $FLOWLOG_CONFIG_PATH and then the
// working directory. A missing file is not an error.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("path", DefaultPath)
	v.SetDefault("memory", false)
	v.SetDefault("week_start", "sunday")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &FileConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("store: decode config: %w", err)
	}

	var err error
	if cfg.Path, err = homedir.Expand(cfg.Path); err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("store: expand log_file: %w", err)
	}
	return cfg, nil
}
