package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultAPIBaseURL     = "https://apijson-ezj8.onrender.com/"
	defaultLogLevel       = "info"
	defaultEnv            = EnvLocal
	defaultConfigDir      = ".sticky"
	defaultStateFile      = "state.db"
	defaultRequestTimeout = 30
	defaultKeepUnused     = 60
)

type Config struct {
	Env               string  `mapstructure:"app_env"`
	APIBaseURL        string  `mapstructure:"api_base_url"`
	LogLevel          string  `mapstructure:"log_level"`
	ConfigDir         string  `mapstructure:"config_dir"`
	StatePath         string  `mapstructure:"state_path"`
	RequestTimeout    int     `mapstructure:"request_timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	CacheKeepUnused   int     `mapstructure:"cache_keep_unused_seconds"`
	MetricsAddr       string  `mapstructure:"metrics_addr"`
}

// Load загружает конфигурацию клиента из .env, переменных окружения
// и уже прочитанного viper конфигурационного файла
func Load() (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	viper.SetDefault("REQUESTS_PER_SECOND", 0)
	viper.SetDefault("CACHE_KEEP_UNUSED_SECONDS", defaultKeepUnused)
	viper.SetDefault("METRICS_ADDR", "")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	statePath := viper.GetString("STATE_PATH")
	if statePath == "" {
		statePath = filepath.Join(configDir, defaultStateFile)
	}

	cfg := &Config{
		Env:               viper.GetString("APP_ENV"),
		APIBaseURL:        viper.GetString("API_BASE_URL"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
		ConfigDir:         configDir,
		StatePath:         statePath,
		RequestTimeout:    viper.GetInt("REQUEST_TIMEOUT_SECONDS"),
		RequestsPerSecond: viper.GetFloat64("REQUESTS_PER_SECOND"),
		CacheKeepUnused:   viper.GetInt("CACHE_KEEP_UNUSED_SECONDS"),
		MetricsAddr:       viper.GetString("METRICS_ADDR"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url не может быть пустым")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_base_url должен быть абсолютным URL: %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second не может быть отрицательным")
	}
	if c.CacheKeepUnused < 0 {
		return fmt.Errorf("cache_keep_unused_seconds не может быть отрицательным")
	}
	return nil
}

// RequestTimeoutDuration - таймаут одного HTTP запроса
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// KeepUnusedDuration - время жизни данных кэша без подписчиков
func (c *Config) KeepUnusedDuration() time.Duration {
	return time.Duration(c.CacheKeepUnused) * time.Second
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
