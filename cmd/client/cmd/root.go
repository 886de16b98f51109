// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"sticky/cmd/client/cmd/types"
	"sticky/internal/app/client"
	"sticky/internal/app/client/config"
	"sticky/internal/utils/logger"
)

var (
	cfgFile string
	debug   bool
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "sticky",
	Short: "STICKY - клиент для личных заметок",
	Long: `STICKY - консольный клиент сервиса заметок.

Регистрация, вход по email и паролю, создание, изменение и удаление
своих заметок. Заметки и пользователи хранятся на REST бэкенде,
локально сохраняется только email текущей сессии.`,
	PersistentPreRunE: setupApp,
	PersistentPostRun: shutdownApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	configureOutput(cfg)

	// Настраиваем логгер
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.NewWithLevel(cfg.Env, level)

	// Создаем приложение
	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))

	log.Debug("Клиент запущен",
		slog.String("api", cfg.APIBaseURL),
		slog.String("env", cfg.Env),
	)

	return nil
}

// configureOutput отключает цвет вне локального окружения
func configureOutput(cfg *config.Config) {
	if !cfg.IsLocal() {
		color.NoColor = true
	}
}

func shutdownApp(cmd *cobra.Command, _ []string) {
	if app, err := types.AppFromContext(cmd.Context()); err == nil {
		app.Shutdown()
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".sticky"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "базовый URL REST API")

	// Команды будут добавлены в init() соответствующих файлов
}
