package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tg-wheel-bot/gamble"
)

// ErrInvalid возвращается, если конфигурация не проходит проверку
var ErrInvalid = errors.New("invalid config")

// MaxOutcomes ограничение палитры GIF-кадра
const MaxOutcomes = 64

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

// Config настройки колеса, фронтендов и хранилища
type Config struct {
	Env         string           `yaml:"env"`
	Outcomes    []gamble.Outcome `yaml:"outcomes"`
	Phrases     []string         `yaml:"phrases"`
	LabelFormat string           `yaml:"label_format"`
	Spin        SpinConfig       `yaml:"spin"`
	Render      RenderConfig     `yaml:"render"`
	Redis       RedisConfig      `yaml:"redis"`
	Telegram    TelegramConfig   `yaml:"telegram"`
	Log         LogConfig        `yaml:"log"`
}

// SpinConfig параметры анимации
type SpinConfig struct {
	Duration time.Duration `yaml:"duration"`
	MinTurns int           `yaml:"min_turns"`
	MaxTurns int           `yaml:"max_turns"`
}

// RenderConfig параметры GIF-анимации
type RenderConfig struct {
	Size int `yaml:"size"`
	FPS  int `yaml:"fps"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TelegramConfig настройки бота. Токен берется только из окружения.
type TelegramConfig struct {
	Token   string `yaml:"-"`
	Timeout int    `yaml:"timeout"`
	Debug   bool   `yaml:"debug"`
}

// LogConfig уровень логирования
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultOutcomes эталонный набор из 7 секторов
func DefaultOutcomes() []gamble.Outcome {
	return []gamble.Outcome{
		{Label: "1x", Value: 1, Weight: 25, Color: "#FF6B6B"},
		{Label: "2x", Value: 2, Weight: 25, Color: "#4ECDC4"},
		{Label: "3x", Value: 3, Weight: 25, Color: "#45B7D1"},
		{Label: "5x", Value: 5, Weight: 12, Color: "#FFA07A"},
		{Label: "10x", Value: 10, Weight: 8, Color: "#98D8C8"},
		{Label: "20x", Value: 20, Weight: 3, Color: "#FFD93D"},
		{Label: "0x", Value: 0, Weight: 2, Color: "#A8E6CF"},
	}
}

// DefaultPhrases кодовые слова по умолчанию
func DefaultPhrases() []string {
	return []string{"アザラシ最高", "タマザラシ最高", "かわいい"}
}

// Default конфигурация без файла
func Default() *Config {
	return &Config{
		Env:         EnvLocal,
		Outcomes:    DefaultOutcomes(),
		Phrases:     DefaultPhrases(),
		LabelFormat: "%dx",
		Spin: SpinConfig{
			Duration: 4 * time.Second,
			MinTurns: 5,
			MaxTurns: 8,
		},
		Render: RenderConfig{Size: 320, FPS: 20},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Telegram: TelegramConfig{
			Timeout: 60,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load читает YAML поверх значений по умолчанию и применяет переменные окружения.
// Пустой путь означает конфигурацию без файла.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad как Load, но паникует при ошибке
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("WHEEL_ENV"); v != "" {
		cfg.Env = v
	}
}

// Validate проверяет значения
func (c *Config) Validate() error {
	if _, err := gamble.NewWheel(c.Outcomes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Outcomes) > MaxOutcomes {
		return fmt.Errorf("%w: at most %d outcomes", ErrInvalid, MaxOutcomes)
	}
	if !validLabelFormat(c.LabelFormat) {
		return fmt.Errorf("%w: label_format %q needs exactly one %%d", ErrInvalid, c.LabelFormat)
	}
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: at least one phrase is required", ErrInvalid)
	}
	if c.Spin.Duration <= 0 {
		return fmt.Errorf("%w: spin duration must be positive", ErrInvalid)
	}
	if c.Spin.MinTurns < 1 || c.Spin.MaxTurns < c.Spin.MinTurns {
		return fmt.Errorf("%w: turns range %d..%d", ErrInvalid, c.Spin.MinTurns, c.Spin.MaxTurns)
	}
	if c.Render.Size < 64 || c.Render.FPS <= 0 {
		return fmt.Errorf("%w: render size %d fps %d", ErrInvalid, c.Render.Size, c.Render.FPS)
	}
	return nil
}

// validLabelFormat допускает ровно один глагол %d, кроме экранированных %%
func validLabelFormat(format string) bool {
	rest := strings.ReplaceAll(format, "%%", "")
	return strings.Count(rest, "%") == 1 && strings.Count(rest, "%d") == 1
}
