package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/salonhq/scheduling-service/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Notifier   NotifierConfig   `toml:"notifier"`
}

// ServerConfig настройки HTTP сервера (значения таймаутов в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// SchedulingConfig параметры движка расписания
type SchedulingConfig struct {
	// Шаг генерации слотов в минутах
	SlotStepMinutes int `toml:"slot_step_minutes"`

	// Длительность услуги по умолчанию, если не передана в запросе
	DefaultDurationMinutes int `toml:"default_duration_minutes"`

	// Рабочий интервал по умолчанию для мастеров без настроенного расписания
	// и для услуг без мастера. Обе строки пустые - значение не задано, и такие
	// мастера считаются нерабочими (валидный исход, не ошибка).
	DefaultOpenTime  string `toml:"default_open_time"`  // "09:00"
	DefaultCloseTime string `toml:"default_close_time"` // "18:00"

	// Таймаут на выполнение бронирующей транзакции в секундах;
	// по истечении вызывающий получает Busy и может повторить
	ScheduleTimeout int `toml:"schedule_timeout"`
}

// NotifierConfig настройки клиента сервиса уведомлений
type NotifierConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Load читает конфигурацию из TOML файла и применяет дефолты
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "scheduling-service",
			Path:        "/metrics",
		},
		Scheduling: SchedulingConfig{
			SlotStepMinutes:        domain.DefaultSlotStepMinutes,
			DefaultDurationMinutes: domain.DefaultServiceDurationMinutes,
			ScheduleTimeout:        5,
		},
		Notifier: NotifierConfig{
			Timeout: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Scheduling.SlotStepMinutes <= 0 {
		return fmt.Errorf("config: scheduling.slot_step_minutes must be positive")
	}
	if c.Scheduling.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("config: scheduling.default_duration_minutes must be positive")
	}
	// Дефолтный рабочий интервал задается либо целиком, либо никак
	if (c.Scheduling.DefaultOpenTime == "") != (c.Scheduling.DefaultCloseTime == "") {
		return fmt.Errorf("config: scheduling.default_open_time and default_close_time must be set together")
	}
	if c.Notifier.Enabled && c.Notifier.URL == "" {
		return fmt.Errorf("config: notifier.url is required when notifier is enabled")
	}
	return nil
}
