package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	AuthService ServiceEndpoint   `toml:"auth_service"`
	MailService MailServiceConfig `toml:"mail_service"`
	Booking     BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
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
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceEndpoint настройки внешнего HTTP сервиса
type ServiceEndpoint struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// MailServiceConfig настройки сервиса отправки почты
type MailServiceConfig struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	AdminEmail string `toml:"admin_email"`
}

// BookingConfig лимиты создания бронирований.
// Нулевые значения заменяются дефолтами из domain.
type BookingConfig struct {
	MaxActiveBookings int `toml:"max_active_bookings"`
	CooldownSeconds   int `toml:"cooldown_seconds"`
}

// Cooldown возвращает минимальный интервал между бронированиями
func (b *BookingConfig) Cooldown() time.Duration {
	if b.CooldownSeconds <= 0 {
		return domain.DefaultBookingCooldown
	}
	return time.Duration(b.CooldownSeconds) * time.Second
}

// ActiveLimit возвращает максимум активных бронирований на пользователя
func (b *BookingConfig) ActiveLimit() int {
	if b.MaxActiveBookings <= 0 {
		return domain.DefaultMaxActiveBookings
	}
	return b.MaxActiveBookings
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "therapy-service"
	}

	return &cfg, nil
}
