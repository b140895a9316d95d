// Package config loads the service configuration from a TOML file.
// Components never read environment variables directly: the calendar and
// notification adapters receive their sections at construction time.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// Config is the full service configuration
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Business       BusinessConfig       `toml:"business"`
	Dispatch       DispatchConfig       `toml:"dispatch"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Notifications  NotificationsConfig  `toml:"notifications"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig PostgreSQL connection settings
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

// DSN builds the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig logger settings
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig Prometheus settings
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig fixed booking policy: one operating window, one timezone
type BusinessConfig struct {
	Name               string `toml:"name"`
	Address            string `toml:"address"`
	FrontendURL        string `toml:"frontend_url"`
	OpenTime           string `toml:"open_time"`
	CloseTime          string `toml:"close_time"`
	GranularityMinutes int    `toml:"granularity_minutes"`
	Timezone           string `toml:"timezone"`
}

// DispatchConfig worker pool settings for the side-effect pipeline
type DispatchConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

// GoogleCalendarConfig calendar sync adapter settings
type GoogleCalendarConfig struct {
	Enabled     bool   `toml:"enabled"`
	BaseURL     string `toml:"base_url"`
	AccessToken string `toml:"access_token"`
	Timeout     int    `toml:"timeout"`
}

// NotificationsConfig notification dispatcher settings
type NotificationsConfig struct {
	AdminEmail     string `toml:"admin_email"`
	FromEmail      string `toml:"from_email"`
	SMTPHost       string `toml:"smtp_host"`
	SMTPPort       int    `toml:"smtp_port"`
	WebhookURL     string `toml:"webhook_url"`
	WebhookToken   string `toml:"webhook_token"`
	WebhookTimeout int    `toml:"webhook_timeout"`
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointment-service"
	}
	if c.Business.OpenTime == "" {
		c.Business.OpenTime = domain.DefaultOpenTime
	}
	if c.Business.CloseTime == "" {
		c.Business.CloseTime = domain.DefaultCloseTime
	}
	if c.Business.GranularityMinutes == 0 {
		c.Business.GranularityMinutes = domain.DefaultGranularityMinutes
	}
	if c.Business.Timezone == "" {
		c.Business.Timezone = domain.DefaultTimezone
	}
	if c.Dispatch.Workers == 0 {
		c.Dispatch.Workers = 4
	}
	if c.Dispatch.QueueSize == 0 {
		c.Dispatch.QueueSize = 256
	}
	if c.GoogleCalendar.BaseURL == "" {
		c.GoogleCalendar.BaseURL = "https://www.googleapis.com/calendar/v3"
	}
	if c.GoogleCalendar.Timeout == 0 {
		c.GoogleCalendar.Timeout = 15
	}
	if c.Notifications.SMTPPort == 0 {
		c.Notifications.SMTPPort = 25
	}
	if c.Notifications.WebhookTimeout == 0 {
		c.Notifications.WebhookTimeout = 10
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.Business.GranularityMinutes < domain.MinGranularityMinutes ||
		c.Business.GranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("config: business.granularity_minutes must be between %d and %d",
			domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}
	if c.Business.OpenTime >= c.Business.CloseTime {
		return fmt.Errorf("config: business.open_time must be before business.close_time")
	}
	return nil
}
