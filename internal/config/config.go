package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for both the API server and the
// scheduled-jobs runner. Values come from environment variables with the
// defaults below.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Restock  RestockConfig
	Jobs     JobsConfig
	Log      LogConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver          string // "sqlite" or "postgres"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RabbitMQConfig struct {
	URL string // empty disables event publishing
}

type AuthConfig struct {
	JWTSecret string
	Required  bool // when true, mutation routes require a bearer token
}

// RestockConfig parameterizes updateLowStockProducts. The defaults match
// the original behavior: restock anything below 10 by adding 10.
type RestockConfig struct {
	Threshold int
	Increment int
}

type JobsConfig struct {
	APIBaseURL        string
	Retries           int
	HeartbeatLog      string
	HeartbeatInterval time.Duration
	RemindersLog      string
	RemindersInterval time.Duration
	ReminderWindow    time.Duration
	ReportLog         string
	ReportInterval    time.Duration
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "crm.db")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("AUTH_REQUIRED", false)
	viper.SetDefault("RESTOCK_THRESHOLD", 10)
	viper.SetDefault("RESTOCK_INCREMENT", 10)
	viper.SetDefault("CRM_API_URL", "http://localhost:8080")
	viper.SetDefault("CRM_JOB_RETRIES", 3)
	viper.SetDefault("CRM_HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("CRM_HEARTBEAT_INTERVAL", "5m")
	viper.SetDefault("CRM_REMINDERS_LOG", "/tmp/order_reminders_log.txt")
	viper.SetDefault("CRM_REMINDERS_INTERVAL", "24h")
	viper.SetDefault("CRM_REMINDER_WINDOW", "168h")
	viper.SetDefault("CRM_REPORT_LOG", "/tmp/crm_report_log.txt")
	viper.SetDefault("CRM_REPORT_INTERVAL", "168h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Driver:          viper.GetString("DB_DRIVER"),
			DSN:             viper.GetString("DB_DSN"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		RabbitMQ: RabbitMQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			Required:  viper.GetBool("AUTH_REQUIRED"),
		},
		Restock: RestockConfig{
			Threshold: viper.GetInt("RESTOCK_THRESHOLD"),
			Increment: viper.GetInt("RESTOCK_INCREMENT"),
		},
		Jobs: JobsConfig{
			APIBaseURL:        viper.GetString("CRM_API_URL"),
			Retries:           viper.GetInt("CRM_JOB_RETRIES"),
			HeartbeatLog:      viper.GetString("CRM_HEARTBEAT_LOG"),
			HeartbeatInterval: viper.GetDuration("CRM_HEARTBEAT_INTERVAL"),
			RemindersLog:      viper.GetString("CRM_REMINDERS_LOG"),
			RemindersInterval: viper.GetDuration("CRM_REMINDERS_INTERVAL"),
			ReminderWindow:    viper.GetDuration("CRM_REMINDER_WINDOW"),
			ReportLog:         viper.GetString("CRM_REPORT_LOG"),
			ReportInterval:    viper.GetDuration("CRM_REPORT_INTERVAL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
