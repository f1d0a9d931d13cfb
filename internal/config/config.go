package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Email     EmailConfig     `mapstructure:"email"`
	Audit     AuditConfig     `mapstructure:"audit"`
}

type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
	MaxAgeHours  int      `mapstructure:"max_age_hours"`
}

type ScheduleConfig struct {
	Timezone     string `mapstructure:"timezone"`
	WeekStart    string `mapstructure:"week_start"`
	DayStartHour int    `mapstructure:"day_start_hour"`
	DayEndHour   int    `mapstructure:"day_end_hour"`
	SlotMinutes  int    `mapstructure:"slot_minutes"`
}

type CacheConfig struct {
	ViewTTLSeconds int `mapstructure:"view_ttl_seconds"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

// EmailConfig seeds the email settings shown on the settings page.
type EmailConfig struct {
	Address    string `mapstructure:"address"`
	Password   string `mapstructure:"password"`
	SMTPServer string `mapstructure:"smtp_server"`
	SMTPPort   string `mapstructure:"smtp_port"`
}

type AuditConfig struct {
	RetentionHours         int `mapstructure:"retention_hours"`
	CleanupIntervalMinutes int `mapstructure:"cleanup_interval_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.shutdown_seconds", 5)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_second", 50)
	v.SetDefault("ratelimit.burst", 100)

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.max_age_hours", 12)

	v.SetDefault("schedule.timezone", "Local")
	v.SetDefault("schedule.week_start", "sunday")
	v.SetDefault("schedule.day_start_hour", 8)
	v.SetDefault("schedule.day_end_hour", 18)
	v.SetDefault("schedule.slot_minutes", 30)

	v.SetDefault("cache.view_ttl_seconds", 60)
	v.SetDefault("metrics.namespace", "clinic")

	v.SetDefault("email.smtp_port", "587")

	v.SetDefault("audit.retention_hours", 720)
	v.SetDefault("audit.cleanup_interval_minutes", 60)
}

// LoadConfig reads config.yml from path (or . and ./config when empty).
// A missing file is not an error; CLINIC_* environment variables override
// file values, e.g. CLINIC_SERVER_PORT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("clinic")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if _, err := c.Schedule.Weekday(); err != nil {
		return err
	}
	s := c.Schedule
	if s.DayStartHour < 0 || s.DayEndHour > 23 || s.DayStartHour > s.DayEndHour {
		return fmt.Errorf("schedule hours %d-%d are invalid", s.DayStartHour, s.DayEndHour)
	}
	if s.SlotMinutes <= 0 {
		return fmt.Errorf("schedule.slot_minutes must be positive")
	}
	if c.Audit.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("audit.cleanup_interval_minutes must be positive")
	}
	return nil
}

func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule.timezone: %w", err)
	}
	return loc, nil
}

func (s ScheduleConfig) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s.WeekStart) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("schedule.week_start %q is not a weekday", s.WeekStart)
}

func (c CacheConfig) ViewTTL() time.Duration {
	return time.Duration(c.ViewTTLSeconds) * time.Second
}

func (a AuditConfig) Retention() time.Duration {
	return time.Duration(a.RetentionHours) * time.Hour
}

func (a AuditConfig) CleanupInterval() time.Duration {
	return time.Duration(a.CleanupIntervalMinutes) * time.Minute
}

func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
