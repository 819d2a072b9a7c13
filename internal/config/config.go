// Package config loads sprintdesk settings from defaults, a YAML file, a
// .env file and SPRINTDESK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/db"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable that points at the YAML file.
const EnvConfigFile = "SPRINTDESK_CONFIG"

var defaultPaths = []string{"etc/sprintdesk.yaml", "/etc/sprintdesk/config.yaml"}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Timezone string         `yaml:"timezone"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	JWTSecret   string   `yaml:"jwt_secret"`
	CORSOrigins []string `yaml:"cors_origins"`
	PushBuffer  int      `yaml:"push_buffer"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// JobsConfig holds the cron expression of each scheduled sweep.
type JobsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	DeadlineScan    string `yaml:"deadline_scan"`
	SprintRollover  string `yaml:"sprint_rollover"`
	WeeklyAutoClose string `yaml:"weekly_auto_close"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "data/sprintdesk.db"},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			PushBuffer:  32,
		},
		Log: LogConfig{Level: "info", Format: "json", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Jobs: JobsConfig{
			Enabled:         true,
			DeadlineScan:    "*/1 * * * *",
			SprintRollover:  "0 3 * * *",
			WeeklyAutoClose: "*/1 * * * *",
		},
		Timezone: "Local",
	}
}

// Load builds the configuration. An explicit path must exist; the default
// locations are optional.
func Load(path string) (*Config, error) {
	// Variables already in the environment win over .env.
	_ = godotenv.Load()

	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := c.readFile(path); err != nil {
			return nil, err
		}
	} else {
		for _, p := range defaultPaths {
			err := c.readFile(p)
			if err == nil {
				break
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	envOverride(&c.Database.Driver, "SPRINTDESK_DB_DRIVER")
	envOverride(&c.Database.DSN, "SPRINTDESK_DB_DSN")
	envOverride(&c.HTTP.Addr, "SPRINTDESK_HTTP_ADDR")
	envOverride(&c.HTTP.JWTSecret, "SPRINTDESK_JWT_SECRET")
	envOverride(&c.Log.Level, "SPRINTDESK_LOG_LEVEL")
	envOverride(&c.Log.Format, "SPRINTDESK_LOG_FORMAT")
	envOverride(&c.Log.File, "SPRINTDESK_LOG_FILE")
	envOverride(&c.Timezone, "SPRINTDESK_TIMEZONE")
	envOverride(&c.Jobs.DeadlineScan, "SPRINTDESK_CRON_DEADLINES")
	envOverride(&c.Jobs.SprintRollover, "SPRINTDESK_CRON_ROLLOVER")
	envOverride(&c.Jobs.WeeklyAutoClose, "SPRINTDESK_CRON_WEEKLY")
	envOverrideBool(&c.Jobs.Enabled, "SPRINTDESK_JOBS_ENABLED")
	envOverrideInt(&c.HTTP.PushBuffer, "SPRINTDESK_PUSH_BUFFER")
	if v := os.Getenv("SPRINTDESK_CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = splitList(v)
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := db.DialectFor(c.Database.Driver); err != nil {
		return err
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for name, spec := range map[string]string{
		"deadline_scan":     c.Jobs.DeadlineScan,
		"sprint_rollover":   c.Jobs.SprintRollover,
		"weekly_auto_close": c.Jobs.WeeklyAutoClose,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("jobs.%s: %w", name, err)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.Log.Format)
	}
	if c.HTTP.PushBuffer < 1 {
		return fmt.Errorf("http push_buffer must be positive")
	}
	return nil
}

// Location resolves Timezone; schedules and "today" are computed in it.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Dialect is the store dialect for Database.Driver.
func (c *Config) Dialect() db.Dialect {
	d, err := db.DialectFor(c.Database.Driver)
	if err != nil {
		return db.DialectSQLite
	}
	return d
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
