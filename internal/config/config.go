package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DefaultWeekStartRule makes every schedule week start on a Sunday
const DefaultWeekStartRule = "FREQ=WEEKLY;BYDAY=SU"

// DefaultAPIAddr is used by the serve command when api.addr is not set
const DefaultAPIAddr = ":8080"

// Workplace is one independently scheduled location. Its roster and operating
// hours live in tabs of the worker sheet.
type Workplace struct {
	Name               string   `yaml:"name" validate:"required"`
	WorkersTab         string   `yaml:"workersTab" validate:"required"`
	HoursTab           string   `yaml:"hoursTab" validate:"required"`
	MaxHoursPerWorker  float64  `yaml:"maxHoursPerWorker,omitempty" validate:"omitempty,gt=0"`
	MaxWorkersPerShift int      `yaml:"maxWorkersPerShift,omitempty" validate:"omitempty,min=1"`
	MinHoursPerWorker  *float64 `yaml:"minHoursPerWorker,omitempty" validate:"omitempty,min=0"`
}

// APIConfig configures the HTTP server
type APIConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config represents the application configuration
type Config struct {
	WorkerSheetID   string      `yaml:"workerSheetID" validate:"required"`
	ScheduleSheetID string      `yaml:"scheduleSheetID" validate:"required"`
	Workplaces      []Workplace `yaml:"workplaces" validate:"required,min=1,unique=Name,dive"`
	WeekStartRule   string      `yaml:"weekStartRule,omitempty"`
	DatabaseURL     string      `yaml:"databaseURL,omitempty" validate:"omitempty,url"`
	GmailSender     string      `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	Recipients      []string    `yaml:"recipients,omitempty" validate:"omitempty,dive,email"`
	API             APIConfig   `yaml:"api,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates schedule_config.<env>.yaml, or
// schedule_config.yaml when env is empty.
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WeekStartRule != "" {
		if _, err := rrule.StrToRRule(cfg.WeekStartRule); err != nil {
			return fmt.Errorf("invalid rrule in weekStartRule: %w", err)
		}
	}

	return nil
}

// Workplace returns the workplace with the given name
func (c *Config) Workplace(name string) (*Workplace, bool) {
	for i := range c.Workplaces {
		if c.Workplaces[i].Name == name {
			return &c.Workplaces[i], true
		}
	}
	return nil, false
}

// APIAddr returns the configured listen address or DefaultAPIAddr
func (c *Config) APIAddr() string {
	if c.API.Addr == "" {
		return DefaultAPIAddr
	}
	return c.API.Addr
}

// WeekStart returns the first occurrence of the week start rule on or after
// the day containing from
func (c *Config) WeekStart(from time.Time) (time.Time, error) {
	ruleStr := c.WeekStartRule
	if ruleStr == "" {
		ruleStr = DefaultWeekStartRule
	}

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse weekStartRule: %w", err)
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rule.DTStart(day)

	next := rule.After(day, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("weekStartRule %q has no occurrence after %s", ruleStr, day.Format("2006-01-02"))
	}
	return next, nil
}

// findConfigFile returns the path of schedule_config.yaml, or
// schedule_config.<env>.yaml when env is set
func findConfigFile(env string) (string, error) {
	return locateFile(envFileName("schedule_config", env, "yaml"))
}
