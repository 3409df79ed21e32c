package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "sprintcap.yaml"

// Defaults applied on load for missing or malformed values.
const (
	DefaultSprintStartDate = "2025-12-16"
	DefaultDurationDays    = 14
	DefaultHoursPerDay     = 6
	DefaultOnCallReduction = 3
	DefaultExcelFilePath   = "CapacityUpdate.xlsx"
	DefaultReferenceDate   = "2025-12-31"
)

// EmailSettings holds SMTP delivery settings. Credentials are normally
// supplied through the environment rather than the config file.
type EmailSettings struct {
	SMTPServer       string `yaml:"smtpServer"`
	SMTPPort         int    `yaml:"smtpPort"`
	SenderEmail      string `yaml:"senderEmail,omitempty"`
	SenderPassword   string `yaml:"senderPassword,omitempty"`
	ScrumMasterEmail string `yaml:"scrumMasterEmail,omitempty"`
}

// Config represents the application configuration
type Config struct {
	SprintStartDate             string        `yaml:"sprintStartDate" validate:"required,datetime=2006-01-02"`
	SprintDurationDays          int           `yaml:"sprintDurationDays"`
	HoursPerDay                 float64       `yaml:"hoursPerDay"`
	OnCallPrimaryHoursReduction float64       `yaml:"oncallPrimaryHoursReduction"`
	ExcelFilePath               string        `yaml:"excelFilePath" validate:"required"`
	ExcelSheetName              string        `yaml:"excelSheetName,omitempty"`
	ReportReferenceDate         string        `yaml:"reportReferenceDate,omitempty"`
	Email                       EmailSettings `yaml:"email"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SprintStartDate:             DefaultSprintStartDate,
		SprintDurationDays:          DefaultDurationDays,
		HoursPerDay:                 DefaultHoursPerDay,
		OnCallPrimaryHoursReduction: DefaultOnCallReduction,
		ExcelFilePath:               DefaultExcelFilePath,
		ReportReferenceDate:         DefaultReferenceDate,
		Email: EmailSettings{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
	}
}

// Load loads the configuration, searching the working directory and then the
// home directory for sprintcap.yaml. When no file exists a default one is
// written and the defaults are returned. Environment variables overlay the
// SMTP settings in either case.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		cfg := Default()
		applyEnv(cfg)
		if writeErr := Write(cfg, configFileName); writeErr != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", writeErr)
		}
		return cfg, nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Out-of-range numeric values fall back to their defaults instead of failing.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.normalize()
	applyEnv(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Write saves the configuration as YAML.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SprintAnchor returns the configured first sprint start date.
func (c *Config) SprintAnchor() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.SprintStartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid sprint start date %q: %w", c.SprintStartDate, err)
	}
	return t, nil
}

// ReferenceDate returns the reference date used to number sprints in
// reports, falling back to the default when unset or malformed.
func (c *Config) ReferenceDate() time.Time {
	t, err := time.Parse("2006-01-02", c.ReportReferenceDate)
	if err != nil {
		t, _ = time.Parse("2006-01-02", DefaultReferenceDate)
	}
	return t
}

// normalize replaces malformed numeric values with defaults. The analysis
// should run with sensible numbers rather than fail on a bad config edit.
func (c *Config) normalize() {
	if c.SprintDurationDays < 1 {
		c.SprintDurationDays = DefaultDurationDays
	}
	if c.HoursPerDay <= 0 {
		c.HoursPerDay = DefaultHoursPerDay
	}
	if c.OnCallPrimaryHoursReduction < 0 || c.OnCallPrimaryHoursReduction > c.HoursPerDay {
		c.OnCallPrimaryHoursReduction = DefaultOnCallReduction
	}
	if c.ExcelFilePath == "" {
		c.ExcelFilePath = DefaultExcelFilePath
	}
	if c.SprintStartDate == "" {
		c.SprintStartDate = DefaultSprintStartDate
	}
}

// applyEnv overlays SMTP settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Email.SMTPServer = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SMTP_SENDER_EMAIL"); v != "" {
		cfg.Email.SenderEmail = v
	}
	if v := os.Getenv("SMTP_SENDER_PASSWORD"); v != "" {
		cfg.Email.SenderPassword = v
	}
	if v := os.Getenv("SCRUM_MASTER_EMAIL"); v != "" {
		cfg.Email.ScrumMasterEmail = v
	}
}

// findConfigFile searches for sprintcap.yaml in the current directory and
// the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
