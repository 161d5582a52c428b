package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"solune-backend/utils"
)

// Config is the runtime configuration, read from the environment and an
// optional .env file.
type Config struct {
	Port         string        `mapstructure:"port"`
	DBURL        string        `mapstructure:"db_url"`
	Env          string        `mapstructure:"app_env"`
	LogLevel     string        `mapstructure:"log_level"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiry    int           `mapstructure:"jwt_expiry_hours"`
	CORSOrigins  string        `mapstructure:"cors_origins"`
	Timezone     string        `mapstructure:"timezone"`
	LowStock     int           `mapstructure:"low_stock_threshold"`
	NonDiscount  string        `mapstructure:"non_discountable_groups"`
	MessageDelay time.Duration `mapstructure:"message_delay"`
	RefreshCron  string        `mapstructure:"refresh_schedule"`
	DailyCron    string        `mapstructure:"daily_report_schedule"`
	Twilio       TwilioConfig  `mapstructure:"-"`

	location *time.Location
}

type TwilioConfig struct {
	AccountSID     string `mapstructure:"twilio_account_sid"`
	AuthToken      string `mapstructure:"twilio_auth_token"`
	PhoneNumber    string `mapstructure:"twilio_phone_number"`
	WhatsAppNumber string `mapstructure:"twilio_whatsapp_number"`
}

// Configured reports whether outbound messaging credentials are present.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && (t.PhoneNumber != "" || t.WhatsAppNumber != "")
}

var defaults = map[string]interface{}{
	"port":                    "8080",
	"db_url":                  "",
	"app_env":                 "development",
	"log_level":               "info",
	"jwt_secret":              "",
	"jwt_expiry_hours":        24,
	"cors_origins":            "http://localhost:3000",
	"timezone":                "Asia/Kolkata",
	"low_stock_threshold":     5,
	"non_discountable_groups": "nails,threading",
	"message_delay":           time.Second,
	"refresh_schedule":        "@every 5m",
	"daily_report_schedule":   "0 21 * * *",
	"twilio_account_sid":      "",
	"twilio_auth_token":       "",
	"twilio_phone_number":     "",
	"twilio_whatsapp_number":  "",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return FromViper(viper.New())
}

// FromViper resolves the configuration from v, binding every key to its
// upper-case environment variable.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Twilio = TwilioConfig{
		AccountSID:     v.GetString("twilio_account_sid"),
		AuthToken:      v.GetString("twilio_auth_token"),
		PhoneNumber:    v.GetString("twilio_phone_number"),
		WhatsAppNumber: v.GetString("twilio_whatsapp_number"),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc
	if cfg.LowStock < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative")
	}
	return &cfg, nil
}

// Location is the salon's local time zone; "today" is evaluated here.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Now is the current instant in the salon's time zone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location())
}

func (c *Config) Origins() []string {
	return splitList(c.CORSOrigins)
}

func (c *Config) NonDiscountableGroups() []string {
	return splitList(c.NonDiscount)
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// EnsureJWTSecret fills an empty JWT_SECRET with a random key outside
// production and reports whether it did. Tokens signed with a generated key
// stop validating when the process exits.
func (c *Config) EnsureJWTSecret() (bool, error) {
	if c.JWTSecret != "" {
		return false, nil
	}
	if c.Production() {
		return false, errors.New("JWT_SECRET is required in production")
	}
	c.JWTSecret = utils.GenerateJWTSecret()
	return true, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
