package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL           string `yaml:"ttl"`
	MaxAttempts   int    `yaml:"max_attempts"`
	SweepInterval string `yaml:"sweep_interval"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTPTTL           time.Duration
	OTPMaxAttempts   int
	OTPSweepInterval time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if configFile.App.Port <= 0 || configFile.App.Port > 65535 {
		return nil, fmt.Errorf("invalid app port: %d", configFile.App.Port)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	// Access tokens must be much shorter lived than refresh tokens.
	if accTTL*10 > refTTL {
		return nil, fmt.Errorf("jwt access TTL %s too close to refresh TTL %s", accTTL, refTTL)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	sweepEvery, err := time.ParseDuration(configFile.OTP.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP sweep interval: %w", err)
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		JWTSecret:        env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		OTPTTL:           otpTTL,
		OTPMaxAttempts:   configFile.OTP.MaxAttempts,
		OTPSweepInterval: sweepEvery,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
