package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AnswerModeEcho  = "echo"
	AnswerModeToken = "token"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Quiz     Quiz
	Media    Media
	Log      Log
	Lang     string
}

type Server struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
}

type Database struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	Path        string
	AutoMigrate bool
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type Auth struct {
	JWTSecret string
	Issuer    string
}

type Quiz struct {
	AnswerMode  string
	TokenSecret string
	TokenTTL    time.Duration
	RandomSeed  uint64
}

type Media struct {
	BaseURL string
}

type Log struct {
	Level  string
	Pretty bool
}

// SetDefaults registers fallback values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_PATH", "vocabtest.db")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("QUIZ_ANSWER_MODE", AnswerModeEcho)
	v.SetDefault("QUIZ_TOKEN_TTL", 30*time.Minute)
	v.SetDefault("QUIZ_RANDOM_SEED", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("APP_LANG", "en")
}

// NewViper reads .env from the working directory and overlays the process environment.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}
	return v
}

// Load builds a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")
	config.Server.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.Path = v.GetString("DATABASE_PATH")
	config.Database.AutoMigrate = v.GetBool("DATABASE_AUTO_MIGRATE")

	config.Auth.JWTSecret = v.GetString("AUTH_JWT_SECRET")
	config.Auth.Issuer = v.GetString("AUTH_ISSUER")

	config.Quiz.AnswerMode = strings.ToLower(v.GetString("QUIZ_ANSWER_MODE"))
	config.Quiz.TokenSecret = v.GetString("QUIZ_TOKEN_SECRET")
	if config.Quiz.TokenSecret == "" {
		config.Quiz.TokenSecret = config.Auth.JWTSecret
	}
	config.Quiz.TokenTTL = v.GetDuration("QUIZ_TOKEN_TTL")
	config.Quiz.RandomSeed = v.GetUint64("QUIZ_RANDOM_SEED")

	config.Media.BaseURL = v.GetString("MEDIA_BASE_URL")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Pretty = v.GetBool("LOG_PRETTY")
	config.Lang = v.GetString("APP_LANG")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("answer_mode", config.Quiz.AnswerMode).
		Str("lang", config.Lang).
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}
	switch c.Quiz.AnswerMode {
	case AnswerModeEcho, AnswerModeToken:
	default:
		errs = append(errs, fmt.Errorf("unsupported QUIZ_ANSWER_MODE %q", c.Quiz.AnswerMode))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if c.Quiz.AnswerMode == AnswerModeToken && c.Quiz.TokenTTL <= 0 {
		errs = append(errs, errors.New("QUIZ_TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
