package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	defaultPort = "8080"
)

// Config es la configuración de la app. Se carga de config.yaml (opcional) y del
// entorno; el entorno gana.
type Config struct {
	Addr     string `mapstructure:"addr"`
	Port     string `mapstructure:"port"`
	AppName  string `mapstructure:"app_name"`
	Timezone string `mapstructure:"timezone"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`

	Supabase struct {
		URL     string `mapstructure:"url"`
		AnonKey string `mapstructure:"anon_key"`
	} `mapstructure:"supabase"`

	Store struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"store"`
}

// envBindings: clave de config => variables de entorno.
var envBindings = map[string][]string{
	"port":              {"PORT"},
	"app_name":          {"APP_NAME"},
	"timezone":          {"APP_TIMEZONE"},
	"log.level":         {"LOG_LEVEL"},
	"log.format":        {"LOG_FORMAT"},
	"db.dsn":            {"DB_DSN"},
	"supabase.url":      {"SUPABASE_URL"},
	"supabase.anon_key": {"SUPABASE_ANON_KEY", "SUPABASE_KEY"},
	"store.timeout":     {"STORE_TIMEOUT"},
}

// New arma una instancia de viper con defaults y entorno. cmd/api le bindea flags
// antes de llamar a Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("app_name", "cattle-health-records")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("store.timeout", 10*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		_ = v.BindEnv(args...)
	}
	return v
}

// Load lee config.yaml si existe y devuelve la Config resuelta.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	cfg.Supabase.AnonKey = strings.TrimSpace(cfg.Supabase.AnonKey)
	cfg.DB.DSN = strings.TrimSpace(cfg.DB.DSN)

	if strings.TrimSpace(cfg.Addr) == "" {
		port := strings.TrimSpace(cfg.Port)
		if port == "" {
			port = defaultPort
		}
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// Backend elige el store: Supabase si hay url+key, si no Postgres con DSN,
// si no memoria.
func (c Config) Backend() string {
	switch {
	case c.Supabase.URL != "" && c.Supabase.AnonKey != "":
		return BackendSupabase
	case c.DB.DSN != "":
		return BackendPostgres
	default:
		return BackendMemory
	}
}

// Location para mostrar fechas; vacío => time.Local.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", tz, err)
	}
	return loc, nil
}
