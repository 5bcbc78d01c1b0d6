package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthModeDev    = "dev"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

type Config struct {
	HTTP    HTTP    `mapstructure:"http" yaml:"http" json:"http"`
	Log     Log     `mapstructure:"log" yaml:"log" json:"log"`
	Storage Storage `mapstructure:"storage" yaml:"storage" json:"storage"`
	Auth    Auth    `mapstructure:"auth" yaml:"auth" json:"auth"`
}

type HTTP struct {
	Port         int           `mapstructure:"port" yaml:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
}

type Log struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	App    string `mapstructure:"app" yaml:"app" json:"app"`
}

type Storage struct {
	// Driver: memory | postgres | sqlite
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn" json:"-"`
}

type Auth struct {
	// Mode: dev (header X-Debug-User-ID) | jwt | remote
	Mode       string `mapstructure:"mode" yaml:"mode" json:"mode"`
	SignInPath string `mapstructure:"sign_in_path" yaml:"sign_in_path" json:"sign_in_path"`

	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret" json:"-"`
	JWTIssuer string `mapstructure:"jwt_issuer" yaml:"jwt_issuer" json:"jwt_issuer"`

	RemoteURL     string        `mapstructure:"remote_url" yaml:"remote_url" json:"remote_url"`
	RemoteAPIKey  string        `mapstructure:"remote_api_key" yaml:"remote_api_key" json:"-"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout" yaml:"remote_timeout" json:"remote_timeout"`
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// envBindings mantiene los nombres de env que ya usaba el servicio (PORT, DB_DSN, LOG_*).
var envBindings = map[string]string{
	"http.port":           "PORT",
	"log.level":           "LOG_LEVEL",
	"log.format":          "LOG_FORMAT",
	"log.app":             "APP_NAME",
	"storage.driver":      "DB_DRIVER",
	"storage.dsn":         "DB_DSN",
	"auth.mode":           "AUTH_MODE",
	"auth.sign_in_path":   "AUTH_SIGN_IN_PATH",
	"auth.jwt_secret":     "AUTH_JWT_SECRET",
	"auth.jwt_issuer":     "AUTH_JWT_ISSUER",
	"auth.remote_url":     "AUTH_REMOTE_URL",
	"auth.remote_api_key": "AUTH_REMOTE_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "pet-notes")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("auth.mode", AuthModeDev)
	v.SetDefault("auth.sign_in_path", "/users/sign_in")
	v.SetDefault("auth.remote_timeout", 5*time.Second)
}

// Load arma la config en este orden de prioridad:
// flags > env > archivo (--config) > defaults.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("pet-notes", pflag.ContinueOnError)
	configFile := fs.String("config", "", "ruta a archivo de configuración (yaml)")
	fs.Int("port", 0, "puerto HTTP")
	fs.String("db-driver", "", "memory | postgres | sqlite")
	fs.String("db-dsn", "", "DSN de la base de datos")
	fs.String("auth-mode", "", "dev | jwt | remote")
	fs.String("log-level", "", "debug | info | warn | error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	flagBindings := map[string]string{
		"http.port":      "port",
		"storage.driver": "db-driver",
		"storage.dsn":    "db-dsn",
		"auth.mode":      "auth-mode",
		"log.level":      "log-level",
	}
	for key, name := range flagBindings {
		// Solo flags explícitos: si no, el zero-value del flag pisaría env/defaults.
		if f := fs.Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, err
			}
		}
	}

	if path := strings.TrimSpace(*configFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	c.Auth.SignInPath = strings.TrimSpace(c.Auth.SignInPath)

	// Compat: si solo viene DB_DSN (como antes), se asume postgres.
	if c.Storage.Driver == DriverMemory && strings.TrimSpace(c.Storage.DSN) != "" {
		c.Storage.Driver = DriverPostgres
	}
}

func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http.port %d out of range", ErrInvalidConfig, c.HTTP.Port)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%w: storage.dsn required for driver %s", ErrInvalidConfig, c.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Auth.Mode {
	case AuthModeDev:
	case AuthModeJWT:
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return fmt.Errorf("%w: auth.jwt_secret required for jwt mode", ErrInvalidConfig)
		}
	case AuthModeRemote:
		if strings.TrimSpace(c.Auth.RemoteURL) == "" || strings.TrimSpace(c.Auth.RemoteAPIKey) == "" {
			return fmt.Errorf("%w: auth.remote_url and auth.remote_api_key required for remote mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown auth.mode %q", ErrInvalidConfig, c.Auth.Mode)
	}

	if !strings.HasPrefix(c.Auth.SignInPath, "/") {
		return fmt.Errorf("%w: auth.sign_in_path must start with /", ErrInvalidConfig)
	}
	return nil
}
