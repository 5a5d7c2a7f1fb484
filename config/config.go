package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultHospitalURLs is used when neither HOSPITAL_DIRECTORY_FILE nor
// HOSPITAL_URLS is configured.
var DefaultHospitalURLs = map[string]string{
	"hospa": "https://quickcare-hospa-production.up.railway.app",
	"hospb": "https://quickcare-hospb-production.up.railway.app",
}

type Config struct {
	App      AppConfig
	Log      LogConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	Hospital HospitalConfig
	Google   GoogleConfig
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
}

type HospitalConfig struct {
	URLs          map[string]string
	DirectoryFile string
	ReadTimeout   time.Duration
	PayTimeout    time.Duration
}

type GoogleConfig struct {
	ClientID     string
	TokenInfoURL string
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine, the environment alone can carry the config.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_ALLOWED_ORIGIN", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("GOOGLE_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo")

	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	env := viper.GetString("APP_ENV")
	cookieSecure := strings.EqualFold(env, "production")
	if viper.IsSet("SESSION_COOKIE_SECURE") {
		cookieSecure = viper.GetBool("SESSION_COOKIE_SECURE")
	}

	hospitalURLs := viper.GetStringMapString("HOSPITAL_URLS")
	if len(hospitalURLs) == 0 {
		hospitalURLs = make(map[string]string, len(DefaultHospitalURLs))
		for id, url := range DefaultHospitalURLs {
			hospitalURLs[id] = url
		}
	}

	config := &Config{
		App: AppConfig{
			Port:          viper.GetString("APP_PORT"),
			Env:           env,
			AllowedOrigin: viper.GetString("APP_ALLOWED_ORIGIN"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: secret,
			Expiry: parseDuration("JWT_EXPIRY", 7*24*time.Hour),
		},
		Session: SessionConfig{
			CookieName:   "token",
			CookieSecure: cookieSecure,
		},
		Hospital: HospitalConfig{
			URLs:          hospitalURLs,
			DirectoryFile: viper.GetString("HOSPITAL_DIRECTORY_FILE"),
			ReadTimeout:   parseDuration("HOSPITAL_READ_TIMEOUT", 10*time.Second),
			PayTimeout:    parseDuration("HOSPITAL_PAY_TIMEOUT", 15*time.Second),
		},
		Google: GoogleConfig{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			TokenInfoURL: viper.GetString("GOOGLE_TOKENINFO_URL"),
		},
	}

	return config, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
