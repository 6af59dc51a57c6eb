package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa seluruh konfigurasi aplikasi, dibaca via Viper dari env
// (dan opsional file .env).
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
}

type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsDevelopment reports whether internal error detail may be exposed.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DBConfig konfigurasi PostgreSQL. DatabaseURL (jika diisi) dipakai langsung
// sebagai connection string penuh, misalnya dari Supabase.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	TimeZone    string
}

// DSN returns the connection string: DatabaseURL when set, otherwise the
// key=value form GORM's postgres driver expects.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode, c.TimeZone,
	)
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

type HTTPConfig struct {
	Port int
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load membaca konfigurasi dari environment variables, dengan default yang
// aman untuk development. Env vars selalu menang atas file.
func Load() (*Config, error) {
	v := viper.New()

	// Opsional: file .env di working directory
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // abaikan jika tidak ada

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "POS Kasir v1.0"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pos_kasir"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			TimeZone:    getString(v, "DB_TIMEZONE", "Asia/Jakarta"),
		},
		JWT: JWTConfig{
			Secret:          getString(v, "JWT_SECRET", "your-super-secret-key-change-in-production"),
			ExpirationHours: getInt(v, "JWT_EXPIRATION_HOURS", 24),
			Issuer:          getString(v, "JWT_ISSUER", "go-pos-kasir"),
		},
		HTTP: HTTPConfig{
			Port: getInt(v, "PORT", 3000),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
