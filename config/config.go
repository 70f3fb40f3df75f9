package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Mail      MailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	LogLevel    string
	// PublicURL is used to build links in outgoing mail (reset password, ...).
	PublicURL string
}

func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	CookieName      string
	ResetTTL        time.Duration
	AllowQueryToken bool
}

type AdminConfig struct {
	Email        string
	PasswordHash string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Queue selects the mail job transport: "memory" or "redis".
	Queue string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	AppConfig = &Config{
		Server:    GetServerConfig(v),
		Database:  GetDatabaseConfig(v),
		Redis:     GetRedisConfig(v),
		Auth:      GetAuthConfig(v),
		Admin:     GetAdminConfig(v),
		Mail:      GetMailConfig(v),
		CORS:      GetCORSConfig(v),
		RateLimit: GetRateLimitConfig(v),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:            "localhost",
		Port:            "5433", // test database runs on 5433
		User:            "postgres",
		Password:        "postgres",
		DBName:          "test_db",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute * 5,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Environment: "test",
			LogLevel:    "debug",
			PublicURL:   "http://localhost:3000",
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Auth: AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTL:        time.Hour,
			CookieName:      "token",
			ResetTTL:        time.Hour,
			AllowQueryToken: true,
		},
		Mail:      MailConfig{From: "no-reply@byblos.test", Queue: "memory"},
		CORS:      CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: RateLimitConfig{Limit: 10, Window: 15 * time.Minute},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PUBLIC_URL", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 30*time.Minute)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("AUTH_COOKIE_NAME", "token")
	v.SetDefault("RESET_TOKEN_TTL", time.Hour)

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "no-reply@byblos-atelier.com")
	v.SetDefault("MAIL_QUEUE", "memory")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("RATE_LIMIT", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", 15*time.Minute)
}

func GetServerConfig(v *viper.Viper) ServerConfig {
	return ServerConfig{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		PublicURL:   strings.TrimRight(v.GetString("PUBLIC_URL"), "/"),
	}
}

func GetDatabaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetString("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		SSLMode:         v.GetString("DB_SSL_MODE"),
		MaxConns:        v.GetInt32("DB_MAX_CONNS"),
		MinConns:        v.GetInt32("DB_MIN_CONNS"),
		MaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
		MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
	}
}

func GetRedisConfig(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetString("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}
}

func GetAuthConfig(v *viper.Viper) AuthConfig {
	env := v.GetString("ENVIRONMENT")
	return AuthConfig{
		JWTSecret:  v.GetString("JWT_SECRET"),
		TokenTTL:   v.GetDuration("JWT_TTL"),
		CookieName: v.GetString("AUTH_COOKIE_NAME"),
		ResetTTL:   v.GetDuration("RESET_TOKEN_TTL"),
		// ?token= is a development convenience only
		AllowQueryToken: env != "production",
	}
}

func GetAdminConfig(v *viper.Viper) AdminConfig {
	return AdminConfig{
		Email:        strings.ToLower(v.GetString("ADMIN_EMAIL")),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}
}

func GetMailConfig(v *viper.Viper) MailConfig {
	return MailConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		Username: v.GetString("SMTP_USERNAME"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     v.GetString("MAIL_FROM"),
		Queue:    v.GetString("MAIL_QUEUE"),
	}
}

func GetCORSConfig(v *viper.Viper) CORSConfig {
	origins := []string{}
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func GetRateLimitConfig(v *viper.Viper) RateLimitConfig {
	return RateLimitConfig{
		Limit:  v.GetInt("RATE_LIMIT"),
		Window: v.GetDuration("RATE_LIMIT_WINDOW"),
	}
}
