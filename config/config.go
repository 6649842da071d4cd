package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Client   ClientConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTLHrs int
}

// ClientConfig tickifyctl 用的設定
type ClientConfig struct {
	BaseURL     string
	SessionFile string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Auth:     GetAuthConfig(),
		Client:   GetClientConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Auth:     AuthConfig{JWTSecret: "test-secret", TokenTTLHrs: 1},
		Client:   ClientConfig{BaseURL: "http://localhost:8080", SessionFile: ""},
		Database: *testConfig,
		Redis:    testRedisConfig,
	}
}

func GetServerConfig() ServerConfig {
	cfg := ServerConfig{
		Addr: getEnv("SERVER_ADDR", ":8080"),
	}
	// 逗號分隔；留空表示開發模式放行所有來源
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	return cfg
}

func GetAuthConfig() AuthConfig {
	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "72"))
	if err != nil {
		panic(err)
	}

	return AuthConfig{
		JWTSecret:   getEnv("JWT_SECRET", "tickify-dev-secret"),
		TokenTTLHrs: ttl,
	}
}

func GetClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:     getEnv("TICKIFY_API_URL", "http://localhost:8080"),
		SessionFile: getEnv("TICKIFY_SESSION_FILE", ""),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "tickify"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
