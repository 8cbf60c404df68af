package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	AutoMigrate    bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ClientCacheTTL time.Duration
	TrustedProxies []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "tasktime"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "tasktime"),
		DbName:         getEnv("MYSQL_DATABASE", "tasktime"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		AutoMigrate:    getEnvBool("MIGRATIONS_AUTO", true),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		ClientCacheTTL: getEnvDuration("CLIENT_CACHE_TTL", 10*time.Minute),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
