package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	SecretKey    []byte
	CookieSecure bool

	KafkaBrokers []string
	CatalogTopic string
	UserTopic    string

	ESAddresses []string
	ESUsername  string
	ESPassword  string
	ESIndex     string
}

// Load reads the process environment. A .env file in the working
// directory is merged in first when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v, using system environment", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "epicbeats"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    EnvDefault("DB_DRIVER", "pgx"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SecretKey:    []byte(os.Getenv("SECRET_KEY")),
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", true),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		CatalogTopic: EnvDefault("CATALOG_TOPIC", "catalog_events"),
		UserTopic:    EnvDefault("USER_TOPIC", "user_events"),

		ESAddresses: CSV(os.Getenv("ES_URL")),
		ESUsername:  os.Getenv("ES_USERNAME"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		ESIndex:     EnvDefault("ES_INDEX", "instrumentals"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
