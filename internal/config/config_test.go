package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVICE_NAME", "SERVER_PORT", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL", "SECRET_KEY",
		"COOKIE_SECURE", "KAFKA_BROKERS", "CATALOG_TOPIC", "USER_TOPIC", "ES_URL", "ES_INDEX",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "epicbeats", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Empty(t, cfg.SecretKey)
	assert.True(t, cfg.CookieSecure)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "catalog_events", cfg.CatalogTopic)
	assert.Equal(t, "user_events", cfg.UserTopic)
	assert.Equal(t, "instrumentals", cfg.ESIndex)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ES_URL", "http://es:9200")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.DatabaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.SecretKey)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://es:9200"}, cfg.ESAddresses)
}

func TestEnvHelpers_InvalidFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")

	assert.Equal(t, 7, EnvIntDefault("X_INT", 7))
	assert.True(t, EnvBoolDefault("X_BOOL", true))
	assert.Nil(t, CSV(""))
	assert.Empty(t, CSV(" , "))
}
