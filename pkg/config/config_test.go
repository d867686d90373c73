package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagane/franchise-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "per_stock", cfg.Stock.PurchaseOrderJoin)
	assert.Equal(t, "purchase-orders", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("STOCK_PO_JOIN", "legacy")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "legacy", cfg.Stock.PurchaseOrderJoin)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
}

func TestLoad_RejectsUnknownJoinMode(t *testing.T) {
	t.Setenv("STOCK_PO_JOIN", "per_store")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "franchise", Password: "p@ss:word",
		DBName: "franchise", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://franchise:p%40ss%3Aword@db:5432/franchise?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
