package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_NAME", "order_desk")

	cfg := FromEnv("order-desk")

	assert.Equal(t, "order-desk", cfg.ServiceName)
	assert.Equal(t, "permissive", cfg.Order.StatusPolicy)
	assert.Equal(t, 10, cfg.Order.LowStockThreshold)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Contains(t, cfg.DB.DSN(), "dbname=order_desk")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")
	t.Setenv("PORT", "8080")
	t.Setenv("ORDER_STATUS_POLICY", "strict")
	t.Setenv("LOW_STOCK_THRESHOLD", "not-a-number")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("DB_CONN_MAX_LIFETIME", "15m")

	cfg := FromEnv("order-desk")

	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.DB.DSN())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "strict", cfg.Order.StatusPolicy)
	assert.Equal(t, 10, cfg.Order.LowStockThreshold)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
}
