package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "portfolio_tracker", cfg.Database.DBName)
	assert.Equal(t, "portfolio.trades", cfg.Kafka.TradesTopic)
	assert.Equal(t, 30*time.Second, cfg.Simulator.TickInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SIM_TICK_INTERVAL", "5s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Simulator.TickInterval)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "u", Password: "p",
		DBName: "portfolio_tracker", SSLMode: "disable",
	}

	assert.Equal(t,
		"postgres://u:p@localhost:5432/portfolio_tracker?sslmode=disable",
		d.ConnectionString())
}

func TestGetDuration_BareSecondsFallback(t *testing.T) {
	t.Setenv("SIM_TICK_INTERVAL", "45")

	cfg := Load()
	assert.Equal(t, 45*time.Second, cfg.Simulator.TickInterval)
}

func TestGetDuration_GarbageFallsBackToDefault(t *testing.T) {
	t.Setenv("SIM_TICK_INTERVAL", "soon")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.Simulator.TickInterval)
}
