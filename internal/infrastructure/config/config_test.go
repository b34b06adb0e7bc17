package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoline/shipping-core/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}), nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.False(t, cfg.SeedDemo)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, domain.DefaultRateTable(), cfg.Rates)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.Redis.DedupTTL)
	assert.Equal(t, 8, cfg.Dispatcher.Workers)
	assert.Equal(t, "@every 30s", cfg.Jobs.StatsSchedule)
}

func TestLoad_EnvOverrides(t *testing.T) {
	env := envconfig.MapLookuper(map[string]string{
		"PORT":          "9090",
		"ENV":           "production",
		"STORAGE":       "Mongo",
		"QUOTE_RATES":   "standard:70,express:120",
		"REDIS_ADDR":    "redis:6379",
		"KAFKA_BROKERS": "k1:9092,k2:9092",
	})

	cfg, err := load(context.Background(), env, nil)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, domain.RateTable{domain.TierStandard: 70, domain.TierExpress: 120}, cfg.Rates)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	env := envconfig.MapLookuper(map[string]string{"PORT": "9090", "STORAGE": "mongo"})

	cfg, err := load(context.Background(), env, []string{"--port=7070", "--storage=postgres", "--seed-demo"})
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.True(t, cfg.SeedDemo)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"port out of range", map[string]string{"PORT": "70000"}, nil},
		{"port not a number", nil, []string{"--port=abc"}},
		{"unknown storage", map[string]string{"STORAGE": "sqlite"}, nil},
		{"unknown tier", map[string]string{"QUOTE_RATES": "overnight:10"}, nil},
		{"negative rate", map[string]string{"QUOTE_RATES": "standard:-1"}, nil},
		{"zero workers", map[string]string{"DISPATCHER_WORKERS": "0"}, nil},
		{"unknown flag", nil, []string{"--verbose"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.env
			if env == nil {
				env = map[string]string{}
			}
			cfg, err := load(context.Background(), envconfig.MapLookuper(env), tc.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
