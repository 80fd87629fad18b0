package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 480, cfg.JWT.Expiration, "la sesión dura 8 horas por defecto")
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, 10, cfg.Reports.LowStockThreshold)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_SinSecret_Error(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestParse_SinSecret_ParaCLI(t *testing.T) {
	v := viper.New()
	v.Set("DB_AUTO_MIGRATE", "true")

	cfg := parse(v)
	assert.Empty(t, cfg.JWT.Secret)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("APP_ENV", "production")
	v.Set("DB_MAX_CONNS", "4")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, int32(4), cfg.DB.MaxConns)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Redis.Enabled())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
