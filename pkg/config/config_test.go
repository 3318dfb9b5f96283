package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "no-es-numero")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port, "valor inválido cae al default")
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_ProduccionSinSecretFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:w/rd", DBName: "pos", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aw%2Frd@db:5432/pos?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestAppConfig_LocationInvalidaEsUTC(t *testing.T) {
	assert.Equal(t, "UTC", AppConfig{TimeZone: "Nowhere/Nada"}.Location().String())
}

func TestLoad_AlmacenamientoEnMemoria(t *testing.T) {
	t.Setenv("APP_STORAGE", "MEMORY")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.InMemory())
	assert.False(t, AppConfig{Storage: "postgres"}.InMemory())
}
