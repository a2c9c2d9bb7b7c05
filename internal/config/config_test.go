package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30, cfg.Export.RatePerMinute)
	assert.Equal(t, 5, cfg.Export.Burst)
	assert.Empty(t, cfg.Notificacao.WebhookURL)
	assert.Equal(t, 10, cfg.Notificacao.TimeoutSecs)
	assert.Equal(t, "Alvo BR Imobiliária", cfg.Empresa.Nome)
	assert.Equal(t, 7, cfg.Proposta.ValidadeDias)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
server:
  port: 9090
  allowed_origins:
    - https://propostas.alvobr.com.br
log:
  level: debug
  format: console
notificacao:
  webhook_url: https://hooks.exemplo.com/propostas
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://propostas.alvobr.com.br"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "https://hooks.exemplo.com/propostas", cfg.Notificacao.WebhookURL)
	// padrões continuam valendo para o que não foi informado
	assert.Equal(t, 30, cfg.Export.RatePerMinute)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("PROPOSTAS_SERVER_PORT", "7070")
	t.Setenv("PROPOSTAS_EMPRESA_NOME", "Outra Imobiliária")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "Outra Imobiliária", cfg.Empresa.Nome)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROPOSTAS_PROPOSTA_VALIDADE_DIAS=15\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("PROPOSTAS_PROPOSTA_VALIDADE_DIAS") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Proposta.ValidadeDias)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "barulhento"}))
}
