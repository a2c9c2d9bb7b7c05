package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config reúne a configuração da aplicação.
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
	Notificacao NotificacaoConfig `yaml:"notificacao" mapstructure:"notificacao"`
	Empresa     EmpresaConfig     `yaml:"empresa" mapstructure:"empresa"`
	Proposta    PropostaConfig    `yaml:"proposta" mapstructure:"proposta"`
}

// ServerConfig configura o servidor HTTP.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configura o logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ExportConfig limita a geração de PDF e planilha.
type ExportConfig struct {
	RatePerMinute int `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	Burst         int `yaml:"burst" mapstructure:"burst"`
}

// NotificacaoConfig configura o webhook disparado a cada exportação.
type NotificacaoConfig struct {
	WebhookURL  string `yaml:"webhook_url" mapstructure:"webhook_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// EmpresaConfig preenche o cabeçalho padrão dos documentos.
type EmpresaConfig struct {
	Nome string `yaml:"nome" mapstructure:"nome"`
	Site string `yaml:"site" mapstructure:"site"`
}

// PropostaConfig traz os padrões das propostas.
type PropostaConfig struct {
	ValidadeDias int `yaml:"validade_dias" mapstructure:"validade_dias"`
}

// Load lê .env, config.yaml (opcional) e variáveis PROPOSTAS_*.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PROPOSTAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("export.rate_per_minute", 30)
	v.SetDefault("export.burst", 5)
	v.SetDefault("notificacao.webhook_url", "")
	v.SetDefault("notificacao.timeout_secs", 10)
	v.SetDefault("empresa.nome", "Alvo BR Imobiliária")
	v.SetDefault("empresa.site", "https://alvobr.com.br")
	v.SetDefault("proposta.validade_dias", 7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger inicializa o logger global do zap.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
