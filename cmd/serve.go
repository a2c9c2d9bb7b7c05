package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlvoBR/api-propostas/internal/config"
	"github.com/AlvoBR/api-propostas/internal/documento"
	"github.com/AlvoBR/api-propostas/internal/notificacao"
	"github.com/AlvoBR/api-propostas/internal/proposta"
	"github.com/gorilla/mux"
	"github.com/rotisserie/eris"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP de propostas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           novoServidor(cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("desligando servidor")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Error("falha ao desligar servidor", zap.Error(err))
			}
		}()

		zap.L().Info("servidor rodando", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "porta do servidor (padrão vem da config)")
	rootCmd.AddCommand(serveCmd)
}

// novoServidor monta o router com todas as rotas e o CORS.
func novoServidor(c *config.Config) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			zap.L().Warn("falha ao responder health", zap.Error(err))
		}
	}).Methods("GET")

	// Rotas de cálculo
	proposta.NewHandler().Registrar(r)

	// Rotas de exportação
	notificador := notificacao.NewNotificador(c.Notificacao.WebhookURL, time.Duration(c.Notificacao.TimeoutSecs)*time.Second)
	padrao := documento.Cabecalho{Empresa: c.Empresa.Nome, SiteURL: c.Empresa.Site}
	documento.NewHandler(novoLimiter(c.Export), notificador, padrao, c.Proposta.ValidadeDias).Registrar(r)

	return cors.New(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler(r)
}

// novoLimiter devolve nil (sem limite) quando rate_per_minute não é positivo.
func novoLimiter(c config.ExportConfig) *rate.Limiter {
	if c.RatePerMinute <= 0 {
		return nil
	}
	burst := max(c.Burst, 1)
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.RatePerMinute)), burst)
}
