package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// PropostaGerada é o payload enviado quando um documento é exportado.
type PropostaGerada struct {
	Mensagem       string `json:"mensagem"`
	Numero         string `json:"numero"`
	Cliente        string `json:"cliente"`
	Empreendimento string `json:"empreendimento"`
	ValorTotal     string `json:"valorTotal"`
	Formato        string `json:"formato"`
}

// Notificador envia alertas para um webhook. URL vazia desliga o envio.
type Notificador struct {
	URL    string
	Client *http.Client
}

// NewNotificador cria um notificador com timeout próprio
func NewNotificador(url string, timeout time.Duration) *Notificador {
	return &Notificador{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Enviar faz o POST do evento; respostas fora de 2xx viram erro.
func (n *Notificador) Enviar(ctx context.Context, evento PropostaGerada) error {
	if n == nil || n.URL == "" {
		return nil
	}
	if evento.Mensagem == "" {
		evento.Mensagem = "Nova proposta gerada"
	}

	body, err := json.Marshal(evento)
	if err != nil {
		return eris.Wrap(err, "notificacao: encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "notificacao: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrap(err, "notificacao: send webhook")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return eris.Errorf("notificacao: webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// EnviarAsync dispara o envio em segundo plano e só registra falhas.
func (n *Notificador) EnviarAsync(evento PropostaGerada) {
	if n == nil || n.URL == "" {
		return
	}
	go func() {
		if err := n.Enviar(context.Background(), evento); err != nil {
			zap.L().Warn("falha ao enviar webhook",
				zap.String("numero", evento.Numero),
				zap.Error(err),
			)
		}
	}()
}
