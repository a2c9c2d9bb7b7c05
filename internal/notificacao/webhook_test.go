package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnviar(t *testing.T) {
	t.Parallel()

	recebido := make(chan PropostaGerada, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var ev PropostaGerada
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		recebido <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotificador(srv.URL, time.Second)
	err := n.Enviar(context.Background(), PropostaGerada{Numero: "abc", Cliente: "Maria", Formato: "pdf"})
	require.NoError(t, err)

	ev := <-recebido
	assert.Equal(t, "Nova proposta gerada", ev.Mensagem)
	assert.Equal(t, "abc", ev.Numero)
	assert.Equal(t, "Maria", ev.Cliente)
	assert.Equal(t, "pdf", ev.Formato)
}

func TestEnviar_StatusDeErro(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewNotificador(srv.URL, time.Second).Enviar(context.Background(), PropostaGerada{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestEnviar_SemURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewNotificador("", time.Second).Enviar(context.Background(), PropostaGerada{}))

	var n *Notificador
	assert.NoError(t, n.Enviar(context.Background(), PropostaGerada{}))
	n.EnviarAsync(PropostaGerada{})
}

func TestEnviarAsync(t *testing.T) {
	t.Parallel()

	chamado := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamado <- struct{}{}
	}))
	defer srv.Close()

	NewNotificador(srv.URL, time.Second).EnviarAsync(PropostaGerada{Numero: "1"})

	select {
	case <-chamado:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook não foi chamado")
	}
}
