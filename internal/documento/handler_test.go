package documento

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlvoBR/api-propostas/internal/notificacao"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(limiter *rate.Limiter, n *notificacao.Notificador) *mux.Router {
	h := NewHandler(limiter, n, padrao, 7)
	h.Agora = func() time.Time { return agora }
	r := mux.NewRouter()
	h.Registrar(r)
	return r
}

func post(t *testing.T, r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func corpo(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(requestExemplo(true))
	require.NoError(t, err)
	return body
}

func TestHandler_ExportarPDF(t *testing.T) {
	t.Parallel()

	rr := post(t, newTestRouter(nil, nil), "/propostas/pdf", corpo(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, mimePDF, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `attachment; filename="proposta-`)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `.pdf"`)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestHandler_ExportarPlanilhaNotifica(t *testing.T) {
	t.Parallel()

	recebido := make(chan notificacao.PropostaGerada, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev notificacao.PropostaGerada
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		recebido <- ev
	}))
	defer srv.Close()

	n := notificacao.NewNotificador(srv.URL, time.Second)
	rr := post(t, newTestRouter(nil, n), "/propostas/planilha", corpo(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, mimeXLSX, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `.xlsx"`)
	// xlsx é um zip
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))

	select {
	case ev := <-recebido:
		assert.Equal(t, "xlsx", ev.Formato)
		assert.Equal(t, "Maria Oliveira", ev.Cliente)
		assert.Equal(t, "Residencial Ipê", ev.Empreendimento)
		assert.Equal(t, "R$ 980.000,00", ev.ValorTotal)
		assert.Len(t, ev.Numero, 36)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook não foi chamado")
	}
}

func TestHandler_LimiteDeExportacao(t *testing.T) {
	t.Parallel()

	r := newTestRouter(rate.NewLimiter(rate.Every(time.Hour), 1), nil)
	body := corpo(t)

	rr := post(t, r, "/propostas/pdf", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = post(t, r, "/propostas/planilha", body)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestHandler_ExportarInvalido(t *testing.T) {
	t.Parallel()

	r := newTestRouter(nil, nil)

	rr := post(t, r, "/propostas/pdf", []byte(`{"valorTotal":`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, r, "/propostas/pdf", []byte(`{"valorTotal": 1000, "chavesForma": "permuta"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, r, "/propostas/planilha", []byte(`{"valorTotal": 1000, "dataBase": "10/03/2025"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, r, "/propostas/pdf", []byte(`{"valorTotal": 1000, "baloes": [{"mes": 9223372036854775807, "valor": 1}]}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, r, "/propostas/planilha", []byte(`{"valorTotal": 1000, "duranteObraParcelas": 2000000000}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNomeArquivo(t *testing.T) {
	t.Parallel()

	p := &Proposta{Numero: "0f8fad5b-d9cb-469f-a165-70867728950e"}
	assert.Equal(t, "proposta-0f8fad5b.pdf", NomeArquivo(p, "pdf"))
}
