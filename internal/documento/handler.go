package documento

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AlvoBR/api-propostas/internal/moeda"
	"github.com/AlvoBR/api-propostas/internal/notificacao"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler gera os documentos da proposta.
type Handler struct {
	Agora        func() time.Time
	Limiter      *rate.Limiter
	Notificador  *notificacao.Notificador
	Padrao       Cabecalho
	ValidadeDias int
}

// NewHandler cria um novo Handler. limiter e notificador podem ser nil.
func NewHandler(limiter *rate.Limiter, notificador *notificacao.Notificador, padrao Cabecalho, validadeDias int) *Handler {
	return &Handler{
		Agora:        time.Now,
		Limiter:      limiter,
		Notificador:  notificador,
		Padrao:       padrao,
		ValidadeDias: validadeDias,
	}
}

// Registrar pendura as rotas de exportação no router.
func (h *Handler) Registrar(r *mux.Router) {
	r.HandleFunc("/propostas/pdf", h.ExportarPDF).Methods("POST")
	r.HandleFunc("/propostas/planilha", h.ExportarPlanilha).Methods("POST")
}

// ExportarPDF trata POST /propostas/pdf
func (h *Handler) ExportarPDF(w http.ResponseWriter, r *http.Request) {
	h.exportar(w, r, "pdf", mimePDF, GerarPDF)
}

// ExportarPlanilha trata POST /propostas/planilha
func (h *Handler) ExportarPlanilha(w http.ResponseWriter, r *http.Request) {
	h.exportar(w, r, "xlsx", mimeXLSX, GerarPlanilha)
}

type gerador func(io.Writer, *Proposta) error

func (h *Handler) exportar(w http.ResponseWriter, r *http.Request, formato, mime string, gerar gerador) {
	defer r.Body.Close()

	if h.Limiter != nil && !h.Limiter.Allow() {
		http.Error(w, "Muitas exportações, tente novamente em instantes", http.StatusTooManyRequests)
		return
	}

	var req ExportacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := Montar(req, h.Agora(), h.Padrao, h.ValidadeDias)
	if err != nil {
		zap.L().Warn("proposta inválida", zap.Error(err))
		http.Error(w, "Dados da proposta inválidos", http.StatusBadRequest)
		return
	}

	// gera em memória para não mandar meio arquivo se algo falhar
	var buf bytes.Buffer
	if err := gerar(&buf, p); err != nil {
		zap.L().Error("falha ao gerar documento", zap.String("formato", formato), zap.Error(err))
		http.Error(w, "Erro ao gerar documento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, NomeArquivo(p, formato)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Error("falha ao escrever documento", zap.Error(err))
		return
	}

	zap.L().Info("proposta exportada",
		zap.String("numero", p.NumeroCurto()),
		zap.String("formato", formato),
		zap.Int("parcelas", len(p.Resultado.Valores.Cronograma)),
	)

	h.Notificador.EnviarAsync(notificacao.PropostaGerada{
		Numero:         p.Numero,
		Cliente:        p.Cabecalho.Cliente,
		Empreendimento: p.Cabecalho.Empreendimento,
		ValorTotal:     moeda.BRL(p.Resultado.Valores.Total),
		Formato:        formato,
	})
}

// NomeArquivo monta o nome sugerido para download.
func NomeArquivo(p *Proposta, formato string) string {
	return fmt.Sprintf("proposta-%s.%s", p.NumeroCurto(), formato)
}
