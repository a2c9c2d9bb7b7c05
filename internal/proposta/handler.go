package proposta

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlvoBR/api-propostas/internal/financeiro"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler expõe o motor de cálculo via HTTP.
type Handler struct {
	Agora func() time.Time
}

// NewHandler cria um novo Handler usando o relógio do sistema
func NewHandler() *Handler {
	return &Handler{Agora: time.Now}
}

// Registrar pendura as rotas de proposta no router.
func (h *Handler) Registrar(r *mux.Router) {
	r.HandleFunc("/propostas/presets", h.ListarPresets).Methods("GET")
	r.HandleFunc("/propostas/preset", h.AplicarPreset).Methods("POST")
	r.HandleFunc("/propostas/calcular", h.Calcular).Methods("POST")
	r.HandleFunc("/propostas/tir", h.CalcularTIR).Methods("POST")
}

type tirRequest struct {
	Fluxos []float64 `json:"fluxos"`
	Chute  *float64  `json:"chute"`
}

type tirResponse struct {
	TIR      float64 `json:"tir"`
	TIRAnual float64 `json:"tirAnual"`
}

type erroResponse struct {
	Erro string `json:"erro"`
	Tipo string `json:"tipo"`
}

// ListarPresets trata GET /propostas/presets
func (h *Handler) ListarPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"presets": append(Presets(), PresetCustom),
	})
}

// AplicarPreset trata POST /propostas/preset
// Devolve os dados com os percentuais e a entrada do preset escolhido.
func (h *Handler) AplicarPreset(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto DadosDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	dados, err := AplicarPreset(dto.ParaDados())
	if err != nil {
		http.Error(w, "Preset inválido", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, NovoDadosDTO(dados))
}

// Calcular trata POST /propostas/calcular
func (h *Handler) Calcular(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CalculoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	res, err := Processar(req, h.Agora())
	if err != nil {
		zap.L().Warn("proposta inválida", zap.Error(err))
		http.Error(w, "Dados da proposta inválidos", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CalcularTIR trata POST /propostas/tir
// Falhas do solver voltam como 422 com o tipo do erro.
func (h *Handler) CalcularTIR(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req tirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	chute := financeiro.ChutePadrao
	if req.Chute != nil {
		chute = *req.Chute
	}

	tir, err := financeiro.CalcularTIR(req.Fluxos, chute)
	if err != nil {
		zap.L().Info("TIR não calculada", zap.Int("periodos", len(req.Fluxos)), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, erroResponse{Erro: err.Error(), Tipo: tipoErroTIR(err)})
		return
	}

	writeJSON(w, http.StatusOK, tirResponse{TIR: tir, TIRAnual: financeiro.TaxaAnual(tir)})
}

func tipoErroTIR(err error) string {
	switch {
	case errors.Is(err, financeiro.ErrFluxoDegenerado):
		return "fluxoDegenerado"
	case errors.Is(err, financeiro.ErrDerivadaNula):
		return "derivadaNula"
	case errors.Is(err, financeiro.ErrNaoConvergiu):
		return "naoConvergiu"
	default:
		return "desconhecido"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("falha ao escrever resposta", zap.Error(err))
	}
}
