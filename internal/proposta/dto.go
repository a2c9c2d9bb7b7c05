package proposta

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// LayoutData é o formato de data aceito em dataBase.
const LayoutData = "2006-01-02"

// DadosDTO espelha os campos do formulário. entradaValor nulo ou ausente
// significa "derivar do percentual".
type DadosDTO struct {
	ValorTotal          decimal.Decimal  `json:"valorTotal" yaml:"valorTotal"`
	EntradaValor        *decimal.Decimal `json:"entradaValor" yaml:"entradaValor"`
	EntradaPercent      decimal.Decimal  `json:"entradaPercent" yaml:"entradaPercent"`
	DuranteObraPercent  decimal.Decimal  `json:"duranteObraPercent" yaml:"duranteObraPercent"`
	DuranteObraParcelas int              `json:"duranteObraParcelas" yaml:"duranteObraParcelas"`
	ChavesPercent       decimal.Decimal  `json:"chavesPercent" yaml:"chavesPercent"`
	ChavesForma         FormaChaves      `json:"chavesForma" yaml:"chavesForma"`
	ChavesPosParcelas   int              `json:"chavesPosParcelas" yaml:"chavesPosParcelas"`
	Baloes              []Balao          `json:"baloes" yaml:"baloes"`
	SplitPreset         string           `json:"splitPreset" yaml:"splitPreset"`
}

// ParaDados converte o DTO no retrato usado pelo cálculo.
func (dto DadosDTO) ParaDados() DadosProposta {
	d := DadosProposta{
		ValorTotal:          dto.ValorTotal,
		EntradaPercent:      dto.EntradaPercent,
		DuranteObraPercent:  dto.DuranteObraPercent,
		DuranteObraParcelas: dto.DuranteObraParcelas,
		ChavesPercent:       dto.ChavesPercent,
		ChavesForma:         FormaChaves(strings.TrimSpace(string(dto.ChavesForma))),
		ChavesPosParcelas:   dto.ChavesPosParcelas,
		Baloes:              append([]Balao(nil), dto.Baloes...),
		SplitPreset:         strings.TrimSpace(dto.SplitPreset),
	}
	if dto.EntradaValor != nil {
		d.EntradaValor = decimal.NewNullDecimal(*dto.EntradaValor)
	}
	return d
}

// NovoDadosDTO faz o caminho inverso, usado ao devolver o preset aplicado.
func NovoDadosDTO(d DadosProposta) DadosDTO {
	dto := DadosDTO{
		ValorTotal:          d.ValorTotal,
		EntradaPercent:      d.EntradaPercent,
		DuranteObraPercent:  d.DuranteObraPercent,
		DuranteObraParcelas: d.DuranteObraParcelas,
		ChavesPercent:       d.ChavesPercent,
		ChavesForma:         d.ChavesForma,
		ChavesPosParcelas:   d.ChavesPosParcelas,
		Baloes:              append([]Balao(nil), d.Baloes...),
		SplitPreset:         d.SplitPreset,
	}
	if d.EntradaValor.Valid {
		v := d.EntradaValor.Decimal
		dto.EntradaValor = &v
	}
	return dto
}

// CalculoRequest é o corpo de POST /propostas/calcular e dos arquivos do CLI.
type CalculoRequest struct {
	DadosDTO `yaml:",inline"`
	DataBase string    `json:"dataBase,omitempty" yaml:"dataBase"`
	Projecao *Projecao `json:"projecao,omitempty" yaml:"projecao"`
}

// Resultado junta tudo o que é derivado de uma requisição.
type Resultado struct {
	Dados    DadosProposta `json:"-"`
	DataBase time.Time     `json:"dataBase"`
	Valores  Valores       `json:"valores"`
	Fluxos   []float64     `json:"fluxos"`
	Cenarios []Cenario     `json:"cenarios,omitempty"`
}

// Processar valida a requisição e calcula valores, fluxos e cenários.
// Sem dataBase, usa o dia de agora.
func Processar(req CalculoRequest, agora time.Time) (*Resultado, error) {
	dados := req.ParaDados()
	if err := dados.Valida(); err != nil {
		return nil, err
	}

	if req.Projecao != nil {
		if err := req.Projecao.Valida(); err != nil {
			return nil, err
		}
	}

	base := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	if s := strings.TrimSpace(req.DataBase); s != "" {
		t, err := time.Parse(LayoutData, s)
		if err != nil {
			return nil, eris.Wrapf(err, "proposta: dataBase %q", s)
		}
		base = t
	}

	valores := Calcular(dados, base)
	res := &Resultado{
		Dados:    dados,
		DataBase: base,
		Valores:  valores,
		Fluxos:   MontarFluxos(valores.Cronograma, valores.UltimoMes()),
	}
	if req.Projecao != nil {
		res.Cenarios = Projetar(valores, dados, *req.Projecao)
	}
	return res, nil
}
