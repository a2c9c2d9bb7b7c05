package proposta

import (
	"github.com/AlvoBR/api-propostas/internal/financeiro"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// chuteMensal é o ponto de partida do solver para fluxos mensais (1% a.m.).
const chuteMensal = 0.01

// Projecao são as premissas de retorno mostradas ao cliente.
type Projecao struct {
	// Apreciacao é a valorização acumulada (%) até a entrega das chaves.
	Apreciacao decimal.Decimal `json:"apreciacao" yaml:"apreciacao"`
	// PrazoEntrega em anos; zero usa o mês seguinte à última parcela de obra.
	PrazoEntrega       int             `json:"prazoEntrega" yaml:"prazoEntrega"`
	AdrDiaria          decimal.Decimal `json:"adrDiaria" yaml:"adrDiaria"`
	Ocupacao           decimal.Decimal `json:"ocupacao" yaml:"ocupacao"`
	CustosOperacionais decimal.Decimal `json:"custosOperacionais" yaml:"custosOperacionais"`
	PrazoShortStay     int             `json:"prazoShortStay" yaml:"prazoShortStay"`
}

// Cenario é o resultado de uma estratégia de saída.
type Cenario struct {
	Nome       string          `json:"nome"`
	MesFinal   int             `json:"mesFinal"`
	Desembolso decimal.Decimal `json:"desembolso"`
	Retorno    decimal.Decimal `json:"retorno"`
	Lucro      decimal.Decimal `json:"lucro"`
	ROI        decimal.Decimal `json:"roi"`
	TIRMensal  float64         `json:"tirMensal"`
	TIRAnual   float64         `json:"tirAnual"`
	Convergiu  bool            `json:"convergiu"`
	Fluxos     []float64       `json:"fluxos"`
}

// Valida confere os prazos da projeção.
func (p Projecao) Valida() error {
	if p.PrazoEntrega > MaxAnos {
		return eris.Wrapf(ErrPrazoInvalido, "prazoEntrega %d", p.PrazoEntrega)
	}
	if p.PrazoShortStay > MaxAnos {
		return eris.Wrapf(ErrPrazoInvalido, "prazoShortStay %d", p.PrazoShortStay)
	}
	return nil
}

// MesEntrega devolve o mês da entrega das chaves. Prazos acima do limite
// são truncados.
func MesEntrega(d DadosProposta, p Projecao) int {
	if p.PrazoEntrega > 0 {
		return min(p.PrazoEntrega, MaxAnos) * 12
	}
	return limitarMeses(d.DuranteObraParcelas) + 1
}

// RendaMensalLiquida estima a renda de aluguel por temporada já descontados
// os custos operacionais.
func RendaMensalLiquida(p Projecao) decimal.Decimal {
	bruta := p.AdrDiaria.Mul(decimal.NewFromInt(365)).Mul(p.Ocupacao).Div(cem)
	liquida := bruta.Mul(cem.Sub(p.CustosOperacionais)).Div(cem)
	return liquida.Div(decimal.NewFromInt(12))
}

// Projetar monta os cenários de revenda na entrega e de short stay.
func Projetar(v Valores, d DadosProposta, p Projecao) []Cenario {
	entrega := MesEntrega(d, p)
	valorFuturo := percentual(v.Total, cem.Add(p.Apreciacao))

	financiado := decimal.Zero
	if d.forma() == ChavesFinanciamento {
		financiado = v.ChavesTotal
	}

	cenarios := []Cenario{
		montarCenario("Revenda na entrega", v.Cronograma, entrega, 0, decimal.Zero, valorFuturo.Sub(financiado)),
	}

	if p.AdrDiaria.IsPositive() && p.PrazoShortStay > 0 {
		mesFinal := entrega + min(p.PrazoShortStay, MaxAnos)*12
		cenarios = append(cenarios,
			montarCenario("Short stay", v.Cronograma, mesFinal, entrega+1, RendaMensalLiquida(p), valorFuturo.Sub(financiado)))
	}

	return cenarios
}

// montarCenario paga os eventos até mesFinal, recebe renda mensal a partir de
// inicioRenda e vende no mesFinal. Parcelas posteriores à venda são
// assumidas pelo comprador e saem do valor de venda.
func montarCenario(nome string, cronograma []Evento, mesFinal, inicioRenda int, renda, venda decimal.Decimal) Cenario {
	var pagos []Evento
	desembolso, assumido := decimal.Zero, decimal.Zero
	for _, e := range cronograma {
		if e.Mes > mesFinal {
			assumido = assumido.Add(e.Valor)
			continue
		}
		pagos = append(pagos, e)
		desembolso = desembolso.Add(e.Valor)
	}

	fluxos := MontarFluxos(pagos, mesFinal)
	retorno := decimal.Zero
	if inicioRenda > 0 && renda.IsPositive() {
		for m := inicioRenda; m <= mesFinal; m++ {
			fluxos[m] += renda.InexactFloat64()
			retorno = retorno.Add(renda)
		}
	}
	liquidoVenda := venda.Sub(assumido)
	fluxos[mesFinal] += liquidoVenda.InexactFloat64()
	retorno = retorno.Add(liquidoVenda)

	c := Cenario{
		Nome:       nome,
		MesFinal:   mesFinal,
		Desembolso: desembolso,
		Retorno:    retorno,
		Lucro:      retorno.Sub(desembolso),
		ROI:        decimal.Zero,
		Fluxos:     fluxos,
	}
	if desembolso.IsPositive() {
		c.ROI = c.Lucro.Mul(cem).Div(desembolso)
	}

	tir, err := financeiro.CalcularTIR(fluxos, chuteMensal)
	if err == nil {
		c.Convergiu = true
		c.TIRMensal = tir
		c.TIRAnual = financeiro.TaxaAnual(tir)
	}
	return c
}
