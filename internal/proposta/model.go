package proposta

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// FormaChaves define como o saldo das chaves é pago.
type FormaChaves string

const (
	ChavesFinanciamento  FormaChaves = "financiamento"
	ChavesAVista         FormaChaves = "avista"
	ChavesPosConstrutora FormaChaves = "posConstrutora"
)

// Limites de prazo aceitos na entrada.
const (
	MaxMeses = 600
	MaxAnos  = MaxMeses / 12
)

var (
	ErrFormaChavesInvalida = eris.New("forma de pagamento das chaves inválida")
	ErrValorTotalNegativo  = eris.New("valor total negativo")
	ErrPrazoInvalido       = eris.New("prazo fora do limite")
)

// Balao é um pagamento extra fora do cronograma regular.
type Balao struct {
	Mes   int             `json:"mes" yaml:"mes"`
	Valor decimal.Decimal `json:"valor" yaml:"valor"`
}

// DadosProposta é o retrato imutável do formulário usado em cada cálculo.
type DadosProposta struct {
	ValorTotal decimal.Decimal
	// EntradaValor, quando Valid, prevalece sobre EntradaPercent.
	EntradaValor        decimal.NullDecimal
	EntradaPercent      decimal.Decimal
	DuranteObraPercent  decimal.Decimal
	DuranteObraParcelas int
	ChavesPercent       decimal.Decimal
	ChavesForma         FormaChaves
	ChavesPosParcelas   int
	Baloes              []Balao
	SplitPreset         string
}

// Valida confere os campos que o cálculo não consegue interpretar.
func (d DadosProposta) Valida() error {
	if d.ValorTotal.IsNegative() {
		return ErrValorTotalNegativo
	}
	if d.DuranteObraParcelas > MaxMeses {
		return eris.Wrapf(ErrPrazoInvalido, "duranteObraParcelas %d", d.DuranteObraParcelas)
	}
	if d.ChavesPosParcelas > MaxMeses {
		return eris.Wrapf(ErrPrazoInvalido, "chavesPosParcelas %d", d.ChavesPosParcelas)
	}
	for i, b := range d.Baloes {
		if b.Mes > MaxMeses {
			return eris.Wrapf(ErrPrazoInvalido, "balão %d no mês %d", i+1, b.Mes)
		}
	}
	switch d.ChavesForma {
	case "", ChavesFinanciamento, ChavesAVista, ChavesPosConstrutora:
		return nil
	default:
		return eris.Wrapf(ErrFormaChavesInvalida, "%q", string(d.ChavesForma))
	}
}

// forma devolve a forma efetiva (vazio vale como financiamento).
func (d DadosProposta) forma() FormaChaves {
	if d.ChavesForma == "" {
		return ChavesFinanciamento
	}
	return d.ChavesForma
}

// Evento é um desembolso do cronograma.
type Evento struct {
	Tipo  string          `json:"tipo"`
	Data  time.Time       `json:"data"`
	Valor decimal.Decimal `json:"valor"`
	Mes   int             `json:"mes"`
}

// Valores reúne os totais derivados e o cronograma de uma proposta.
type Valores struct {
	Total              decimal.Decimal `json:"total"`
	EntradaValor       decimal.Decimal `json:"entradaValor"`
	EntradaPercent     decimal.Decimal `json:"entradaPercent"`
	DuranteObraTotal   decimal.Decimal `json:"duranteObraTotal"`
	DuranteObraParcela decimal.Decimal `json:"duranteObraParcela"`
	ChavesTotal        decimal.Decimal `json:"chavesTotal"`
	ValorInvestidoReal decimal.Decimal `json:"valorInvestidoReal"`
	Cronograma         []Evento        `json:"schedule"`
}

// UltimoMes devolve o maior mês do cronograma (0 quando vazio).
func (v Valores) UltimoMes() int {
	ultimo := 0
	for _, e := range v.Cronograma {
		if e.Mes > ultimo {
			ultimo = e.Mes
		}
	}
	return ultimo
}
