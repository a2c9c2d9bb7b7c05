package financeiro

import (
	"math"

	"github.com/rotisserie/eris"
)

const (
	// ChutePadrao é a taxa inicial usada pelo Newton-Raphson (10% ao período).
	ChutePadrao = 0.1
	// MaxIteracoes limita o tempo de execução do solver.
	MaxIteracoes = 1000
	// Precisao é o |VPL| abaixo do qual a taxa é aceita.
	Precisao = 0.0001
)

var (
	// ErrFluxoDegenerado: menos de dois períodos ou nenhuma troca de sinal.
	ErrFluxoDegenerado = eris.New("fluxo de caixa degenerado")
	// ErrDerivadaNula: tangente horizontal, o método não consegue avançar.
	ErrDerivadaNula = eris.New("derivada do VPL nula")
	// ErrNaoConvergiu: limite de iterações atingido ou taxa fora do domínio.
	ErrNaoConvergiu = eris.New("TIR não convergiu")
)

// VPL calcula o valor presente líquido do fluxo à taxa informada (por período).
func VPL(fluxos []float64, taxa float64) float64 {
	var vpl float64
	for i, fluxo := range fluxos {
		vpl += fluxo / math.Pow(1+taxa, float64(i))
	}
	return vpl
}

// CalcularTIR encontra a taxa interna de retorno do fluxo por Newton-Raphson
// e devolve a taxa em percentual por período (ex.: 10 para 10%).
func CalcularTIR(fluxos []float64, chute float64) (float64, error) {
	if err := validarFluxo(fluxos); err != nil {
		return 0, err
	}

	taxa := chute
	for iteracoes := 0; iteracoes < MaxIteracoes; iteracoes++ {
		var vpl, derivada float64
		for i, fluxo := range fluxos {
			fi := float64(i)
			vpl += fluxo / math.Pow(1+taxa, fi)
			derivada -= fi * fluxo / math.Pow(1+taxa, fi+1)
		}

		if math.IsNaN(vpl) || math.IsInf(vpl, 0) {
			return 0, eris.Wrapf(ErrNaoConvergiu, "taxa saiu do domínio na iteração %d", iteracoes)
		}
		if math.Abs(vpl) < Precisao {
			return taxa * 100, nil
		}
		if derivada == 0 {
			return 0, eris.Wrapf(ErrDerivadaNula, "iteração %d, taxa %.6f", iteracoes, taxa)
		}

		taxa -= vpl / derivada
	}

	return 0, eris.Wrapf(ErrNaoConvergiu, "%d iterações", MaxIteracoes)
}

// TIROuZero mantém a convenção de exibição antiga: 0 quando não há taxa.
func TIROuZero(fluxos []float64, chute float64) float64 {
	tir, err := CalcularTIR(fluxos, chute)
	if err != nil {
		return 0
	}
	return tir
}

// TaxaAnual converte uma taxa mensal percentual na taxa anual equivalente.
func TaxaAnual(mensal float64) float64 {
	return (math.Pow(1+mensal/100, 12) - 1) * 100
}

func validarFluxo(fluxos []float64) error {
	if len(fluxos) < 2 {
		return eris.Wrapf(ErrFluxoDegenerado, "%d período(s)", len(fluxos))
	}
	var temPositivo, temNegativo bool
	for _, f := range fluxos {
		switch {
		case f > 0:
			temPositivo = true
		case f < 0:
			temNegativo = true
		}
	}
	if !temPositivo || !temNegativo {
		return eris.Wrap(ErrFluxoDegenerado, "fluxo sem troca de sinal")
	}
	return nil
}
