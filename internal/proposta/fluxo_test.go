package proposta

import (
	"math"
	"testing"

	"github.com/AlvoBR/api-propostas/internal/financeiro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMontarFluxos(t *testing.T) {
	t.Parallel()

	cronograma := []Evento{
		{Tipo: "Entrada", Mes: 0, Valor: dec("1000")},
		{Tipo: "Balão 1", Mes: 0, Valor: dec("500")},
		{Tipo: "Obra 1/2", Mes: 1, Valor: dec("250.5")},
		{Tipo: "Obra 2/2", Mes: 3, Valor: dec("250.5")},
	}

	got := MontarFluxos(cronograma, 5)
	assert.Equal(t, []float64{-1500, -250.5, 0, -250.5, 0, 0}, got)
}

func TestMontarFluxos_Bordas(t *testing.T) {
	t.Parallel()

	t.Run("vazio", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []float64{0, 0, 0}, MontarFluxos(nil, 2))
	})

	t.Run("ultimo mes negativo", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []float64{0}, MontarFluxos(nil, -7))
	})

	t.Run("evento depois do ultimo mes estende o vetor", func(t *testing.T) {
		t.Parallel()
		got := MontarFluxos([]Evento{{Mes: 4, Valor: dec("10")}}, 1)
		assert.Equal(t, []float64{0, 0, 0, 0, -10}, got)
	})

	t.Run("mes no maior int nao estoura", func(t *testing.T) {
		t.Parallel()
		got := MontarFluxos([]Evento{{Mes: math.MaxInt, Valor: dec("1")}, {Mes: 1, Valor: dec("2")}}, 0)
		assert.Equal(t, []float64{0, -2}, got)
	})

	t.Run("ultimo mes acima do teto", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, MontarFluxos(nil, math.MaxInt), MaxPeriodos+1)
	})
}

func TestMontarFluxos_AlimentaTIR(t *testing.T) {
	t.Parallel()

	v := Calcular(dadosExemplo(ChavesAVista), dataBase)
	horizonte := v.UltimoMes() + 12
	fluxos := MontarFluxos(v.Cronograma, horizonte)
	require.Len(t, fluxos, horizonte+1)

	var soma float64
	for _, f := range fluxos {
		soma += f
	}
	assert.InDelta(t, -980000, soma, 1e-6)

	fluxos[horizonte] += 1400000
	tir, err := financeiro.CalcularTIR(fluxos, 0.01)
	require.NoError(t, err)
	assert.Greater(t, tir, 0.0)
	assert.InDelta(t, 0, financeiro.VPL(fluxos, tir/100), financeiro.Precisao)
}
