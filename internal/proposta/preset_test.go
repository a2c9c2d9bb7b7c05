package proposta

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAplicarPreset(t *testing.T) {
	t.Parallel()

	d := DadosProposta{
		ValorTotal:         dec("500000"),
		EntradaValor:       decimal.NewNullDecimal(dec("12345")),
		EntradaPercent:     dec("2.469"),
		DuranteObraPercent: dec("1"),
		ChavesPercent:      dec("1"),
		SplitPreset:        "30-30-40",
	}

	got, err := AplicarPreset(d)
	require.NoError(t, err)

	assertDecimal(t, "30", got.EntradaPercent)
	assertDecimal(t, "30", got.DuranteObraPercent)
	assertDecimal(t, "40", got.ChavesPercent)
	require.True(t, got.EntradaValor.Valid)
	assertDecimal(t, "150000", got.EntradaValor.Decimal)

	// a entrada não é alterada
	assertDecimal(t, "12345", d.EntradaValor.Decimal)
}

func TestAplicarPreset_Custom(t *testing.T) {
	t.Parallel()

	for _, preset := range []string{PresetCustom, ""} {
		d := dadosExemplo(ChavesAVista)
		d.SplitPreset = preset
		d.EntradaPercent = dec("17")
		d.DuranteObraPercent = dec("33")

		got, err := AplicarPreset(d)
		require.NoError(t, err)
		assert.Equal(t, d, got, "preset %q", preset)
	}
}

func TestAplicarPreset_ValorTotalZeroMantemEntrada(t *testing.T) {
	t.Parallel()

	d := DadosProposta{
		EntradaValor: decimal.NewNullDecimal(dec("5000")),
		SplitPreset:  "20-40-40",
	}
	got, err := AplicarPreset(d)
	require.NoError(t, err)
	assertDecimal(t, "20", got.EntradaPercent)
	assertDecimal(t, "5000", got.EntradaValor.Decimal)
}

func TestAplicarPreset_Invalido(t *testing.T) {
	t.Parallel()

	for _, preset := range []string{"50-50", "10-45-46", "a-b-c"} {
		d := dadosExemplo(ChavesAVista)
		d.SplitPreset = preset
		_, err := AplicarPreset(d)
		assert.ErrorIs(t, err, ErrPresetInvalido, preset)
	}
}

func TestAplicarPreset_SeguidoDeCalcular(t *testing.T) {
	t.Parallel()

	d := dadosExemplo(ChavesFinanciamento)
	d.SplitPreset = "20-30-50"
	d, err := AplicarPreset(d)
	require.NoError(t, err)

	v := Calcular(d, dataBase)
	assertDecimal(t, "196000", v.EntradaValor)
	assertDecimal(t, "20", v.EntradaPercent)
	assertDecimal(t, "294000", v.DuranteObraTotal)
	assertDecimal(t, "490000", v.ChavesTotal)
}

func TestPresets(t *testing.T) {
	t.Parallel()

	lista := Presets()
	assert.Contains(t, lista, "10-45-45")
	assert.NotContains(t, lista, PresetCustom)

	lista[0] = "alterado"
	assert.Equal(t, "10-45-45", Presets()[0])
}
