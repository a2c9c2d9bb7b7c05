package proposta

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// PresetCustom mantém os percentuais editados à mão.
const PresetCustom = "custom"

var ErrPresetInvalido = eris.New("preset de divisão inválido")

// presets no formato Entrada-Obra-Chaves.
var presets = []string{
	"10-45-45",
	"20-40-40",
	"30-30-40",
	"10-30-60",
	"20-30-50",
	"30-40-30",
}

// Presets lista as divisões disponíveis (sem o custom).
func Presets() []string {
	return slices.Clone(presets)
}

// AplicarPreset sobrescreve os três percentuais pelo preset escolhido e
// recalcula o valor da entrada. No modo custom nada muda.
func AplicarPreset(d DadosProposta) (DadosProposta, error) {
	if d.SplitPreset == "" || d.SplitPreset == PresetCustom {
		return d, nil
	}
	if !slices.Contains(presets, d.SplitPreset) {
		return d, eris.Wrapf(ErrPresetInvalido, "%q", d.SplitPreset)
	}

	partes := strings.Split(d.SplitPreset, "-")
	pcts := make([]decimal.Decimal, len(partes))
	for i, p := range partes {
		v, err := decimal.NewFromString(p)
		if err != nil {
			return d, eris.Wrapf(ErrPresetInvalido, "%q", d.SplitPreset)
		}
		pcts[i] = v
	}

	d.EntradaPercent = pcts[0]
	d.DuranteObraPercent = pcts[1]
	d.ChavesPercent = pcts[2]
	if !d.ValorTotal.IsZero() {
		d.EntradaValor = decimal.NewNullDecimal(percentual(d.ValorTotal, pcts[0]))
	}
	return d, nil
}
