package moeda

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formata o valor em reais, ex.: R$ 980.000,00
func BRL(v decimal.Decimal) string {
	f := v.Round(2).InexactFloat64()
	sinal := ""
	if f < 0 {
		sinal = "-"
		f = -f
	}
	return sinal + "R$ " + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// Pct formata um percentual com no máximo duas casas, ex.: 12,5%
// Valores não finitos viram 0%.
func Pct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + "%"
}

// ParaNumero converte texto digitado ("R$ 1.234,56") em decimal.
// Texto vazio ou inválido vira zero.
func ParaNumero(s string) decimal.Decimal {
	limpo := strings.NewReplacer("R$", "", " ", "", "\u00a0", "", ".", "").Replace(strings.TrimSpace(s))
	limpo = strings.Replace(limpo, ",", ".", 1)
	if limpo == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(limpo)
	if err != nil {
		return decimal.Zero
	}
	return v
}
