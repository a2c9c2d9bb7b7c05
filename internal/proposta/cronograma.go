package proposta

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// AdicionarMeses soma n meses à data com a normalização do time.AddDate
// (31/01 + 1 mês = 03/03 em ano não bissexto).
func AdicionarMeses(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// limitarMeses leva n para o intervalo [0, MaxMeses].
func limitarMeses(n int) int {
	return min(max(n, 0), MaxMeses)
}

// percentual devolve base * pct / 100.
func percentual(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(cem)
}

// Calcular deriva totais e cronograma a partir dos dados da proposta.
// É puro: a mesma entrada e a mesma data base geram o mesmo resultado.
// Contagens acima de MaxMeses são truncadas; Valida rejeita antes.
func Calcular(d DadosProposta, hoje time.Time) Valores {
	total := d.ValorTotal

	// 1) entrada: valor informado prevalece, senão vem do percentual
	entradaValor := percentual(total, d.EntradaPercent)
	if d.EntradaValor.Valid {
		entradaValor = d.EntradaValor.Decimal
	}
	entradaPercent := decimal.Zero
	if total.IsPositive() {
		entradaPercent = entradaValor.Mul(cem).Div(total)
	}

	// 2) obra
	n := limitarMeses(d.DuranteObraParcelas)
	duranteObraTotal := percentual(total, d.DuranteObraPercent)
	duranteObraParcela := decimal.Zero
	if n > 0 {
		duranteObraParcela = duranteObraTotal.Div(decimal.NewFromInt(int64(n)))
	}

	// 3) chaves
	chavesTotal := percentual(total, d.ChavesPercent)
	forma := d.forma()

	// 4) o saldo financiado não sai do bolso do cliente
	valorInvestidoReal := entradaValor.Add(duranteObraTotal)
	if forma != ChavesFinanciamento {
		valorInvestidoReal = valorInvestidoReal.Add(chavesTotal)
	}

	// 5) cronograma
	var cronograma []Evento
	if entradaValor.IsPositive() {
		cronograma = append(cronograma, Evento{Tipo: "Entrada", Data: hoje, Valor: entradaValor, Mes: 0})
	}
	for i := 1; i <= n; i++ {
		cronograma = append(cronograma, Evento{
			Tipo:  fmt.Sprintf("Obra %d/%d", i, n),
			Data:  AdicionarMeses(hoje, i),
			Valor: duranteObraParcela,
			Mes:   i,
		})
	}

	switch {
	case forma == ChavesAVista && chavesTotal.IsPositive():
		cronograma = append(cronograma, Evento{
			Tipo:  "Chaves (à vista)",
			Data:  AdicionarMeses(hoje, n+1),
			Valor: chavesTotal,
			Mes:   n + 1,
		})
	case forma == ChavesPosConstrutora && chavesTotal.IsPositive():
		parcelas := limitarMeses(d.ChavesPosParcelas)
		valorParcela := chavesTotal.Div(decimal.NewFromInt(int64(max(parcelas, 1))))
		for i := 1; i <= parcelas; i++ {
			cronograma = append(cronograma, Evento{
				Tipo:  fmt.Sprintf("Pós-chaves %d/%d", i, parcelas),
				Data:  AdicionarMeses(hoje, n+i),
				Valor: valorParcela,
				Mes:   n + i,
			})
		}
	}

	for idx, b := range d.Baloes {
		if !b.Valor.IsPositive() {
			continue
		}
		mes := limitarMeses(b.Mes)
		cronograma = append(cronograma, Evento{
			Tipo:  fmt.Sprintf("Balão %d", idx+1),
			Data:  AdicionarMeses(hoje, mes),
			Valor: b.Valor,
			Mes:   mes,
		})
	}

	// 6) ordena por mês mantendo a ordem de inserção nos empates
	slices.SortStableFunc(cronograma, func(a, b Evento) int {
		return cmp.Compare(a.Mes, b.Mes)
	})

	return Valores{
		Total:              total,
		EntradaValor:       entradaValor,
		EntradaPercent:     entradaPercent,
		DuranteObraTotal:   duranteObraTotal,
		DuranteObraParcela: duranteObraParcela,
		ChavesTotal:        chavesTotal,
		ValorInvestidoReal: valorInvestidoReal,
		Cronograma:         cronograma,
	}
}
