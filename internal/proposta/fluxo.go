package proposta

// MaxPeriodos é o último índice que um vetor de fluxos pode ter. Cobre
// obra e pós-chaves no limite mais o maior horizonte de projeção.
const MaxPeriodos = 4 * MaxMeses

// MontarFluxos achata o cronograma num vetor mensal de saídas (negativas).
// O índice 0 é a data base; eventos no mesmo mês somam. Eventos depois de
// ultimoMes estendem o vetor até MaxPeriodos; além disso são ignorados.
// Entradas de caixa ficam a cargo de quem chama.
func MontarFluxos(cronograma []Evento, ultimoMes int) []float64 {
	tamanho := min(max(ultimoMes, 0), MaxPeriodos) + 1
	for _, e := range cronograma {
		if e.Mes >= tamanho && e.Mes <= MaxPeriodos {
			tamanho = e.Mes + 1
		}
	}

	fluxos := make([]float64, tamanho)
	for _, e := range cronograma {
		if e.Mes >= tamanho {
			continue
		}
		fluxos[max(e.Mes, 0)] -= e.Valor.InexactFloat64()
	}
	return fluxos
}
