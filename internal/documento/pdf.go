package documento

import (
	"fmt"
	"io"

	"github.com/AlvoBR/api-propostas/internal/moeda"
	"github.com/AlvoBR/api-propostas/internal/proposta"
	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
)

const layoutDataBR = "02/01/2006"

// cores da marca
var (
	corTexto    = [3]int{58, 58, 58}
	corDestaque = [3]int{52, 116, 126}
)

// GerarPDF renderiza a proposta para o cliente.
func GerarPDF(w io.Writer, p *Proposta) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cab := p.Cabecalho
	v := p.Resultado.Valores

	pdf.SetTitle(tr("Proposta "+p.NumeroCurto()), false)
	pdf.SetAuthor(tr(cab.Empresa), false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(corTexto[0], corTexto[1], corTexto[2])
		rodape := fmt.Sprintf("%s | %s | Página %d/{nb}", cab.Empresa, cab.SiteURL, pdf.PageNo())
		pdf.CellFormat(0, 8, tr(rodape), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// cabeçalho
	pdf.SetTextColor(corTexto[0], corTexto[1], corTexto[2])
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(120, 10, tr(cab.Empresa), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr("Proposta nº "+p.NumeroCurto()), "", 2, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr("Emissão: "+p.Emissao.Format(layoutDataBR)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	secao(pdf, tr, "Cliente")
	linha(pdf, tr, "Nome", cab.Cliente)
	linha(pdf, tr, "Telefone", cab.ClienteTelefone)
	linha(pdf, tr, "E-mail", cab.ClienteEmail)

	secao(pdf, tr, "Imóvel")
	linha(pdf, tr, "Empreendimento", cab.Empreendimento)
	linha(pdf, tr, "Endereço", cab.Endereco)
	linha(pdf, tr, "Construtora", cab.Construtora)
	linha(pdf, tr, "Tipo", cab.Tipo)
	if cab.Area.IsPositive() {
		linha(pdf, tr, "Área privativa", cab.Area.StringFixed(2)+" m²")
	}
	linha(pdf, tr, "Entrega", cab.Entrega)

	secao(pdf, tr, "Condições de pagamento")
	linha(pdf, tr, "Valor total", moeda.BRL(v.Total))
	linha(pdf, tr, "Entrada", fmt.Sprintf("%s (%s)", moeda.BRL(v.EntradaValor), moeda.Pct(v.EntradaPercent.InexactFloat64())))
	if n := p.Resultado.Dados.DuranteObraParcelas; n > 0 {
		linha(pdf, tr, "Durante a obra", fmt.Sprintf("%s em %dx de %s", moeda.BRL(v.DuranteObraTotal), n, moeda.BRL(v.DuranteObraParcela)))
	} else {
		linha(pdf, tr, "Durante a obra", moeda.BRL(v.DuranteObraTotal))
	}
	linha(pdf, tr, "Chaves", fmt.Sprintf("%s (%s)", moeda.BRL(v.ChavesTotal), descreverForma(p)))
	linha(pdf, tr, "Investimento até as chaves", moeda.BRL(v.ValorInvestidoReal))

	secao(pdf, tr, "Cronograma")
	tabelaCronograma(pdf, tr, p)

	if len(p.Resultado.Cenarios) > 0 {
		secao(pdf, tr, "Projeções")
		tabelaCenarios(pdf, tr, p)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	contato := fmt.Sprintf("Consultor: %s | %s | %s", cab.Consultor, cab.Telefone, cab.Email)
	pdf.MultiCell(0, 5, tr(contato), "", "L", false)
	pdf.MultiCell(0, 5, tr("Proposta válida até "+p.Validade.Format(layoutDataBR)+". Valores sujeitos à disponibilidade da unidade."), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "documento: render pdf")
	}
	return nil
}

func descreverForma(p *Proposta) string {
	switch p.Resultado.Dados.ChavesForma {
	case proposta.ChavesAVista:
		return "à vista na entrega"
	case proposta.ChavesPosConstrutora:
		return fmt.Sprintf("%dx direto com a construtora", p.Resultado.Dados.ChavesPosParcelas)
	default:
		return "financiamento bancário"
	}
}

func secao(pdf *fpdf.Fpdf, tr func(string) string, titulo string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(corDestaque[0], corDestaque[1], corDestaque[2])
	pdf.CellFormat(0, 7, tr(titulo), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(corTexto[0], corTexto[1], corTexto[2])
	pdf.Ln(1)
}

func linha(pdf *fpdf.Fpdf, tr func(string) string, rotulo, valor string) {
	if valor == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 6, tr(rotulo), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(valor), "", 1, "L", false, 0, "")
}

func cabecalhoTabela(pdf *fpdf.Fpdf, tr func(string) string, larguras []float64, titulos []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(corDestaque[0], corDestaque[1], corDestaque[2])
	pdf.SetTextColor(255, 255, 255)
	for i, t := range titulos {
		pdf.CellFormat(larguras[i], 7, tr(t), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(corTexto[0], corTexto[1], corTexto[2])
	pdf.SetFont("Helvetica", "", 9)
}

func tabelaCronograma(pdf *fpdf.Fpdf, tr func(string) string, p *Proposta) {
	larguras := []float64{70, 35, 25, 50}
	titulos := []string{"Parcela", "Vencimento", "Mês", "Valor"}
	cabecalhoTabela(pdf, tr, larguras, titulos)

	_, alturaPagina := pdf.GetPageSize()
	_, _, _, margemInferior := pdf.GetMargins()
	for i, e := range p.Resultado.Valores.Cronograma {
		if pdf.GetY()+6 > alturaPagina-margemInferior {
			pdf.AddPage()
			cabecalhoTabela(pdf, tr, larguras, titulos)
		}
		zebra := i%2 == 1
		pdf.SetFillColor(240, 244, 245)
		pdf.CellFormat(larguras[0], 6, tr(e.Tipo), "LR", 0, "L", zebra, 0, "")
		pdf.CellFormat(larguras[1], 6, e.Data.Format(layoutDataBR), "LR", 0, "C", zebra, 0, "")
		pdf.CellFormat(larguras[2], 6, fmt.Sprint(e.Mes), "LR", 0, "C", zebra, 0, "")
		pdf.CellFormat(larguras[3], 6, tr(moeda.BRL(e.Valor)), "LR", 1, "R", zebra, 0, "")
	}
	pdf.CellFormat(sum(larguras), 0, "", "T", 1, "", false, 0, "")
}

func tabelaCenarios(pdf *fpdf.Fpdf, tr func(string) string, p *Proposta) {
	larguras := []float64{40, 35, 35, 25, 22, 23}
	cabecalhoTabela(pdf, tr, larguras, []string{"Cenário", "Desembolso", "Retorno", "ROI", "TIR a.m.", "TIR a.a."})

	for _, c := range p.Resultado.Cenarios {
		tirMensal, tirAnual := "-", "-"
		if c.Convergiu {
			tirMensal = moeda.Pct(c.TIRMensal)
			tirAnual = moeda.Pct(c.TIRAnual)
		}
		pdf.CellFormat(larguras[0], 6, tr(c.Nome), "1", 0, "L", false, 0, "")
		pdf.CellFormat(larguras[1], 6, tr(moeda.BRL(c.Desembolso)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(larguras[2], 6, tr(moeda.BRL(c.Retorno)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(larguras[3], 6, tr(moeda.Pct(c.ROI.InexactFloat64())), "1", 0, "R", false, 0, "")
		pdf.CellFormat(larguras[4], 6, tr(tirMensal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(larguras[5], 6, tr(tirAnual), "1", 1, "R", false, 0, "")
	}
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
