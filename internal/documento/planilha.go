package documento

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"
)

const (
	formatoMoeda = `"R$" #,##0.00`
	formatoPct   = `0.00"%"`
)

// GerarPlanilha grava a proposta em xlsx com as abas Resumo, Cronograma e Cenarios.
func GerarPlanilha(w io.Writer, p *Proposta) error {
	f := xlsx.NewFile()

	if err := abaResumo(f, p); err != nil {
		return err
	}
	if err := abaCronograma(f, p); err != nil {
		return err
	}
	if len(p.Resultado.Cenarios) > 0 {
		if err := abaCenarios(f, p); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "documento: write xlsx")
	}
	return nil
}

func abaResumo(f *xlsx.File, p *Proposta) error {
	sheet, err := f.AddSheet("Resumo")
	if err != nil {
		return eris.Wrap(err, "documento: add sheet Resumo")
	}
	cab := p.Cabecalho
	v := p.Resultado.Valores

	texto := func(rotulo, valor string) {
		row := sheet.AddRow()
		row.AddCell().SetString(rotulo)
		row.AddCell().SetString(valor)
	}
	valor := func(rotulo string, d decimal.Decimal) {
		row := sheet.AddRow()
		row.AddCell().SetString(rotulo)
		row.AddCell().SetFloatWithFormat(d.InexactFloat64(), formatoMoeda)
	}

	texto("Proposta", p.NumeroCurto())
	texto("Emissão", p.Emissao.Format(layoutDataBR))
	texto("Validade", p.Validade.Format(layoutDataBR))
	texto("Cliente", cab.Cliente)
	texto("Empreendimento", cab.Empreendimento)
	texto("Consultor", cab.Consultor)
	sheet.AddRow()
	valor("Valor total", v.Total)
	valor("Entrada", v.EntradaValor)
	row := sheet.AddRow()
	row.AddCell().SetString("Entrada (%)")
	row.AddCell().SetFloatWithFormat(v.EntradaPercent.InexactFloat64(), formatoPct)
	valor("Durante a obra", v.DuranteObraTotal)
	valor("Parcela de obra", v.DuranteObraParcela)
	valor("Chaves", v.ChavesTotal)
	valor("Investimento até as chaves", v.ValorInvestidoReal)
	return nil
}

func abaCronograma(f *xlsx.File, p *Proposta) error {
	sheet, err := f.AddSheet("Cronograma")
	if err != nil {
		return eris.Wrap(err, "documento: add sheet Cronograma")
	}

	cabecalhoPlanilha(sheet, "Parcela", "Vencimento", "Mês", "Valor")
	for _, e := range p.Resultado.Valores.Cronograma {
		row := sheet.AddRow()
		row.AddCell().SetString(e.Tipo)
		row.AddCell().SetString(e.Data.Format(layoutDataBR))
		row.AddCell().SetInt(e.Mes)
		row.AddCell().SetFloatWithFormat(e.Valor.InexactFloat64(), formatoMoeda)
	}

	// fluxo mensal usado no cálculo da TIR
	sheet.AddRow()
	cabecalhoPlanilha(sheet, "Mês", "Fluxo")
	for mes, v := range p.Resultado.Fluxos {
		row := sheet.AddRow()
		row.AddCell().SetInt(mes)
		row.AddCell().SetFloatWithFormat(v, formatoMoeda)
	}
	return nil
}

func abaCenarios(f *xlsx.File, p *Proposta) error {
	sheet, err := f.AddSheet("Cenarios")
	if err != nil {
		return eris.Wrap(err, "documento: add sheet Cenarios")
	}

	cabecalhoPlanilha(sheet, "Cenário", "Mês final", "Desembolso", "Retorno", "Lucro", "ROI", "TIR a.m.", "TIR a.a.")
	for _, c := range p.Resultado.Cenarios {
		row := sheet.AddRow()
		row.AddCell().SetString(c.Nome)
		row.AddCell().SetInt(c.MesFinal)
		row.AddCell().SetFloatWithFormat(c.Desembolso.InexactFloat64(), formatoMoeda)
		row.AddCell().SetFloatWithFormat(c.Retorno.InexactFloat64(), formatoMoeda)
		row.AddCell().SetFloatWithFormat(c.Lucro.InexactFloat64(), formatoMoeda)
		row.AddCell().SetFloatWithFormat(c.ROI.InexactFloat64(), formatoPct)
		if c.Convergiu {
			row.AddCell().SetFloatWithFormat(c.TIRMensal, formatoPct)
			row.AddCell().SetFloatWithFormat(c.TIRAnual, formatoPct)
		} else {
			row.AddCell().SetString("-")
			row.AddCell().SetString("-")
		}
	}
	return nil
}

func cabecalhoPlanilha(sheet *xlsx.Sheet, titulos ...string) {
	row := sheet.AddRow()
	for _, t := range titulos {
		cell := row.AddCell()
		cell.SetString(t)
		style := xlsx.NewStyle()
		style.Font.Bold = true
		cell.SetStyle(style)
	}
}
