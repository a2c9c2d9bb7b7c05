package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlvoBR/api-propostas/internal/documento"
	"github.com/AlvoBR/api-propostas/internal/moeda"
	"github.com/AlvoBR/api-propostas/internal/proposta"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// lerProposta carrega um arquivo yaml de proposta. O mesmo formato serve
// para calcular e exportar; cabecalho é opcional.
func lerProposta(path string) (documento.ExportacaoRequest, error) {
	var req documento.ExportacaoRequest

	f, err := os.Open(path)
	if err != nil {
		return req, eris.Wrapf(err, "abrir %s", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return req, eris.Wrapf(err, "ler %s", path)
	}
	return req, nil
}

// aplicarPresetArquivo sincroniza os percentuais com o splitPreset do arquivo.
func aplicarPresetArquivo(req *documento.ExportacaoRequest) error {
	dados, err := proposta.AplicarPreset(req.ParaDados())
	if err != nil {
		return err
	}
	req.DadosDTO = proposta.NovoDadosDTO(dados)
	return nil
}

// imprimirResultado escreve o resumo e o cronograma em texto.
func imprimirResultado(w io.Writer, nome string, res *proposta.Resultado) {
	v := res.Valores

	fmt.Fprintf(w, "== %s (base %s)\n", nome, res.DataBase.Format("02/01/2006"))
	fmt.Fprintf(w, "Valor total:      %s\n", moeda.BRL(v.Total))
	fmt.Fprintf(w, "Entrada:          %s (%s)\n", moeda.BRL(v.EntradaValor), moeda.Pct(v.EntradaPercent.InexactFloat64()))
	fmt.Fprintf(w, "Durante a obra:   %s (parcela %s)\n", moeda.BRL(v.DuranteObraTotal), moeda.BRL(v.DuranteObraParcela))
	fmt.Fprintf(w, "Chaves:           %s\n", moeda.BRL(v.ChavesTotal))
	fmt.Fprintf(w, "Investido real:   %s\n", moeda.BRL(v.ValorInvestidoReal))
	fmt.Fprintln(w)

	for _, e := range v.Cronograma {
		fmt.Fprintf(w, "%-20s %s  mês %3d  %s\n", e.Tipo, e.Data.Format("02/01/2006"), e.Mes, moeda.BRL(e.Valor))
	}

	for _, c := range res.Cenarios {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (mês %d)\n", c.Nome, c.MesFinal)
		fmt.Fprintf(w, "  desembolso %s, retorno %s, lucro %s, ROI %s\n",
			moeda.BRL(c.Desembolso), moeda.BRL(c.Retorno), moeda.BRL(c.Lucro), moeda.Pct(c.ROI.InexactFloat64()))
		if c.Convergiu {
			fmt.Fprintf(w, "  TIR %s a.m. / %s a.a.\n", moeda.Pct(c.TIRMensal), moeda.Pct(c.TIRAnual))
		} else {
			fmt.Fprintln(w, "  TIR não calculada")
		}
	}
}

// nomeBase tira diretório e extensão do caminho.
func nomeBase(path string) string {
	nome := filepath.Base(path)
	return strings.TrimSuffix(nome, filepath.Ext(nome))
}
