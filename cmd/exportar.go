package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/AlvoBR/api-propostas/internal/config"
	"github.com/AlvoBR/api-propostas/internal/documento"
	"github.com/AlvoBR/api-propostas/internal/moeda"
	"github.com/AlvoBR/api-propostas/internal/notificacao"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportarFormato string
	exportarSaida   string
)

var exportarCmd = &cobra.Command{
	Use:   "exportar <arquivo.yaml>",
	Short: "Gera o PDF ou a planilha de uma proposta",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saida, err := exportarArquivo(cmd.Context(), cfg, args[0], exportarFormato, exportarSaida, time.Now())
		if err != nil {
			return err
		}
		cmd.Printf("proposta gravada em %s\n", saida)
		return nil
	},
}

func init() {
	exportarCmd.Flags().StringVar(&exportarFormato, "formato", "pdf", "pdf ou xlsx")
	exportarCmd.Flags().StringVar(&exportarSaida, "saida", "", "arquivo de saída (padrão proposta-<numero>.<formato>)")
	rootCmd.AddCommand(exportarCmd)
}

// exportarArquivo gera o documento e devolve o caminho gravado.
func exportarArquivo(ctx context.Context, c *config.Config, path, formato, saida string, agora time.Time) (string, error) {
	var gerar func(io.Writer, *documento.Proposta) error
	switch formato {
	case "pdf":
		gerar = documento.GerarPDF
	case "xlsx":
		gerar = documento.GerarPlanilha
	default:
		return "", eris.Errorf("exportar: formato %q não suportado", formato)
	}

	req, err := lerProposta(path)
	if err != nil {
		return "", err
	}

	padrao := documento.Cabecalho{Empresa: c.Empresa.Nome, SiteURL: c.Empresa.Site}
	p, err := documento.Montar(req, agora, padrao, c.Proposta.ValidadeDias)
	if err != nil {
		return "", eris.Wrapf(err, "exportar %s", path)
	}

	var buf bytes.Buffer
	if err := gerar(&buf, p); err != nil {
		return "", err
	}

	if saida == "" {
		saida = documento.NomeArquivo(p, formato)
	}
	if err := os.WriteFile(saida, buf.Bytes(), 0o644); err != nil {
		return "", eris.Wrapf(err, "gravar %s", saida)
	}

	n := notificacao.NewNotificador(c.Notificacao.WebhookURL, time.Duration(c.Notificacao.TimeoutSecs)*time.Second)
	if err := n.Enviar(ctx, notificacao.PropostaGerada{
		Numero:         p.Numero,
		Cliente:        p.Cabecalho.Cliente,
		Empreendimento: p.Cabecalho.Empreendimento,
		ValorTotal:     moeda.BRL(p.Resultado.Valores.Total),
		Formato:        formato,
	}); err != nil {
		zap.L().Warn("falha ao enviar webhook", zap.String("numero", p.Numero), zap.Error(err))
	}

	return saida, nil
}
