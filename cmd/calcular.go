package main

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/AlvoBR/api-propostas/internal/proposta"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	calcularAplicarPreset bool
	calcularConcorrencia  int
)

var calcularCmd = &cobra.Command{
	Use:   "calcular <arquivo.yaml>...",
	Short: "Calcula cronograma, fluxos e cenários de arquivos de proposta",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return calcularArquivos(cmd.Context(), cmd.OutOrStdout(), args, calcularAplicarPreset, calcularConcorrencia, time.Now())
	},
}

func init() {
	calcularCmd.Flags().BoolVar(&calcularAplicarPreset, "aplicar-preset", false, "sincroniza os percentuais com o splitPreset antes de calcular")
	calcularCmd.Flags().IntVar(&calcularConcorrencia, "concorrencia", 4, "arquivos processados em paralelo")
	rootCmd.AddCommand(calcularCmd)
}

// calcularArquivos processa os arquivos em paralelo e imprime na ordem dos
// argumentos. Um arquivo com erro não interrompe os demais.
func calcularArquivos(ctx context.Context, w io.Writer, paths []string, aplicarPreset bool, concorrencia int, agora time.Time) error {
	saidas := make([]bytes.Buffer, len(paths))
	var falhas atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concorrencia, 1))

	for i, path := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			log := zap.L().With(zap.String("arquivo", path))

			res, err := calcularArquivo(path, aplicarPreset, agora)
			if err != nil {
				falhas.Add(1)
				log.Error("falha ao calcular proposta", zap.Error(err))
				return nil
			}

			imprimirResultado(&saidas[i], nomeBase(path), res)
			log.Debug("proposta calculada", zap.Int("eventos", len(res.Valores.Cronograma)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "calcular")
	}

	for i := range saidas {
		if saidas[i].Len() == 0 {
			continue
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return eris.Wrap(err, "calcular: escrever saída")
			}
		}
		if _, err := saidas[i].WriteTo(w); err != nil {
			return eris.Wrap(err, "calcular: escrever saída")
		}
	}

	if n := falhas.Load(); n > 0 {
		return eris.Errorf("calcular: %d de %d arquivo(s) com erro", n, len(paths))
	}
	return nil
}

func calcularArquivo(path string, aplicarPreset bool, agora time.Time) (*proposta.Resultado, error) {
	req, err := lerProposta(path)
	if err != nil {
		return nil, err
	}
	if aplicarPreset {
		if err := aplicarPresetArquivo(&req); err != nil {
			return nil, eris.Wrapf(err, "preset de %s", path)
		}
	}
	return proposta.Processar(req.CalculoRequest, agora)
}
