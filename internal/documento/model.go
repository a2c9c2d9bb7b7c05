package documento

import (
	"time"

	"github.com/AlvoBR/api-propostas/internal/proposta"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cabecalho traz os dados de apresentação da proposta.
type Cabecalho struct {
	Empresa         string          `json:"company" yaml:"company"`
	Consultor       string          `json:"consultor" yaml:"consultor"`
	Telefone        string          `json:"phone" yaml:"phone"`
	Email           string          `json:"email" yaml:"email"`
	SiteURL         string          `json:"siteUrl" yaml:"siteUrl"`
	Cliente         string          `json:"cliente" yaml:"cliente"`
	ClienteTelefone string          `json:"clientePhone" yaml:"clientePhone"`
	ClienteEmail    string          `json:"clienteEmail" yaml:"clienteEmail"`
	Empreendimento  string          `json:"empreendimento" yaml:"empreendimento"`
	Endereco        string          `json:"endereco" yaml:"endereco"`
	Construtora     string          `json:"construtora" yaml:"construtora"`
	Tipo            string          `json:"tipo" yaml:"tipo"`
	Area            decimal.Decimal `json:"area" yaml:"area"`
	Entrega         string          `json:"entrega" yaml:"entrega"`
	// Validade no formato 2006-01-02; vazia usa a validade padrão.
	Validade string `json:"validade" yaml:"validade"`
}

// ExportacaoRequest é o corpo de POST /propostas/pdf e /propostas/planilha.
type ExportacaoRequest struct {
	proposta.CalculoRequest `yaml:",inline"`
	Cabecalho               Cabecalho `json:"cabecalho" yaml:"cabecalho"`
}

// Proposta é o documento pronto para renderizar.
type Proposta struct {
	Numero    string
	Emissao   time.Time
	Validade  time.Time
	Cabecalho Cabecalho
	Resultado *proposta.Resultado
}

// Montar calcula a proposta e completa o cabeçalho com os padrões da empresa.
func Montar(req ExportacaoRequest, agora time.Time, padrao Cabecalho, validadeDias int) (*Proposta, error) {
	res, err := proposta.Processar(req.CalculoRequest, agora)
	if err != nil {
		return nil, err
	}

	cab := req.Cabecalho
	if cab.Empresa == "" {
		cab.Empresa = padrao.Empresa
	}
	if cab.SiteURL == "" {
		cab.SiteURL = padrao.SiteURL
	}

	validade := res.DataBase.AddDate(0, 0, validadeDias)
	if cab.Validade != "" {
		t, err := time.Parse(proposta.LayoutData, cab.Validade)
		if err == nil {
			validade = t
		}
	}

	return &Proposta{
		Numero:    uuid.New().String(),
		Emissao:   res.DataBase,
		Validade:  validade,
		Cabecalho: cab,
		Resultado: res,
	}, nil
}

// NumeroCurto é o prefixo do uuid mostrado ao cliente.
func (p *Proposta) NumeroCurto() string {
	if len(p.Numero) < 8 {
		return p.Numero
	}
	return p.Numero[:8]
}
