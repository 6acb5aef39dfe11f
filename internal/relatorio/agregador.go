// internal/relatorio/agregador.go
package relatorio

import (
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

// Estatisticas é o rollup exibido nos painéis de consultor, gerente,
// estabelecimento e clínica. Função pura dos leads e comissões recebidos.
type Estatisticas struct {
	TotalLeads      int     `json:"totalLeads"`
	Convertidos     int     `json:"convertidos"`
	Pendentes       int     `json:"pendentes"`
	Perdidos        int     `json:"perdidos"`
	TaxaConversao   float64 `json:"taxaConversao"`
	TotalArcadas    int     `json:"totalArcadas"`
	TotalComissoes  float64 `json:"totalComissoes"`
	ComissoesPagas  float64 `json:"comissoesPagas"`
	ComissoesAPagar float64 `json:"comissoesAPagar"`
}

// Agregar computa as estatísticas de um conjunto de leads e comissões.
// Zero leads produz taxa 0, nunca NaN.
func Agregar(leads []lead.Lead, comissoes []comissao.Comissao) Estatisticas {
	var e Estatisticas
	e.TotalLeads = len(leads)

	for _, l := range leads {
		switch {
		case l.Status == lead.StatusConvertido:
			e.Convertidos++
			e.TotalArcadas += l.Arcadas()
		case l.Status == lead.StatusPerdido:
			e.Perdidos++
		case l.Pendente():
			e.Pendentes++
		}
	}

	if e.TotalLeads > 0 {
		e.TaxaConversao = float64(e.Convertidos) / float64(e.TotalLeads) * 100
	}

	for _, c := range comissoes {
		switch c.Status {
		case comissao.StatusPaga:
			e.TotalComissoes += c.Valor
			e.ComissoesPagas += c.Valor
		case comissao.StatusPendente:
			e.TotalComissoes += c.Valor
			e.ComissoesAPagar += c.Valor
		}
	}

	return e
}

// ReceitaPorEstabelecimento soma a receita (arcadas convertidas × taxa do
// estabelecimento) usando a taxa de CADA estabelecimento, nunca uma taxa
// global. Estabelecimentos sem configuração própria caem na padrão.
func ReceitaPorEstabelecimento(leads []lead.Lead, cfgs map[string]estabelecimento.ConfiguracaoComissao) map[string]float64 {
	receita := make(map[string]float64)
	for _, l := range leads {
		if l.Status != lead.StatusConvertido {
			continue
		}
		taxa := estabelecimento.PadraoValorPorArcada
		if cfg, ok := cfgs[l.EstabelecimentoCodigo]; ok {
			taxa = cfg.ValorPorArcada
		}
		receita[l.EstabelecimentoCodigo] += float64(l.Arcadas()) * taxa
	}
	return receita
}

// ReceitaTotal reduz o mapa de ReceitaPorEstabelecimento a um único valor.
func ReceitaTotal(leads []lead.Lead, cfgs map[string]estabelecimento.ConfiguracaoComissao) float64 {
	var total float64
	for _, v := range ReceitaPorEstabelecimento(leads, cfgs) {
		total += v
	}
	return total
}
