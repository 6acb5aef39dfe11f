package relatorio

import (
	"testing"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/estabelecimento"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

func leadConvertido(codigo string, arcadas int) lead.Lead {
	return lead.Lead{Status: lead.StatusConvertido, EstabelecimentoCodigo: codigo, ArcadasVendidas: &arcadas}
}

func TestAgregar(t *testing.T) {
	t.Run("zero leads produz taxa zero", func(t *testing.T) {
		e := Agregar(nil, nil)
		if e.TaxaConversao != 0 {
			t.Errorf("taxa esperada 0, veio %f", e.TaxaConversao)
		}
		if e.TotalLeads != 0 || e.TotalComissoes != 0 {
			t.Errorf("agregado vazio esperado, veio %+v", e)
		}
	})

	t.Run("contagens por status e taxa de conversão", func(t *testing.T) {
		leads := []lead.Lead{
			leadConvertido("EST-01", 3),
			leadConvertido("EST-01", 2),
			{Status: lead.StatusNovo},
			{Status: lead.StatusAgendado},
			{Status: lead.StatusPerdido},
		}
		e := Agregar(leads, nil)

		if e.TotalLeads != 5 || e.Convertidos != 2 || e.Pendentes != 2 || e.Perdidos != 1 {
			t.Errorf("contagens incorretas: %+v", e)
		}
		if e.TaxaConversao != 40 {
			t.Errorf("taxa esperada 40, veio %f", e.TaxaConversao)
		}
		if e.TotalArcadas != 5 {
			t.Errorf("arcadas esperadas 5, veio %d", e.TotalArcadas)
		}
	})

	t.Run("lead convertido sem arcadas conta como uma", func(t *testing.T) {
		leads := []lead.Lead{{Status: lead.StatusConvertido}}
		if e := Agregar(leads, nil); e.TotalArcadas != 1 {
			t.Errorf("arcadas esperadas 1, veio %d", e.TotalArcadas)
		}
	})

	t.Run("comissões canceladas ficam fora dos totais", func(t *testing.T) {
		comissoes := []comissao.Comissao{
			{Valor: 750, Status: comissao.StatusPaga},
			{Valor: 1500, Status: comissao.StatusPendente},
			{Valor: 9999, Status: comissao.StatusCancelada},
		}
		e := Agregar(nil, comissoes)

		if e.TotalComissoes != 2250 {
			t.Errorf("total esperado 2250, veio %f", e.TotalComissoes)
		}
		if e.ComissoesPagas != 750 || e.ComissoesAPagar != 1500 {
			t.Errorf("parcelas incorretas: %+v", e)
		}
	})

	t.Run("resultado não depende da ordem dos dados", func(t *testing.T) {
		leads := []lead.Lead{
			leadConvertido("EST-01", 3),
			{Status: lead.StatusNovo},
			{Status: lead.StatusPerdido},
		}
		invertido := []lead.Lead{leads[2], leads[1], leads[0]}

		if Agregar(leads, nil) != Agregar(invertido, nil) {
			t.Error("agregação deveria ser invariante à ordem")
		}
	})
}

func TestReceitaPorEstabelecimento(t *testing.T) {
	cfgA := estabelecimento.ConfiguracaoPadrao(1, "EST-A")
	cfgA.ValorPorArcada = 900
	cfgs := map[string]estabelecimento.ConfiguracaoComissao{"EST-A": cfgA}

	leads := []lead.Lead{
		leadConvertido("EST-A", 2),
		leadConvertido("EST-A", 1),
		leadConvertido("EST-B", 4),
		{Status: lead.StatusNovo, EstabelecimentoCodigo: "EST-A"},
	}

	receita := ReceitaPorEstabelecimento(leads, cfgs)

	if receita["EST-A"] != 2700 {
		t.Errorf("EST-A com taxa própria esperado 2700, veio %f", receita["EST-A"])
	}
	// EST-B não tem configuração: aplica a taxa padrão.
	if receita["EST-B"] != 4*estabelecimento.PadraoValorPorArcada {
		t.Errorf("EST-B com taxa padrão esperado %f, veio %f", 4*estabelecimento.PadraoValorPorArcada, receita["EST-B"])
	}

	total := ReceitaTotal(leads, cfgs)
	if total != receita["EST-A"]+receita["EST-B"] {
		t.Errorf("receita total inconsistente: %f", total)
	}
}
