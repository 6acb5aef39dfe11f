package relatorio

import (
	"testing"
	"time"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

func TestTendenciaMensal(t *testing.T) {
	agora := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	em := func(ano int, mes time.Month) time.Time {
		return time.Date(ano, mes, 10, 0, 0, 0, 0, time.UTC)
	}

	t.Run("janela do mais antigo ao mais novo incluindo o mês corrente", func(t *testing.T) {
		pontos := TendenciaMensal(nil, nil, 3, agora)

		if len(pontos) != 3 {
			t.Fatalf("3 pontos esperados, veio %d", len(pontos))
		}
		if pontos[0].Mes != "2025-04" || pontos[1].Mes != "2025-05" || pontos[2].Mes != "2025-06" {
			t.Errorf("meses incorretos: %+v", pontos)
		}
	})

	t.Run("janela cruzando a virada de ano", func(t *testing.T) {
		pontos := TendenciaMensal(nil, nil, 4, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

		if pontos[0].Mes != "2024-11" || pontos[3].Mes != "2025-02" {
			t.Errorf("virada de ano incorreta: %+v", pontos)
		}
	})

	t.Run("leads pelo created_at, conversões pelo convertido_em", func(t *testing.T) {
		convAbril := em(2025, time.April)
		maio := em(2025, time.May)
		leads := []lead.Lead{
			// Criado em março, convertido em abril: conta como lead de março e
			// conversão de abril.
			{Status: lead.StatusConvertido, ConvertidoEm: &convAbril, CreatedAt: em(2025, time.March)},
			{Status: lead.StatusNovo, CreatedAt: maio},
			// Fora da janela.
			{Status: lead.StatusNovo, CreatedAt: em(2024, time.December)},
		}

		pontos := TendenciaMensal(leads, nil, 4, agora)

		porMes := map[string]PontoMensal{}
		for _, p := range pontos {
			porMes[p.Mes] = p
		}
		if porMes["2025-03"].Leads != 1 || porMes["2025-03"].Conversoes != 0 {
			t.Errorf("março incorreto: %+v", porMes["2025-03"])
		}
		if porMes["2025-04"].Conversoes != 1 {
			t.Errorf("abril incorreto: %+v", porMes["2025-04"])
		}
		if porMes["2025-05"].Leads != 1 {
			t.Errorf("maio incorreto: %+v", porMes["2025-05"])
		}
	})

	t.Run("só comissões pagas entram na série", func(t *testing.T) {
		pagaMaio := em(2025, time.May)
		comissoes := []comissao.Comissao{
			{Valor: 750, Status: comissao.StatusPaga, PagaEm: &pagaMaio},
			{Valor: 1500, Status: comissao.StatusPendente},
			{Valor: 9999, Status: comissao.StatusCancelada, PagaEm: &pagaMaio},
		}

		pontos := TendenciaMensal(nil, comissoes, 3, agora)

		if pontos[1].Mes != "2025-05" || pontos[1].ComissoesPagas != 750 {
			t.Errorf("série de comissões incorreta: %+v", pontos)
		}
	})

	t.Run("janela inválida devolve lista vazia", func(t *testing.T) {
		if pontos := TendenciaMensal(nil, nil, 0, agora); len(pontos) != 0 {
			t.Errorf("lista vazia esperada, veio %+v", pontos)
		}
	})

	t.Run("janela gigante é truncada no teto", func(t *testing.T) {
		pontos := TendenciaMensal(nil, nil, 1_000_000, agora)

		if len(pontos) != MaxMeses {
			t.Fatalf("%d pontos esperados, veio %d", MaxMeses, len(pontos))
		}
		if pontos[len(pontos)-1].Mes != "2025-06" {
			t.Errorf("último mês deveria ser o corrente, veio %s", pontos[len(pontos)-1].Mes)
		}
	})
}
