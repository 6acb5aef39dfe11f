// internal/relatorio/tendencia.go
package relatorio

import (
	"time"

	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
)

// MaxMeses limita a janela da tendência; a série aloca um ponto por mês.
const MaxMeses = 36

// PontoMensal é um mês do gráfico de tendência.
type PontoMensal struct {
	Mes            string  `json:"mes"` // formato 2006-01
	Leads          int     `json:"leads"`
	Conversoes     int     `json:"conversoes"`
	ComissoesPagas float64 `json:"comissoesPagas"`
}

// TendenciaMensal agrega leads e comissões por mês-calendário: leads pelo
// created_at, conversões pelo convertido_em, comissões pelo paga_em. Devolve
// os últimos `meses` meses incluindo o corrente, do mais antigo ao mais novo.
// Janelas acima de MaxMeses são truncadas.
func TendenciaMensal(leads []lead.Lead, comissoes []comissao.Comissao, meses int, agora time.Time) []PontoMensal {
	if meses < 1 {
		return []PontoMensal{}
	}
	if meses > MaxMeses {
		meses = MaxMeses
	}

	const layout = "2006-01"
	indice := make(map[string]*PontoMensal, meses)
	out := make([]PontoMensal, meses)
	base := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	for i := 0; i < meses; i++ {
		mes := base.AddDate(0, i-(meses-1), 0).Format(layout)
		out[i] = PontoMensal{Mes: mes}
		indice[mes] = &out[i]
	}

	for _, l := range leads {
		if p, ok := indice[l.CreatedAt.Format(layout)]; ok {
			p.Leads++
		}
		if l.ConvertidoEm != nil {
			if p, ok := indice[l.ConvertidoEm.Format(layout)]; ok {
				p.Conversoes++
			}
		}
	}
	for _, c := range comissoes {
		if c.Status != comissao.StatusPaga || c.PagaEm == nil {
			continue
		}
		if p, ok := indice[c.PagaEm.Format(layout)]; ok {
			p.ComissoesPagas += c.Valor
		}
	}

	return out
}
