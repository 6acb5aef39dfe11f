package consultor

import (
	"github.com/OdontoPrime/api-indicacoes/internal/comissao"
	"github.com/OdontoPrime/api-indicacoes/internal/lead"
	"github.com/OdontoPrime/api-indicacoes/internal/relatorio"
)

type ResumoConsultorDTO struct {
	ID               uint    `json:"id"`
	Nome             string  `json:"nome"`
	Sobrenome        string  `json:"sobrenome"`
	Email            string  `json:"email"`
	CPF              string  `json:"cpf"`
	Telefone         string  `json:"telefone"`
	Foto             string  `json:"foto"`
	TotalLeads       int     `json:"totalLeads"`
	LeadsConvertidos int     `json:"leadsConvertidos"`
	TaxaConversao    float64 `json:"taxaConversao"`
	TotalArcadas     int     `json:"totalArcadas"`
	ComissaoRecebida float64 `json:"comissaoRecebida"`
	ComissaoAReceber float64 `json:"comissaoAReceber"`
}

// Monta um DTO com os principais dados e métricas do consultor
func MontarResumoConsultorDTO(
	consultor Consultor,
	leads []lead.Lead,
	comissoes []comissao.Comissao,
) ResumoConsultorDTO {
	stats := relatorio.Agregar(leads, comissoes)

	return ResumoConsultorDTO{
		ID:               consultor.ID,
		Nome:             consultor.Nome,
		Sobrenome:        consultor.Sobrenome,
		Email:            consultor.Email,
		CPF:              consultor.CPF,
		Telefone:         consultor.Telefone,
		Foto:             consultor.Foto,
		TotalLeads:       stats.TotalLeads,
		LeadsConvertidos: stats.Convertidos,
		TaxaConversao:    stats.TaxaConversao,
		TotalArcadas:     stats.TotalArcadas,
		ComissaoRecebida: stats.ComissoesPagas,
		ComissaoAReceber: stats.ComissoesAPagar,
	}
}
