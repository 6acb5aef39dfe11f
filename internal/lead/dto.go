// internal/lead/dto.go
package lead

type CriarLeadDTO struct {
	Nome                  string `json:"nome" validate:"required"`
	Telefone              string `json:"telefone"`
	Email                 string `json:"email" validate:"omitempty,email"`
	IndicadoPor           uint   `json:"indicadoPor" validate:"required"`
	EstabelecimentoCodigo string `json:"estabelecimentoCodigo"`
}

type AtualizarLeadDTO struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email" validate:"omitempty,email"`
	// Transições de funil permitidas aqui: novo/contatado/agendado/perdido.
	// A transição para convertido tem rota própria (POST /leads/{id}/converter).
	Status string `json:"status" validate:"omitempty,oneof=novo contatado agendado perdido"`
}
