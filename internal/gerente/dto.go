package gerente

type UpdateGerenteRequest struct {
	Nome      *string `json:"nome"`
	Sobrenome *string `json:"sobrenome"`
	Telefone  *string `json:"telefone"`
	Foto      *string `json:"foto"`
}

type ResumoGerenteDTO struct {
	ID               uint    `json:"id"`
	Nome             string  `json:"nome"`
	Sobrenome        string  `json:"sobrenome"`
	Email            string  `json:"email"`
	TamanhoEquipe    int     `json:"tamanhoEquipe"`
	LeadsDaEquipe    int     `json:"leadsDaEquipe"`
	ArcadasDaEquipe  int     `json:"arcadasDaEquipe"`
	ComissaoRecebida float64 `json:"comissaoRecebida"`
	ComissaoAReceber float64 `json:"comissaoAReceber"`
}
