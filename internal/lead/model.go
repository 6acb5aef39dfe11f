package lead

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de um lead no funil.
const (
	StatusNovo       = "novo"
	StatusContatado  = "contatado"
	StatusAgendado   = "agendado"
	StatusConvertido = "convertido"
	StatusPerdido    = "perdido"
)

// Lead representa um paciente em potencial indicado por um consultor.
// ArcadasVendidas e ConvertidoEm são preenchidos exatamente uma vez, na
// transição para o status convertido, e nunca fora dela.
type Lead struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Codigo    string         `gorm:"size:36;uniqueIndex" json:"codigo"`
	ClinicaID uint           `gorm:"not null;index" json:"clinicaId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome     string `gorm:"size:255;not null" json:"nome"`
	Telefone string `gorm:"size:20" json:"telefone"`
	Email    string `gorm:"size:100" json:"email"`

	Status      string `gorm:"size:20;not null;default:'novo';index" json:"status"`
	IndicadoPor uint   `gorm:"not null;index" json:"indicadoPor"`

	// Vazio até a conversão (ou atribuição explícita); depois de definido não muda.
	EstabelecimentoCodigo string `gorm:"size:50;index" json:"estabelecimentoCodigo"`

	ArcadasVendidas *int       `json:"arcadasVendidas"`
	ConvertidoEm    *time.Time `json:"convertidoEm"`
}

// Arcadas devolve as arcadas vendidas de um lead convertido, com default 1
// para linhas antigas gravadas sem o campo.
func (l Lead) Arcadas() int {
	if l.ArcadasVendidas == nil || *l.ArcadasVendidas < 1 {
		return 1
	}
	return *l.ArcadasVendidas
}

// Pendente diz se o lead ainda está em aberto no funil.
func (l Lead) Pendente() bool {
	return l.Status == StatusNovo || l.Status == StatusContatado || l.Status == StatusAgendado
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lead{})
}
