package comissao

import (
	"time"

	"gorm.io/gorm"
)

// Tipo do beneficiário da comissão.
const (
	TipoConsultor = "consultor"
	TipoGerente   = "gerente"
)

// Status de pagamento.
const (
	StatusPendente  = "pendente"
	StatusPaga      = "paga"
	StatusCancelada = "cancelada"
)

// Comissao é emitida na conversão de um lead e só muda por transição de status.
// ValorPorArcada congela a taxa vigente na emissão: editar a configuração do
// estabelecimento depois não altera comissões já emitidas.
type Comissao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClinicaID uint           `gorm:"not null;index" json:"clinicaId"`
	LeadID    uint           `gorm:"not null;index" json:"leadId"`
	UsuarioID uint           `gorm:"not null;index" json:"usuarioId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	EstabelecimentoCodigo string `gorm:"size:50;index" json:"estabelecimentoCodigo"`

	Tipo            string  `gorm:"size:20;not null;index" json:"tipo"`
	Valor           float64 `gorm:"not null" json:"valor"`
	ArcadasVendidas int     `gorm:"not null;default:0" json:"arcadasVendidas"`
	ValorPorArcada  float64 `gorm:"not null;default:0" json:"valorPorArcada"`

	// Marco > 0 identifica bônus de marco do gerente (35, 50 ou 75 arcadas
	// acumuladas da equipe). BonusCadencia identifica o bônus fixo do consultor
	// a cada N arcadas acumuladas. Nas comissões de venda ambos ficam zerados.
	Marco         int  `gorm:"not null;default:0" json:"marco,omitempty"`
	BonusCadencia bool `gorm:"not null;default:false" json:"bonusCadencia,omitempty"`

	Status string     `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	PagaEm *time.Time `json:"pagaEm"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comissao{})
}
