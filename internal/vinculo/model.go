// internal/vinculo/model.go
package vinculo

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// UsuarioEstabelecimento liga um consultor ou gerente a um estabelecimento.
// Um usuário pode ter vários vínculos; a visibilidade e a atribuição de receita
// consideram apenas os vínculos ativos.
type UsuarioEstabelecimento struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	ClinicaID             uint           `gorm:"not null;index" json:"clinicaId"`
	UsuarioID             uint           `gorm:"not null;index:idx_vinculo_usuario_estab,unique" json:"usuarioId"`
	EstabelecimentoCodigo string         `gorm:"size:50;not null;index:idx_vinculo_usuario_estab,unique" json:"estabelecimentoCodigo"`
	Status                string         `gorm:"size:20;not null;default:'ativo';index" json:"status"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UsuarioEstabelecimento{})
}
