// internal/gerente/model.go
package gerente

import (
	"time"

	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/auth"
)

// Gerente é o usuário de gestão da clínica: lidera uma equipe de consultores
// e recebe comissão base por arcada vendida pela equipe, além dos bônus de
// marco. IsAdmin marca o administrador da clínica; SomenteLeitura marca o
// perfil visualizador.
type Gerente struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ClinicaID      uint           `gorm:"not null;index" json:"clinicaId"`
	Nome           string         `gorm:"size:100;not null" json:"nome"`
	Sobrenome      string         `gorm:"size:100;not null" json:"sobrenome"`
	CPF            string         `gorm:"size:20;not null" json:"cpf"`
	Email          string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Senha          string         `gorm:"size:255;not null" json:"-"`
	Telefone       string         `gorm:"size:20" json:"telefone"`
	Foto           string         `gorm:"size:255" json:"foto"`
	IsAdmin        bool           `gorm:"default:false" json:"isAdmin"`
	SomenteLeitura bool           `gorm:"default:false" json:"somenteLeitura"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Perfil resolve o perfil de acesso deste usuário.
func (g Gerente) Perfil() string {
	switch {
	case g.IsAdmin:
		return auth.PerfilAdmin
	case g.SomenteLeitura:
		return auth.PerfilVisualizador
	}
	return auth.PerfilGerente
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Gerente{})
}
