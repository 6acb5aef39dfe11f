// internal/hierarquia/model.go
package hierarquia

import (
	"time"

	"gorm.io/gorm"
)

// Hierarquia é a aresta gerente→consultor. Um consultor tem no máximo um
// gerente por vez (índice único em consultor_id); um gerente tem zero ou mais
// consultores. Remover a aresta não apaga o consultor nem o histórico dele.
type Hierarquia struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClinicaID   uint           `gorm:"not null;index" json:"clinicaId"`
	GerenteID   uint           `gorm:"not null;index" json:"gerenteId"`
	ConsultorID uint           `gorm:"not null;uniqueIndex" json:"consultorId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Hierarquia{})
}
