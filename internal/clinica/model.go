// internal/clinica/model.go
package clinica

import "gorm.io/gorm"

// Clinica é a raiz de multi-tenancy: toda linha do sistema carrega ClinicaID.
type Clinica struct {
	gorm.Model
	Nome     string `gorm:"size:255;not null" json:"nome"`
	CNPJ     string `gorm:"size:20;unique" json:"cnpj"`
	Telefone string `gorm:"size:20" json:"telefone"`
	Ativa    bool   `gorm:"not null;default:true" json:"ativa"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Clinica{})
}
