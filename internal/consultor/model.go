package consultor

import (
	"gorm.io/gorm"
)

// Consultor indica leads e recebe comissão por arcada vendida.
type Consultor struct {
	gorm.Model
	ClinicaID             uint   `gorm:"not null;index" json:"clinicaId"`
	Nome                  string `json:"nome"`
	Sobrenome             string `json:"sobrenome"`
	CPF                   string `json:"cpf" gorm:"unique"`
	Email                 string `json:"email" gorm:"unique"`
	Telefone              string `json:"telefone"`
	Foto                  string `json:"foto"`
	Senha                 string `json:"-"`
	PrecisaRedefinirSenha bool   `json:"-"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Consultor{})
}
