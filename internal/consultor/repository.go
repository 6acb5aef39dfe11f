package consultor

import (
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Consultor, error)
	Salvar(db *gorm.DB, c *Consultor) error
	BuscarPorID(db *gorm.DB, id uint) (*Consultor, error)
	ListarPorClinica(db *gorm.DB, clinicaID uint) ([]Consultor, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Consultor) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Busca primeiro por e-mail, depois por CPF, para evitar ambiguidade
func (r *repositoryImpl) BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Consultor, error) {
	var c Consultor

	if err := db.Where("email = ?", valor).First(&c).Error; err == nil {
		return &c, nil
	}
	if err := db.Where("cpf = ?", valor).First(&c).Error; err == nil {
		return &c, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Consultor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	var consultor Consultor
	err := db.First(&consultor, id).Error
	return &consultor, err
}

func (r *repositoryImpl) ListarPorClinica(db *gorm.DB, clinicaID uint) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Where("clinica_id = ?", clinicaID).Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Consultor) error {
	var existente Consultor
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Sobrenome = novosDados.Sobrenome
	existente.CPF = novosDados.CPF
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.Foto = novosDados.Foto

	return db.Save(&existente).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Consultor{}, id).Error
}
