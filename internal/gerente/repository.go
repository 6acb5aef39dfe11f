package gerente

import (
	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Gerente, error)
	Save(db *gorm.DB, g *Gerente) error
	ListByClinica(db *gorm.DB, clinicaID uint) ([]Gerente, error)
	FindByID(db *gorm.DB, id uint) (*Gerente, error)
	Update(db *gorm.DB, id uint, req *UpdateGerenteRequest) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Gerente, error) {
	var g Gerente
	if err := db.Where("email = ?", email).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, g *Gerente) error {
	return db.Create(g).Error
}

func (r *repositoryImpl) ListByClinica(db *gorm.DB, clinicaID uint) ([]Gerente, error) {
	var list []Gerente
	err := db.Where("clinica_id = ?", clinicaID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Gerente, error) {
	var g Gerente
	err := db.First(&g, id).Error
	return &g, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, req *UpdateGerenteRequest) error {
	var g Gerente
	if err := db.First(&g, id).Error; err != nil {
		return err
	}
	if req.Nome != nil {
		g.Nome = *req.Nome
	}
	if req.Sobrenome != nil {
		g.Sobrenome = *req.Sobrenome
	}
	if req.Telefone != nil {
		g.Telefone = *req.Telefone
	}
	if req.Foto != nil {
		g.Foto = *req.Foto
	}
	return db.Save(&g).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Gerente{}, id).Error
}
