package clinica

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Clinica
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Clinica) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Clinica, error) {
	var c Clinica
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Clinica, error) {
	var list []Clinica
	err := r.DB.Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Clinica) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *Clinica) error {
	return r.DB.Delete(c).Error
}
