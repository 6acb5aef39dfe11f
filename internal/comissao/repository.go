// internal/comissao/repository.go
package comissao

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Comissao
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Comissao) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Comissao, error) {
	var c Comissao
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Filtro de listagem das telas de comissão.
type Filtro struct {
	ClinicaID             uint
	UsuarioID             uint
	Usuarios              []uint
	EstabelecimentoCodigo string
	Tipo                  string
	Status                string
}

func (r *Repository) Listar(f Filtro) ([]Comissao, error) {
	q := r.DB.Model(&Comissao{})
	if f.ClinicaID != 0 {
		q = q.Where("clinica_id = ?", f.ClinicaID)
	}
	if f.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", f.UsuarioID)
	}
	if len(f.Usuarios) > 0 {
		q = q.Where("usuario_id IN ?", f.Usuarios)
	}
	if f.EstabelecimentoCodigo != "" {
		q = q.Where("estabelecimento_codigo = ?", f.EstabelecimentoCodigo)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var list []Comissao
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// MarcarComoPaga atualiza apenas status e paga_em.
func (r *Repository) MarcarComoPaga(id uint) error {
	now := time.Now()
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  StatusPaga,
		"paga_em": now,
	}).Error
}

// Cancelar marca a comissão como cancelada sem apagar a linha.
func (r *Repository) Cancelar(id uint) error {
	return r.DB.Model(&Comissao{}).Where("id = ?", id).Update("status", StatusCancelada).Error
}

// DeletarDoUsuario remove as comissões de um beneficiário (teardown de consultor).
func (r *Repository) DeletarDoUsuario(usuarioID uint) error {
	return r.DB.Where("usuario_id = ?", usuarioID).Delete(&Comissao{}).Error
}

// MarcoJaEmitido diz se o gerente já recebeu o bônus daquele marco naquele
// estabelecimento; garante emissão única por marco.
func (r *Repository) MarcoJaEmitido(gerenteID uint, estabelecimentoCodigo string, marco int) (bool, error) {
	var n int64
	err := r.DB.Model(&Comissao{}).
		Where("usuario_id = ? AND estabelecimento_codigo = ? AND marco = ?", gerenteID, estabelecimentoCodigo, marco).
		Count(&n).Error
	return n > 0, err
}
