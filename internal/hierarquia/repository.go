package hierarquia

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Hierarquia
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Adicionar cria a aresta gerente→consultor. O índice único em consultor_id
// garante um gerente por consultor; violação sobe como erro do banco.
func (r *Repository) Adicionar(h *Hierarquia) error {
	return r.DB.Create(h).Error
}

// GerenteDoConsultor resolve o gerente de um consultor. Consultor sem gerente
// devolve (0, nil), nunca erro; chamadores decidem se a comissão de gerente
// se aplica testando o zero.
func (r *Repository) GerenteDoConsultor(consultorID uint) (uint, error) {
	var h Hierarquia
	err := r.DB.Where("consultor_id = ?", consultorID).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return h.GerenteID, nil
}

// EquipeDoGerente lista os IDs dos consultores do gerente.
func (r *Repository) EquipeDoGerente(gerenteID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&Hierarquia{}).
		Where("gerente_id = ?", gerenteID).
		Pluck("consultor_id", &ids).Error
	return ids, err
}

// Remover desfaz a aresta do consultor, se existir.
func (r *Repository) Remover(consultorID uint) error {
	return r.DB.Where("consultor_id = ?", consultorID).Delete(&Hierarquia{}).Error
}

// RemoverDoGerente desfaz todas as arestas de um gerente (teardown de gerente).
// Os consultores ficam sem gerente; leads e comissões históricas não mudam.
func (r *Repository) RemoverDoGerente(gerenteID uint) error {
	return r.DB.Where("gerente_id = ?", gerenteID).Delete(&Hierarquia{}).Error
}
