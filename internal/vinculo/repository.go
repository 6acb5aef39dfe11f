package vinculo

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para UsuarioEstabelecimento
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(v *UsuarioEstabelecimento) error {
	return r.DB.Create(v).Error
}

// EstabelecimentoAtivoDoUsuario devolve o código do primeiro vínculo ativo do
// usuário, ou "" quando não há nenhum. Ausência de vínculo não é erro.
func (r *Repository) EstabelecimentoAtivoDoUsuario(usuarioID uint) (string, error) {
	var v UsuarioEstabelecimento
	err := r.DB.
		Where("usuario_id = ? AND status = ?", usuarioID, StatusAtivo).
		Order("created_at").
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v.EstabelecimentoCodigo, nil
}

// ListarAtivosDoUsuario lista todos os códigos de estabelecimento com vínculo ativo.
func (r *Repository) ListarAtivosDoUsuario(usuarioID uint) ([]string, error) {
	var codigos []string
	err := r.DB.Model(&UsuarioEstabelecimento{}).
		Where("usuario_id = ? AND status = ?", usuarioID, StatusAtivo).
		Order("created_at").
		Pluck("estabelecimento_codigo", &codigos).Error
	return codigos, err
}

// Desativar marca o vínculo como inativo sem apagar o histórico.
func (r *Repository) Desativar(usuarioID uint, codigo string) error {
	return r.DB.Model(&UsuarioEstabelecimento{}).
		Where("usuario_id = ? AND estabelecimento_codigo = ?", usuarioID, codigo).
		Update("status", StatusInativo).Error
}

// DeletarDoUsuario remove todos os vínculos de um usuário (teardown de consultor).
func (r *Repository) DeletarDoUsuario(usuarioID uint) error {
	return r.DB.Where("usuario_id = ?", usuarioID).Delete(&UsuarioEstabelecimento{}).Error
}
