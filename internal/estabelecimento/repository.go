package estabelecimento

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Estabelecimento e sua configuração
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create insere o estabelecimento junto com sua configuração de comissão,
// na mesma transação. Sem configuração no payload, aplica a padrão.
func (r *Repository) Create(e *Estabelecimento) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		cfg := e.Configuracao
		if cfg == nil {
			c := ConfiguracaoPadrao(e.ClinicaID, e.Codigo)
			cfg = &c
		}
		cfg.ClinicaID = e.ClinicaID
		cfg.EstabelecimentoCodigo = e.Codigo
		if !cfg.BonusGerenteAtivo {
			cfg.BonusGerente35 = 0
			cfg.BonusGerente50 = 0
			cfg.BonusGerente75 = 0
		}
		if err := tx.Create(cfg).Error; err != nil {
			return err
		}
		e.Configuracao = cfg
		return nil
	})
}

func (r *Repository) FindByCodigo(codigo string) (*Estabelecimento, error) {
	var e Estabelecimento
	err := r.DB.Preload("Configuracao").Where("codigo = ?", codigo).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListByClinica(clinicaID uint) ([]Estabelecimento, error) {
	var list []Estabelecimento
	err := r.DB.Preload("Configuracao").Where("clinica_id = ?", clinicaID).Find(&list).Error
	return list, err
}

// BuscarConfiguracao resolve a configuração de comissão de um estabelecimento.
// Código vazio ou linha ausente caem na configuração padrão; ausência de
// configuração não é erro.
func (r *Repository) BuscarConfiguracao(clinicaID uint, codigo string) (ConfiguracaoComissao, error) {
	if codigo == "" {
		return ConfiguracaoPadrao(clinicaID, codigo), nil
	}
	var cfg ConfiguracaoComissao
	err := r.DB.Where("estabelecimento_codigo = ?", codigo).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConfiguracaoPadrao(clinicaID, codigo), nil
	}
	if err != nil {
		return ConfiguracaoComissao{}, err
	}
	return cfg, nil
}

// SalvarConfiguracao faz upsert da configuração de um estabelecimento.
// Com bônus de gerente desativado, os marcos são zerados na escrita.
func (r *Repository) SalvarConfiguracao(cfg *ConfiguracaoComissao) error {
	if !cfg.BonusGerenteAtivo {
		cfg.BonusGerente35 = 0
		cfg.BonusGerente50 = 0
		cfg.BonusGerente75 = 0
	}
	var existente ConfiguracaoComissao
	err := r.DB.Where("estabelecimento_codigo = ?", cfg.EstabelecimentoCodigo).First(&existente).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(cfg).Error
	}
	if err != nil {
		return err
	}
	cfg.ID = existente.ID
	cfg.CreatedAt = existente.CreatedAt
	return r.DB.Save(cfg).Error
}

func (r *Repository) Delete(e *Estabelecimento) error {
	return r.DB.Delete(e).Error
}
