package lead

import (
	"time"

	"gorm.io/gorm"
)

// Filtro reúne os critérios de listagem usados pelas telas do painel.
type Filtro struct {
	ClinicaID             uint
	ConsultorID           uint
	Consultores           []uint
	EstabelecimentoCodigo string
	Status                string
	De                    *time.Time
	Ate                   *time.Time
}

// Repository encapsula operações de banco para Lead
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(l *Lead) error {
	return r.DB.Create(l).Error
}

func (r *Repository) FindByID(id uint) (*Lead, error) {
	var l Lead
	if err := r.DB.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Update(l *Lead) error {
	return r.DB.Save(l).Error
}

func (r *Repository) Delete(l *Lead) error {
	return r.DB.Delete(l).Error
}

// Listar aplica o filtro em uma única consulta, no lugar do padrão N+1 de
// buscar lead a lead por entidade.
func (r *Repository) Listar(f Filtro) ([]Lead, error) {
	q := r.DB.Model(&Lead{})
	if f.ClinicaID != 0 {
		q = q.Where("clinica_id = ?", f.ClinicaID)
	}
	if f.ConsultorID != 0 {
		q = q.Where("indicado_por = ?", f.ConsultorID)
	}
	if len(f.Consultores) > 0 {
		q = q.Where("indicado_por IN ?", f.Consultores)
	}
	if f.EstabelecimentoCodigo != "" {
		q = q.Where("estabelecimento_codigo = ?", f.EstabelecimentoCodigo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.De != nil {
		q = q.Where("created_at >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("created_at < ?", *f.Ate)
	}

	var list []Lead
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ArcadasConvertidas soma as arcadas vendidas dos leads convertidos de um
// conjunto de consultores, opcionalmente restrito a um estabelecimento.
// Linhas convertidas sem arcadas contam como 1.
func (r *Repository) ArcadasConvertidas(consultores []uint, estabelecimentoCodigo string) (int, error) {
	if len(consultores) == 0 {
		return 0, nil
	}
	q := r.DB.Model(&Lead{}).
		Where("indicado_por IN ? AND status = ?", consultores, StatusConvertido)
	if estabelecimentoCodigo != "" {
		q = q.Where("estabelecimento_codigo = ?", estabelecimentoCodigo)
	}
	var total int
	err := q.Select("COALESCE(SUM(COALESCE(arcadas_vendidas, 1)), 0)").Scan(&total).Error
	return total, err
}
