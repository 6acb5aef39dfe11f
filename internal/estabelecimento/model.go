package estabelecimento

import (
	"time"

	"gorm.io/gorm"
)

// Estabelecimento é a unidade/filial onde as arcadas são vendidas.
type Estabelecimento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClinicaID uint           `gorm:"not null;index" json:"clinicaId"`
	Codigo    string         `gorm:"size:50;not null;uniqueIndex" json:"codigo"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Cidade    string         `gorm:"size:100" json:"cidade"`
	UF        string         `gorm:"size:2" json:"uf"`
	Ativo     bool           `gorm:"not null;default:true" json:"ativo"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Configuracao *ConfiguracaoComissao `gorm:"foreignKey:EstabelecimentoCodigo;references:Codigo" json:"configuracao,omitempty"`
}

// ConfiguracaoComissao guarda as regras de comissionamento de um estabelecimento.
// Uma linha por código de estabelecimento; lida no momento da conversão do lead.
type ConfiguracaoComissao struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	ClinicaID             uint           `gorm:"not null;index" json:"clinicaId"`
	EstabelecimentoCodigo string         `gorm:"size:50;not null;uniqueIndex" json:"estabelecimentoCodigo"`
	ValorPorArcada        float64        `gorm:"not null;default:750" json:"valorPorArcada"`
	BonusACadaArcadas     int            `gorm:"not null;default:7" json:"bonusACadaArcadas"`
	BonusValor            float64        `gorm:"not null;default:750" json:"bonusValor"`
	BonusGerenteAtivo     bool           `gorm:"not null;default:true" json:"bonusGerenteAtivo"`
	ValorPorArcadaGerente float64        `gorm:"not null;default:750" json:"valorPorArcadaGerente"`
	BonusGerente35        float64        `gorm:"not null;default:5000" json:"bonusGerente35"`
	BonusGerente50        float64        `gorm:"not null;default:10000" json:"bonusGerente50"`
	BonusGerente75        float64        `gorm:"not null;default:15000" json:"bonusGerente75"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Estabelecimento{}, &ConfiguracaoComissao{})
}
