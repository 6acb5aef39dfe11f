package db

import (
	"gorm.io/gorm"

	"github.com/OdontoPrime/api-indicacoes/internal/config"
)

func GetDB(cfg config.DBConfig) (*gorm.DB, error) {
	return ConnectDataBase(cfg.Port, cfg.Host, cfg.Name, cfg.User, cfg.Password)
}
