package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByUsername(db *gorm.DB, username string) (*entity.Admin, error)
}
