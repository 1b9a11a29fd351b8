package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id uuid.UUID) error
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindByNameLike(db *gorm.DB, name string) ([]entity.Doctor, error)
	FindBySpecialty(db *gorm.DB, specialty string) ([]entity.Doctor, error)
	FindByNameAndSpecialty(db *gorm.DB, name, specialty string) ([]entity.Doctor, error)
}
