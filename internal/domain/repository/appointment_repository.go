package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)

	// Update persists the full record guarded by the revision the caller
	// loaded. Returns affected rows: 0 means the row is gone or was
	// modified concurrently (stale write).
	Update(db *gorm.DB, appointment *entity.Appointment) (int64, error)

	// UpdateStatus changes only the status column.
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)

	Delete(db *gorm.DB, id uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error

	// Range queries use half-open [from, to) windows.
	FindByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	FindByDoctorAndRangeExcluding(db *gorm.DB, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorPatientNameAndRange(db *gorm.DB, doctorID uuid.UUID, patientName string, from, to time.Time) ([]entity.Appointment, error)

	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientIDAndStatus(db *gorm.DB, patientID uuid.UUID, status entity.AppointmentStatus) ([]entity.Appointment, error)
	FindByDoctorNameAndPatientID(db *gorm.DB, doctorName string, patientID uuid.UUID, status *entity.AppointmentStatus) ([]entity.Appointment, error)
}
