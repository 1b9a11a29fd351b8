package repository

import (
	"context"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// PrescriptionRepository is backed by the Mongo document store,
// so it carries its own connection rather than a *gorm.DB.
type PrescriptionRepository interface {
	Save(ctx context.Context, prescription *entity.Prescription) error
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Prescription, error)
}
