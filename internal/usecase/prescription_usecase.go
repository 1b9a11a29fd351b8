package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNotAppointmentDoctor = errors.New("appointment belongs to another doctor")
)

// PrescriptionUsecase issues and reads prescriptions. Prescription
// documents live in MongoDB keyed by appointment id; issuing one also marks
// the relational appointment completed.
type PrescriptionUsecase interface {
	Issue(ctx context.Context, subject string, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByAppointment(ctx context.Context, subject string, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) Issue(ctx context.Context, subject string, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor from token: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentDoctor
	}

	medications := make([]entity.Medication, len(req.Medications))
	for i, m := range req.Medications {
		medications[i] = entity.Medication{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			Duration:  m.Duration,
		}
	}

	now := time.Now().UTC()
	prescription := &entity.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Diagnosis:     req.Diagnosis,
		Medications:   medications,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.prescriptionRepo.Save(ctx, prescription); err != nil {
		u.log.Warnf("Failed to save prescription: %+v", err)
		return nil, err
	}

	// A prescribed visit has happened, so the appointment is completed.
	if _, err := u.appointmentRepo.UpdateStatus(db, appointment.ID, entity.StatusCompleted); err != nil {
		u.log.Warnf("Failed to mark appointment %s completed: %+v", appointment.ID, err)
	}

	u.auditService.Record(&doctor.ID, entity.RoleDoctor, entity.AuditActionPrescriptionIssue, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"patient_id":     appointment.PatientID.String(),
	})

	return converter.PrescriptionToResponse(prescription), nil
}

// GetByAppointment reads a prescription for the doctor or patient the
// appointment belongs to.
func (u *prescriptionUsecase) GetByAppointment(ctx context.Context, subject string, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	allowed := false
	if doctor, err := u.doctorRepo.FindByEmail(db, subject); err == nil && doctor != nil && doctor.ID == appointment.DoctorID {
		allowed = true
	}
	if !allowed {
		if appointment.Patient.ID != uuid.Nil && appointment.Patient.Email == subject {
			allowed = true
		}
	}
	if !allowed {
		return nil, ErrNotOwner
	}

	prescription, err := u.prescriptionRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}
