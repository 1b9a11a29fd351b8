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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorInvalid       = errors.New("invalid doctor for appointment")
	ErrSlotUnavailable     = errors.New("requested slot is not available")
	ErrSlotTaken           = errors.New("slot was just booked by someone else")
	ErrNotOwner            = errors.New("appointment does not belong to you")
	ErrStaleAppointment    = errors.New("appointment was modified concurrently")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// ScheduleUsecase is the scheduling engine: it computes free slots for a
// doctor's day and orchestrates booking, update, cancellation and status
// changes with ownership checks.
//
// The availability pre-check is advisory. The authoritative conflict signal
// is the unique index on (doctor_id, appointment_time): when two concurrent
// bookings race for the same slot, exactly one insert commits and the other
// surfaces as ErrSlotTaken.
type ScheduleUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
	Book(ctx context.Context, subject string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, subject string, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, subject string, appointmentID uuid.UUID) error
	ChangeStatus(ctx context.Context, appointmentID uuid.UUID, status entity.AppointmentStatus) error
	GetDoctorDay(ctx context.Context, subject string, date time.Time, patientName string) (*dto.AppointmentListResponse, error)
}

type scheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorRepo        repository.DoctorRepository
	patientRepo       repository.PatientRepository
	appointmentRepo   repository.AppointmentRepository
	availabilityCache *service.AvailabilityCache
	auditService      service.AuditService
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	availabilityCache *service.AvailabilityCache,
	auditService service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:                db,
		log:               log,
		doctorRepo:        doctorRepo,
		patientRepo:       patientRepo,
		appointmentRepo:   appointmentRepo,
		availabilityCache: availabilityCache,
		auditService:      auditService,
	}
}

// GetAvailability returns the doctor's free time labels for the date:
// the availability list minus labels whose HH:MM coincides with a booked
// appointment, in the doctor's original order.
func (u *scheduleUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	if slots, ok := u.availabilityCache.Get(ctx, doctorID, date); ok {
		return slots, nil
	}

	slots, err := u.computeAvailability(ctx, doctorID, date, uuid.Nil)
	if err != nil {
		return nil, err
	}

	u.availabilityCache.Set(ctx, doctorID, date, slots)
	return slots, nil
}

// computeAvailability reads the database directly. excludeID, when not
// uuid.Nil, removes that appointment from the booked set so an update does
// not conflict with the row it is moving.
func (u *scheduleUsecase) computeAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time, excludeID uuid.UUID) ([]string, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if len(doctor.AvailableTimes) == 0 {
		return []string{}, nil
	}

	from, to := dayWindow(date)

	var appointments []entity.Appointment
	if excludeID == uuid.Nil {
		appointments, err = u.appointmentRepo.FindByDoctorAndRange(db, doctorID, from, to)
	} else {
		appointments, err = u.appointmentRepo.FindByDoctorAndRangeExcluding(db, doctorID, from, to, excludeID)
	}
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	booked := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, a.AppointmentTime)
	}

	return freeSlots(doctor.AvailableTimes, booked, func(label string) {
		u.log.Warnf("Doctor %s has unparseable availability label %q, treating as always available", doctorID, label)
	}), nil
}

// validateSlot checks doctor and requested time against current
// availability. Advisory only: the unique index decides races.
func (u *scheduleUsecase) validateSlot(ctx context.Context, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) error {
	if doctorID == uuid.Nil {
		return ErrDoctorInvalid
	}
	if at.IsZero() {
		return ErrSlotUnavailable
	}

	slots, err := u.computeAvailability(ctx, doctorID, at, excludeID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return ErrDoctorInvalid
		}
		return err
	}

	if !containsSlot(slots, at) {
		return ErrSlotUnavailable
	}
	return nil
}

func (u *scheduleUsecase) Book(ctx context.Context, subject string, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to resolve patient from token: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	// A patient may only book for themselves
	if patient.ID != req.PatientID {
		return nil, ErrNotOwner
	}

	if err := u.validateSlot(ctx, req.DoctorID, req.AppointmentTime, uuid.Nil); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentTime: req.AppointmentTime,
		Status:          entity.StatusScheduled,
		Notes:           req.Notes,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, "idx_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorInvalid
		}
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	u.availabilityCache.Invalidate(ctx, req.DoctorID, req.AppointmentTime)

	u.auditService.Record(&patient.ID, entity.RolePatient, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"time":           req.AppointmentTime.Format(time.RFC3339),
	})

	full, err := u.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func (u *scheduleUsecase) Update(ctx context.Context, subject string, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	patient, err := u.patientRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to resolve patient from token: %+v", err)
		return nil, err
	}
	if patient == nil || patient.ID != existing.PatientID {
		return nil, ErrNotOwner
	}

	// Re-validate the new doctor/time, excluding this appointment's own row
	// so an unchanged resubmission does not conflict with itself.
	if err := u.validateSlot(ctx, req.DoctorID, req.AppointmentTime, appointmentID); err != nil {
		return nil, err
	}

	oldDoctorID := existing.DoctorID
	oldTime := existing.AppointmentTime

	existing.DoctorID = req.DoctorID
	existing.AppointmentTime = req.AppointmentTime
	existing.Notes = req.Notes

	rows, err := u.appointmentRepo.Update(db, existing)
	if err != nil {
		if isDuplicateKeyError(err, "idx_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrStaleAppointment
	}

	u.availabilityCache.Invalidate(ctx, oldDoctorID, oldTime)
	u.availabilityCache.Invalidate(ctx, req.DoctorID, req.AppointmentTime)

	u.auditService.Record(&patient.ID, entity.RolePatient, entity.AuditActionAppointmentUpdate, entity.JSON{
		"appointment_id": appointmentID.String(),
		"doctor_id":      req.DoctorID.String(),
		"time":           req.AppointmentTime.Format(time.RFC3339),
	})

	full, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return converter.AppointmentToResponse(existing), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Cancel hard-deletes the appointment after confirming the caller owns it.
func (u *scheduleUsecase) Cancel(ctx context.Context, subject string, appointmentID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	patient, err := u.patientRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to resolve patient from token: %+v", err)
		return err
	}
	if patient == nil || patient.ID != appointment.PatientID {
		return ErrNotOwner
	}

	if err := u.appointmentRepo.Delete(db, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	u.availabilityCache.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentTime)

	u.auditService.Record(&patient.ID, entity.RolePatient, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID.String(),
	})

	return nil
}

// ChangeStatus updates only the status column, leaving every other field
// untouched.
func (u *scheduleUsecase) ChangeStatus(ctx context.Context, appointmentID uuid.UUID, status entity.AppointmentStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	rows, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), appointmentID, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.Record(nil, "", entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": appointmentID.String(),
		"status":         status.String(),
	})

	return nil
}

// GetDoctorDay lists a doctor's appointments for one calendar day,
// optionally narrowed by a patient-name substring. When the token does not
// resolve to a doctor the result degrades to an empty list with a message
// instead of an error.
func (u *scheduleUsecase) GetDoctorDay(ctx context.Context, subject string, date time.Time, patientName string) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor from token: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return &dto.AppointmentListResponse{
			Appointments: []dto.AppointmentResponse{},
			Message:      "Token does not resolve to a doctor",
		}, nil
	}

	from, to := dayWindow(date)

	var appointments []entity.Appointment
	if patientName != "" {
		appointments, err = u.appointmentRepo.FindByDoctorPatientNameAndRange(db, doctor.ID, patientName, from, to)
	} else {
		appointments, err = u.appointmentRepo.FindByDoctorAndRange(db, doctor.ID, from, to)
	}
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
