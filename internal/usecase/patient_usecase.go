package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientExists     = errors.New("patient with this email or phone already exists")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidCondition  = errors.New("invalid condition, use 'past' or 'future'")
)

// PatientUsecase covers patient signup, profile lookup and the patient's
// view of their own appointment history.
type PatientUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	GetBySubject(ctx context.Context, subject string) (*dto.PatientResponse, error)
	MyAppointments(ctx context.Context, subject, condition, doctorName string) (*dto.AppointmentListResponse, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *patientUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	existing, err := u.patientRepo.FindByEmailOrPhone(db, req.Email, req.Phone)
	if err != nil {
		u.log.Warnf("Failed to check patient uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Phone:       req.Phone,
		DateOfBirth: dob,
	}

	if err := u.patientRepo.Create(db, patient); err != nil {
		if isDuplicateKeyError(err, "idx_patients") {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Record(&patient.ID, entity.RolePatient, entity.AuditActionPatientRegister, nil)

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetBySubject(ctx context.Context, subject string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), subject)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// MyAppointments returns the patient's appointment history, optionally
// narrowed by condition ("past"/"future") and/or a doctor-name substring.
func (u *patientUsecase) MyAppointments(ctx context.Context, subject, condition, doctorName string) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByEmail(db, subject)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var status *entity.AppointmentStatus
	if condition != "" {
		s, err := conditionToStatus(condition)
		if err != nil {
			return nil, err
		}
		status = &s
	}

	var appointments []entity.Appointment
	switch {
	case doctorName != "" && status != nil:
		appointments, err = u.appointmentRepo.FindByDoctorNameAndPatientID(db, doctorName, patient.ID, status)
	case doctorName != "":
		appointments, err = u.appointmentRepo.FindByDoctorNameAndPatientID(db, doctorName, patient.ID, nil)
	case status != nil:
		appointments, err = u.appointmentRepo.FindByPatientIDAndStatus(db, patient.ID, *status)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, patient.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// conditionToStatus maps the history filter keyword to a status code:
// "future" selects scheduled appointments, "past" completed ones.
func conditionToStatus(condition string) (entity.AppointmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(condition)) {
	case "past":
		return entity.StatusCompleted, nil
	case "future":
		return entity.StatusScheduled, nil
	default:
		return 0, ErrInvalidCondition
	}
}
