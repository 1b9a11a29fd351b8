package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorEmailExists = errors.New("doctor email already exists")
)

// DoctorUsecase is the directory component for doctor profiles: admin CRUD
// plus the public search/filter queries.
type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, adminSubject string, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, adminSubject string, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, adminSubject string, doctorID uuid.UUID) error
	FilterDoctors(ctx context.Context, filter *dto.DoctorFilter) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorRepo        repository.DoctorRepository
	appointmentRepo   repository.AppointmentRepository
	availabilityCache *service.AvailabilityCache
	auditService      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	availabilityCache *service.AvailabilityCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		doctorRepo:        doctorRepo,
		appointmentRepo:   appointmentRepo,
		availabilityCache: availabilityCache,
		auditService:      auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, adminSubject string, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	// Uniqueness pre-check; the unique index remains the backstop.
	existing, err := u.doctorRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check doctor email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       string(hashedPassword),
		Specialty:      req.Specialty,
		Phone:          req.Phone,
		AvailableTimes: entity.TimeList(req.AvailableTimes),
	}

	if err := u.doctorRepo.Create(db, doctor); err != nil {
		if isDuplicateKeyError(err, "idx_doctors_email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.Record(nil, entity.RoleAdmin, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id": doctor.ID.String(),
		"admin":     adminSubject,
	})

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, adminSubject string, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.AvailableTimes != nil {
		doctor.AvailableTimes = entity.TimeList(req.AvailableTimes)
	}
	if req.IsActive != nil {
		doctor.IsActive = req.IsActive
	}
	// Password is only re-hashed when a new one is provided
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		doctor.Password = string(hashedPassword)
	}

	if err := u.doctorRepo.Update(db, doctor); err != nil {
		if isDuplicateKeyError(err, "idx_doctors_email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	// The availability labels (or active flag) may have changed; every
	// cached day computed from the old labels is now stale.
	u.availabilityCache.InvalidateDoctor(ctx, doctor.ID)

	u.auditService.Record(nil, entity.RoleAdmin, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctor.ID.String(),
		"admin":     adminSubject,
	})

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes the doctor and every appointment booked with them.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, adminSubject string, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.appointmentRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor appointments: %+v", err)
		return err
	}

	if err := u.doctorRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.availabilityCache.InvalidateDoctor(ctx, doctorID)

	u.auditService.Record(nil, entity.RoleAdmin, entity.AuditActionDoctorDelete, entity.JSON{
		"doctor_id": doctorID.String(),
		"admin":     adminSubject,
	})

	return nil
}

// FilterDoctors dispatches on which of name / specialty / period are set.
// No match yields an empty list, never an error.
func (u *doctorUsecase) FilterDoctors(ctx context.Context, filter *dto.DoctorFilter) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)

	hasName := filter.Name != ""
	hasSpecialty := filter.Specialty != ""

	var (
		doctors []entity.Doctor
		err     error
	)
	switch {
	case hasName && hasSpecialty:
		doctors, err = u.doctorRepo.FindByNameAndSpecialty(db, filter.Name, filter.Specialty)
	case hasName:
		doctors, err = u.doctorRepo.FindByNameLike(db, filter.Name)
	case hasSpecialty:
		doctors, err = u.doctorRepo.FindBySpecialty(db, filter.Specialty)
	default:
		doctors, err = u.doctorRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to filter doctors: %+v", err)
		return nil, err
	}

	if filter.Period != "" {
		doctors = filterDoctorsByPeriod(doctors, filter.Period)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// filterDoctorsByPeriod keeps doctors with at least one availability label
// in the given period. A label's period comes from its parsed hour, so
// unparseable labels never satisfy a period filter.
func filterDoctorsByPeriod(doctors []entity.Doctor, period string) []entity.Doctor {
	period = strings.ToLower(strings.TrimSpace(period))
	filtered := make([]entity.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if availableInPeriod(doctor.AvailableTimes, period) {
			filtered = append(filtered, doctor)
		}
	}
	return filtered
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key
// violation containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
