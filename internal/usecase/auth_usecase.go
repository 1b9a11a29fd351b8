package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid or expired token")
)

// AuthUsecase is the identity component: it issues role-tagged session
// tokens at login and confirms that a token's subject still resolves to a
// live account in the directory table matching its role. A deleted account
// implicitly invalidates all of its outstanding tokens.
type AuthUsecase interface {
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateSubject(ctx context.Context, subject, role string) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	tokenService *jwt.TokenService
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	tokenService *jwt.TokenService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		tokenService: tokenService,
		auditService: auditService,
	}
}

func (u *authUsecase) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := u.adminRepo.FindByUsername(u.db.WithContext(ctx), req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to find admin by username: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokenService.Generate(admin.Username, entity.RoleAdmin)
	if err != nil {
		u.log.Errorf("Failed to sign token: %+v", err)
		return nil, err
	}

	u.auditService.Record(&admin.ID, entity.RoleAdmin, entity.AuditActionAdminLogin, nil)

	return &dto.LoginResponse{Token: token, Role: entity.RoleAdmin}, nil
}

func (u *authUsecase) LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokenService.Generate(doctor.Email, entity.RoleDoctor)
	if err != nil {
		u.log.Errorf("Failed to sign token: %+v", err)
		return nil, err
	}

	u.auditService.Record(&doctor.ID, entity.RoleDoctor, entity.AuditActionDoctorLogin, nil)

	return &dto.LoginResponse{Token: token, Role: entity.RoleDoctor}, nil
}

func (u *authUsecase) LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.tokenService.Generate(patient.Email, entity.RolePatient)
	if err != nil {
		u.log.Errorf("Failed to sign token: %+v", err)
		return nil, err
	}

	u.auditService.Record(&patient.ID, entity.RolePatient, entity.AuditActionPatientLogin, nil)

	return &dto.LoginResponse{Token: token, Role: entity.RolePatient}, nil
}

// ValidateSubject confirms that subject still resolves to an account of the
// given role. Every failure is reported as ErrTokenInvalid: the caller only
// needs to know the token no longer grants access.
func (u *authUsecase) ValidateSubject(ctx context.Context, subject, role string) error {
	if subject == "" {
		return ErrTokenInvalid
	}

	db := u.db.WithContext(ctx)

	switch strings.ToLower(role) {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByUsername(db, subject)
		if err != nil {
			u.log.Warnf("Failed to resolve admin subject: %+v", err)
			return err
		}
		if admin == nil {
			return ErrTokenInvalid
		}
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(db, subject)
		if err != nil {
			u.log.Warnf("Failed to resolve doctor subject: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrTokenInvalid
		}
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByEmail(db, subject)
		if err != nil {
			u.log.Warnf("Failed to resolve patient subject: %+v", err)
			return err
		}
		if patient == nil {
			return ErrTokenInvalid
		}
	default:
		return ErrTokenInvalid
	}

	return nil
}
