package service

import (
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records best-effort audit trail entries. Failures are
// logged and never propagated: auditing must not fail the business action.
type AuditService interface {
	Record(actorID *uuid.UUID, actorRole, action string, metadata entity.JSON)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(actorID *uuid.UUID, actorRole, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		ActorID:   actorID,
		ActorRole: actorRole,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
