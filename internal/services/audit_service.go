package services

import (
	"homeledger/internal/logger"
	"homeledger/internal/models"
)

// AuditServicer records mutations of the ledger and asset register.
type AuditServicer interface {
	Log(action, resourceType string, resourceID int64, changes map[string]any)
}

// auditService writes audit events to the structured log.
type auditService struct{}

// NewAuditService creates a new AuditServicer.
func NewAuditService() AuditServicer {
	return &auditService{}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(action, resourceType string, resourceID int64, changes map[string]any) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
	}
	logger.Get().Infow("audit", entry.Fields()...)
}

type nopAudit struct{}

func (nopAudit) Log(string, string, int64, map[string]any) {}
