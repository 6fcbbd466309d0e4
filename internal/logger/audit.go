package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction is one audited mutation.
type AuditAction struct {
	Action       string                 `json:"action"` // e.g. "crud_delete"
	UserID       string                 `json:"user_id"`
	ResourceID   string                 `json:"resource_id"`
	ResourceType string                 `json:"resource_type"` // collection name
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	RequestID    string                 `json:"request_id"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction writes an audit entry for the request behind c.
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		RequestID: RequestID(c),
		Details:   details,
		Timestamp: time.Now(),
	}
	if uid, ok := c.Locals("user_id").(string); ok {
		audit.UserID = uid
	}
	if v, ok := details["resource_id"].(string); ok {
		audit.ResourceID = v
	}
	if v, ok := details["resource_type"].(string); ok {
		audit.ResourceType = v
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"user_id":       audit.UserID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"request_id":    audit.RequestID,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD audits a create, update, delete or toggle.
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogAuth audits identity resolution failures.
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}
