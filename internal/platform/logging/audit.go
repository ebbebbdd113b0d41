package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit result values.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// LogAuditEvent records a lead-handling event. Details must not contain submitter PII;
// callers pass counts and categories only.
//
//   - action: what happened ("open", "submit", "discard")
//   - resourceType: the form kind ("contact", "quote")
//   - resourceID: the form ID
//   - result: AuditSuccess or AuditFailure
func LogAuditEvent(ctx context.Context, action, resourceType, resourceID, result string, details map[string]any) {
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
