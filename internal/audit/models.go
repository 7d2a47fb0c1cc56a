package audit

import "time"

// EventCategory classifies audit events by their primary purpose. It lets
// sinks apply different retention policies.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance:
	// consent changes and compliance verdicts. These want tamper-proof
	// storage and long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Subject   string
	Action    string
	Purpose   string
	Decision  string
	Reason    string
	RequestID string
}

// AuditEvent enumerates the actions the engine records.
type AuditEvent string

const (
	EventConsentGranted      AuditEvent = "consent_granted"
	EventConsentRevoked      AuditEvent = "consent_revoked"
	EventEvaluationCompleted AuditEvent = "evaluation_completed"
)
