package service

import (
	"context"

	"taxengine/internal/integrations/journal"
)

// Event names broadcast to connected console clients after a write commits.
const (
	EventAssessmentCreated    = "assessment.created"
	EventAssessmentActivated  = "assessment.activated"
	EventAssessmentFinalized  = "assessment.finalized"
	EventPaymentRecorded      = "payment.recorded"
	EventScheduleRecalculated = "schedule.recalculated"
	EventScenarioCreated      = "scenario.created"
	EventScenarioDeleted      = "scenario.deleted"
)

// EventPublisher pushes a named event to the WebSocket hub. Broadcasts are
// best-effort; a slow or absent consumer never blocks a write path.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// CompanyDirectory resolves a company ID to its display name. Lookups are
// decoration only and may return "" when the directory is unreachable.
type CompanyDirectory interface {
	CompanyName(ctx context.Context, companyID string) string
}

// JournalPoster posts a recorded payment to the external accounting journal
// and returns the journal entry number.
type JournalPoster interface {
	PostEntry(ctx context.Context, entry journal.EntryRequest) (string, error)
}
