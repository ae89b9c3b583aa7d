package notification

import "context"

// AlertRepository persists attendance alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert Alert) error
}

// Notifier is the downstream hook the attendance engine signals on LATE or
// absence classifications. Fire-and-forget: implementations must never let a
// delivery failure surface into the attendance write.
type Notifier interface {
	NotifyLate(companyID, userID, shiftAssignmentID string, minutesLate int)
	NotifyAbsent(companyID, userID, shiftAssignmentID string, justified bool)
}
