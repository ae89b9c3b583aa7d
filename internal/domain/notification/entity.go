package notification

import (
	"time"
)

// AlertType represents the kind of attendance alert
type AlertType string

const (
	TypeLateArrival      AlertType = "late_arrival"
	TypeAbsentMarked     AlertType = "absent_marked"
	TypeAbsenceJustified AlertType = "absence_justified"
)

// Alert is one attendance alert delivered to a manager or the subject.
type Alert struct {
	ID          string
	CompanyID   string
	RecipientID string
	Type        AlertType
	Title       string
	Message     string
	CreatedAt   time.Time
}
