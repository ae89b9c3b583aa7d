package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/sse"
)

// AlertNotifier persists attendance alerts and pushes them to live SSE
// subscribers. Deliveries run on their own goroutine with their own deadline;
// a failure is logged and never reaches the attendance write path.
type AlertNotifier struct {
	alertRepo notification.AlertRepository
	hub       *sse.Hub
	logger    *slog.Logger
}

func NewAlertNotifier(alertRepo notification.AlertRepository, hub *sse.Hub, logger *slog.Logger) notification.Notifier {
	return &AlertNotifier{
		alertRepo: alertRepo,
		hub:       hub,
		logger:    logger,
	}
}

// NotifyLate implements notification.Notifier.
func (n *AlertNotifier) NotifyLate(companyID, userID, shiftAssignmentID string, minutesLate int) {
	alert := notification.Alert{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		RecipientID: userID,
		Type:        notification.TypeLateArrival,
		Title:       "Late arrival recorded",
		Message:     fmt.Sprintf("Clock-in recorded %d minutes after the scheduled shift start", minutesLate),
	}
	n.deliver(alert, shiftAssignmentID)
}

// NotifyAbsent implements notification.Notifier.
func (n *AlertNotifier) NotifyAbsent(companyID, userID, shiftAssignmentID string, justified bool) {
	alert := notification.Alert{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		RecipientID: userID,
		Type:        notification.TypeAbsentMarked,
		Title:       "Marked absent",
		Message:     "You were marked absent for a scheduled shift",
	}
	if justified {
		alert.Type = notification.TypeAbsenceJustified
		alert.Title = "Absence justified"
		alert.Message = "Your absence for a scheduled shift was recorded as justified"
	}
	n.deliver(alert, shiftAssignmentID)
}

func (n *AlertNotifier) deliver(alert notification.Alert, shiftAssignmentID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := n.alertRepo.Create(ctx, alert); err != nil {
			n.logger.Error("failed to persist attendance alert",
				slog.String("alert_type", string(alert.Type)),
				slog.String("recipient_id", alert.RecipientID),
				slog.String("shift_assignment_id", shiftAssignmentID),
				slog.Any("error", err),
			)
		}

		n.hub.Publish(alert.RecipientID, sse.Event{
			UserID: alert.RecipientID,
			Event:  string(alert.Type),
			Data: map[string]interface{}{
				"id":                  alert.ID,
				"title":               alert.Title,
				"message":             alert.Message,
				"shift_assignment_id": shiftAssignmentID,
			},
		})
	}()
}
