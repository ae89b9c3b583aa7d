package postgresql

import (
	"context"
	"fmt"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type alertRepository struct {
	db *database.DB
}

// Create implements notification.AlertRepository.
func (a *alertRepository) Create(ctx context.Context, alert notification.Alert) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_alerts (
			id, company_id, recipient_id, type, title, message
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := q.Exec(ctx, query,
		alert.ID,
		alert.CompanyID,
		alert.RecipientID,
		alert.Type,
		alert.Title,
		alert.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to create attendance alert: %w", err)
	}

	return nil
}

func NewAlertRepository(db *database.DB) notification.AlertRepository {
	return &alertRepository{db: db}
}
