package notifications

import (
	"context"

	"github.com/campaignkit/campaign-agents/internal/models"
)

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(ctx context.Context, report *models.Report) error
}
