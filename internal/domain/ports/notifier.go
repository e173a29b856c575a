package ports

import (
	"context"

	"kasubs/internal/domain/model"
)

// Notifier sends notifications to downstream channels (e.g. a Discord webhook).
type Notifier interface {
	Send(ctx context.Context, notification model.Notification) error
}
