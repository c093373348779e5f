// Package worker runs background jobs against committed board state.
package worker

import (
	"context"

	"taskboard/internal/model"
)

// Notifier delivers a due-date reminder for task to one assignee.
type Notifier interface {
	NotifyDueSoon(ctx context.Context, assignee model.User, task model.Task) error
}
