// Package audit narrates task mutations as system-log comments.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskboard/internal/model"
)

// CommentAppender persists a comment row. The orchestrator passes the
// transaction-scoped comment store so entries commit with the mutation.
type CommentAppender interface {
	Create(ctx context.Context, comment *model.Comment) error
}

// Recorder appends system-log comments with strictly increasing timestamps,
// so entries written in one request keep their evaluation order.
type Recorder struct {
	now      func() time.Time
	mu       sync.Mutex
	last     time.Time
	onRecord func()
}

func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

// OnRecord registers a hook run after each appended entry.
func (r *Recorder) OnRecord(fn func()) {
	r.onRecord = fn
}

func (r *Recorder) Record(ctx context.Context, store CommentAppender, taskID, actorID uuid.UUID, message string) error {
	comment := &model.Comment{
		TaskID:      taskID,
		AuthorID:    actorID,
		Content:     message,
		IsSystemLog: true,
		CreatedAt:   r.stamp(),
	}
	if err := store.Create(ctx, comment); err != nil {
		return fmt.Errorf("append system log for task %s: %w", taskID, err)
	}

	logrus.WithFields(logrus.Fields{
		"task_id": taskID,
		"user_id": actorID,
	}).Debug(message)

	if r.onRecord != nil {
		r.onRecord()
	}
	return nil
}

// RecordAll appends messages in order.
func (r *Recorder) RecordAll(ctx context.Context, store CommentAppender, taskID, actorID uuid.UUID, messages ...string) error {
	for _, m := range messages {
		if err := r.Record(ctx, store, taskID, actorID, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) stamp() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Postgres keeps microseconds.
	t := r.now().UTC().Truncate(time.Microsecond)
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}
