package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
)

// DueTasks is the task query the notifier polls.
type DueTasks interface {
	DueSoon(ctx context.Context, from time.Time, window time.Duration) ([]model.Task, error)
	MarkNotified(ctx context.Context, taskID uuid.UUID) error
}

// DueDateNotifier reminds assignees of open tasks whose due date falls
// within the window, once per due date.
//
// A task is marked notified only after every assignee was reached.
// Assignees already reached are remembered in memory so a retry only
// targets the remaining ones; after a restart a retry may repeat them.
type DueDateNotifier struct {
	tasks    DueTasks
	notifier Notifier
	interval time.Duration
	window   time.Duration
	now      func() time.Time
	metrics  *metrics.Metrics

	mu        sync.Mutex
	delivered map[delivery]struct{}

	scheduler gocron.Scheduler
}

// delivery is one reminder sent for one due date of a task.
type delivery struct {
	task uuid.UUID
	user uuid.UUID
	due  time.Time
}

func NewDueDateNotifier(tasks DueTasks, notifier Notifier, interval, window time.Duration, m *metrics.Metrics) *DueDateNotifier {
	return &DueDateNotifier{
		tasks:    tasks,
		notifier: notifier,
		interval: interval,
		window:   window,
		now:      time.Now,
		metrics:  m,

		delivered: make(map[delivery]struct{}),
	}
}

// Start schedules the poll every interval. A run still in progress makes
// the next one skip.
func (n *DueDateNotifier) Start() error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(n.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), n.interval)
			defer cancel()
			if _, err := n.RunOnce(ctx); err != nil {
				log.WithError(err).Error("due date poll failed")
			}
		}),
		gocron.WithName("due-date-notifier"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule due date poll: %w", err)
	}

	n.scheduler = scheduler
	scheduler.Start()
	log.WithFields(log.Fields{"interval": n.interval, "window": n.window}).Info("⏰ due date notifier started")
	return nil
}

func (n *DueDateNotifier) Stop() error {
	if n.scheduler == nil {
		return nil
	}
	return n.scheduler.Shutdown()
}

// RunOnce notifies the assignees of every due task and marks the task as
// notified. It returns the number of tasks handled. A task whose
// notification fails is left unmarked for the next run.
func (n *DueDateNotifier) RunOnce(ctx context.Context) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	tasks, err := n.tasks.DueSoon(ctx, n.now().UTC(), n.window)
	if err != nil {
		return 0, err
	}
	n.forgetAllBut(tasks)

	handled := 0
	for _, task := range tasks {
		if err := n.notify(ctx, task); err != nil {
			log.WithError(err).WithField("task_id", task.ID).Warn("due date notification failed")
			continue
		}
		if err := n.tasks.MarkNotified(ctx, task.ID); err != nil {
			return handled, err
		}
		n.forget(task)
		handled++
	}
	return handled, nil
}

func (n *DueDateNotifier) notify(ctx context.Context, task model.Task) error {
	for _, assignee := range task.Assignees {
		key := deliveryOf(task, assignee)
		if _, done := n.delivered[key]; done {
			continue
		}
		if err := n.notifier.NotifyDueSoon(ctx, assignee, task); err != nil {
			return err
		}
		n.delivered[key] = struct{}{}
		n.metrics.RecordNotification()
	}
	return nil
}

func (n *DueDateNotifier) forget(task model.Task) {
	for _, assignee := range task.Assignees {
		delete(n.delivered, deliveryOf(task, assignee))
	}
}

// forgetAllBut drops deliveries of tasks that are no longer due, such as
// completed tasks or tasks whose due date moved out of the window.
func (n *DueDateNotifier) forgetAllBut(due []model.Task) {
	keep := make(map[uuid.UUID]struct{}, len(due))
	for _, task := range due {
		keep[task.ID] = struct{}{}
	}
	for key := range n.delivered {
		if _, ok := keep[key.task]; !ok {
			delete(n.delivered, key)
		}
	}
}

func deliveryOf(task model.Task, assignee model.User) delivery {
	d := delivery{task: task.ID, user: assignee.ID}
	if task.DueDate != nil {
		d.due = task.DueDate.UTC()
	}
	return d
}
