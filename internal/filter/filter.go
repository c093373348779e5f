// Package filter narrows a board's tasks by labels, assignees, completion
// and due-date window while keeping list and task order intact.
package filter

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

type DueDatePreset string

const (
	NoDate         DueDatePreset = "NoDate"
	Expired        DueDatePreset = "Expired"
	DueWithinDay   DueDatePreset = "DueWithinDay"
	DueWithinWeek  DueDatePreset = "DueWithinWeek"
	DueWithinMonth DueDatePreset = "DueWithinMonth"
)

var presetWindows = map[DueDatePreset]time.Duration{
	DueWithinDay:   24 * time.Hour,
	DueWithinWeek:  7 * 24 * time.Hour,
	DueWithinMonth: 30 * 24 * time.Hour,
}

func ParseDueDatePreset(s string) (DueDatePreset, error) {
	switch p := DueDatePreset(s); p {
	case NoDate, Expired, DueWithinDay, DueWithinWeek, DueWithinMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown due date preset %q", s)
}

// Criteria holds independently optional conditions; present ones are ANDed.
type Criteria struct {
	LabelIDs      []uuid.UUID
	MemberIDs     []uuid.UUID
	IsCompleted   *bool
	DueDatePreset *DueDatePreset
}

func (c Criteria) IsEmpty() bool {
	return len(c.LabelIDs) == 0 && len(c.MemberIDs) == 0 && c.IsCompleted == nil && c.DueDatePreset == nil
}

// Group is one list with its tasks, both in display order.
type Group struct {
	List  model.TaskList
	Tasks []model.Task
}

type predicate func(t *model.Task) bool

// Apply keeps the tasks matching c. Groups left without tasks are dropped.
// now is the single reference instant for every due-date window. Empty
// criteria return groups unchanged.
func Apply(groups []Group, c Criteria, now time.Time) []Group {
	if c.IsEmpty() {
		return groups
	}

	preds := compile(c, now)
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var kept []model.Task
		for i := range g.Tasks {
			if matchAll(&g.Tasks[i], preds) {
				kept = append(kept, g.Tasks[i])
			}
		}
		if len(kept) > 0 {
			out = append(out, Group{List: g.List, Tasks: kept})
		}
	}
	return out
}

func matchAll(t *model.Task, preds []predicate) bool {
	for _, p := range preds {
		if !p(t) {
			return false
		}
	}
	return true
}

func compile(c Criteria, now time.Time) []predicate {
	var preds []predicate

	if len(c.LabelIDs) > 0 {
		wanted := toSet(c.LabelIDs)
		preds = append(preds, func(t *model.Task) bool {
			for _, l := range t.Labels {
				if _, ok := wanted[l.ID]; ok {
					return true
				}
			}
			return false
		})
	}

	if len(c.MemberIDs) > 0 {
		wanted := toSet(c.MemberIDs)
		preds = append(preds, func(t *model.Task) bool {
			for _, u := range t.Assignees {
				if _, ok := wanted[u.ID]; ok {
					return true
				}
			}
			return false
		})
	}

	if c.IsCompleted != nil {
		completed := *c.IsCompleted
		preds = append(preds, func(t *model.Task) bool {
			return t.IsCompleted == completed
		})
	}

	if c.DueDatePreset != nil {
		preds = append(preds, duePredicate(*c.DueDatePreset, now))
	}

	return preds
}

func duePredicate(preset DueDatePreset, now time.Time) predicate {
	switch preset {
	case NoDate:
		return func(t *model.Task) bool { return t.DueDate == nil }
	case Expired:
		return func(t *model.Task) bool { return t.DueDate != nil && t.DueDate.Before(now) }
	}

	window, ok := presetWindows[preset]
	if !ok {
		return func(*model.Task) bool { return true }
	}
	end := now.Add(window)
	return func(t *model.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(now) && !t.DueDate.After(end)
	}
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
