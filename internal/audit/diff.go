package audit

import "time"

// TaskFields are the user-editable scalar fields of a task.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	IsCompleted bool
}

// FieldRule narrates one field when it differs between two snapshots.
type FieldRule struct {
	Field   string
	Changed func(before, after TaskFields) bool
	Message func(actor string, before, after TaskFields) string
}

// TaskFieldRules is evaluated in order; the order of the resulting entries
// follows it.
var TaskFieldRules = []FieldRule{
	{
		Field:   "title",
		Changed: func(b, a TaskFields) bool { return b.Title != a.Title },
		Message: func(actor string, _, a TaskFields) string { return ChangedTitle(actor, a.Title) },
	},
	{
		Field:   "description",
		Changed: func(b, a TaskFields) bool { return b.Description != a.Description },
		Message: func(actor string, _, _ TaskFields) string { return ChangedDescription(actor) },
	},
	{
		Field:   "due_date",
		Changed: func(b, a TaskFields) bool { return !sameInstant(b.DueDate, a.DueDate) },
		Message: func(actor string, _, a TaskFields) string { return ChangedDueDate(actor, a.DueDate) },
	},
	{
		Field:   "is_completed",
		Changed: func(b, a TaskFields) bool { return b.IsCompleted != a.IsCompleted },
		Message: func(actor string, _, a TaskFields) string {
			if a.IsCompleted {
				return MarkedCompleted(actor)
			}
			return MarkedIncomplete(actor)
		},
	},
}

// Change is one narrated field difference.
type Change struct {
	Field   string
	Message string
}

// Diff folds rules over the two snapshots and returns one change per field
// that actually differs.
func Diff(rules []FieldRule, actor string, before, after TaskFields) []Change {
	var changes []Change
	for _, r := range rules {
		if r.Changed(before, after) {
			changes = append(changes, Change{Field: r.Field, Message: r.Message(actor, before, after)})
		}
	}
	return changes
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
