package audit

import (
	"fmt"
	"time"
)

const dueDateLayout = "2006-01-02"

func CreatedTask(actor string) string {
	return fmt.Sprintf("%s created task", actor)
}

func ChangedTitle(actor, title string) string {
	return fmt.Sprintf("%s changed title to '%s'", actor, title)
}

func ChangedDescription(actor string) string {
	return fmt.Sprintf("%s changed description", actor)
}

func ChangedDueDate(actor string, due *time.Time) string {
	if due == nil {
		return fmt.Sprintf("%s removed due date", actor)
	}
	return fmt.Sprintf("%s set due date to %s", actor, due.Format(dueDateLayout))
}

func MarkedCompleted(actor string) string {
	return fmt.Sprintf("%s marked task as completed", actor)
}

func MarkedIncomplete(actor string) string {
	return fmt.Sprintf("%s marked task as incomplete", actor)
}

func MovedToList(actor, list string) string {
	return fmt.Sprintf("%s moved task to '%s'", actor, list)
}

func AddedLabel(actor, label string) string {
	return fmt.Sprintf("%s added label '%s'", actor, label)
}

func RemovedLabel(actor, label string) string {
	return fmt.Sprintf("%s removed label '%s'", actor, label)
}

func AssignedUser(actor, assignee string) string {
	return fmt.Sprintf("%s assigned %s to task", actor, assignee)
}

func UnassignedUser(actor, assignee string) string {
	return fmt.Sprintf("%s unassigned %s from task", actor, assignee)
}

func AddedAttachment(actor, file string) string {
	return fmt.Sprintf("%s added attachment '%s'", actor, file)
}

func RemovedAttachment(actor, file string) string {
	return fmt.Sprintf("%s removed attachment '%s'", actor, file)
}
