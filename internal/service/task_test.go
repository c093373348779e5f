package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")

	first, err := f.tasks.Create(ctx, list.ID, f.editor.ID, CreateTaskInput{Title: " Write docs "})
	require.NoError(t, err)
	second := f.addTask(t, list.ID, "Review")

	assert.Equal(t, "Write docs", first.Title)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)
	assert.Equal(t, []string{"Ed created task"}, f.systemLog(t, first.ID))

	_, err = f.tasks.Create(ctx, list.ID, f.viewer.ID, CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.tasks.Create(ctx, uuid.New(), f.owner.ID, CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_MoveWithinList(t *testing.T) {
	f := newFixture(t)
	list := f.addList(t, "To do")
	f.addTask(t, list.ID, "A")
	f.addTask(t, list.ID, "B")
	c := f.addTask(t, list.ID, "C")

	moved, err := f.tasks.Move(context.Background(), c.ID, f.editor.ID, list.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, moved.Order)
	assert.Equal(t, []string{"A", "C", "B"}, f.taskOrder(t, list.ID))
	assert.Equal(t, []string{"Ada created task"}, f.systemLog(t, c.ID))
}

func TestTaskService_MoveAcrossLists(t *testing.T) {
	f := newFixture(t)
	todo := f.addList(t, "To do")
	done := f.addList(t, "Done")
	a := f.addTask(t, todo.ID, "A")
	f.addTask(t, todo.ID, "B")
	f.addTask(t, todo.ID, "C")
	f.addTask(t, done.ID, "X")

	moved, err := f.tasks.Move(context.Background(), a.ID, f.editor.ID, done.ID, 1)

	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ListID)
	assert.Equal(t, []string{"B", "C"}, f.taskOrder(t, todo.ID))
	assert.Equal(t, []string{"X", "A"}, f.taskOrder(t, done.ID))
	assert.Equal(t, []string{"Ada created task", "Ed moved task to 'Done'"}, f.systemLog(t, a.ID))
}

func TestTaskService_MoveAcrossBoardsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "A")

	other, err := f.boards.Create(ctx, f.owner.ID, "Other", "")
	require.NoError(t, err)
	foreign, err := f.lists.Create(ctx, other.ID, f.owner.ID, "Elsewhere")
	require.NoError(t, err)

	_, err = f.tasks.Move(ctx, task.ID, f.owner.ID, foreign.ID, 0)

	assert.ErrorIs(t, err, ErrValidation)
	reloaded, err := f.store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, reloaded.ListID)
	assert.Equal(t, 1, reloaded.Order)
	assert.Empty(t, f.taskOrder(t, foreign.ID))
}

func TestTaskService_MoveOutOfRange(t *testing.T) {
	f := newFixture(t)
	list := f.addList(t, "To do")
	a := f.addTask(t, list.ID, "A")
	f.addTask(t, list.ID, "B")

	_, err := f.tasks.Move(context.Background(), a.ID, f.owner.ID, list.ID, 2)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"A", "B"}, f.taskOrder(t, list.ID))
}

func TestTaskService_UpdateNarratesChangedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "Draft")
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	updated, err := f.tasks.Update(ctx, task.ID, f.editor.ID, UpdateTaskInput{Title: "Final", DueDate: &due})

	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, []string{
		"Ada created task",
		"Ed changed title to 'Final'",
		"Ed set due date to 2024-04-01",
	}, f.systemLog(t, task.ID))
}

func TestTaskService_UpdateWithoutChanges(t *testing.T) {
	f := newFixture(t)
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "Same")

	_, err := f.tasks.Update(context.Background(), task.ID, f.owner.ID, UpdateTaskInput{Title: "Same"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Ada created task"}, f.systemLog(t, task.ID))
}

func TestTaskService_UpdateCompletionAndDueDateReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	due := fixedNow.Add(time.Hour)
	task, err := f.tasks.Create(ctx, list.ID, f.owner.ID, CreateTaskInput{Title: "T", DueDate: &due})
	require.NoError(t, err)
	require.NoError(t, f.tasks.MarkNotified(ctx, task.ID))

	done := true
	later := due.Add(24 * time.Hour)
	_, err = f.tasks.Update(ctx, task.ID, f.owner.ID, UpdateTaskInput{Title: "T", DueDate: &later, IsCompleted: &done})
	require.NoError(t, err)

	reloaded, err := f.store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsCompleted)
	assert.False(t, reloaded.DueDateNotificationSent)
	assert.Equal(t, []string{
		"Ada created task",
		"Ada set due date to 2024-03-11",
		"Ada marked task as completed",
	}, f.systemLog(t, task.ID))
}

func TestTaskService_UpdateRollsBackWhenAuditFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "Before")

	boom := errors.New("disk full")
	f.store.db.fail["comments.Create"] = boom
	_, err := f.tasks.Update(ctx, task.ID, f.owner.ID, UpdateTaskInput{Title: "After"})
	delete(f.store.db.fail, "comments.Create")

	assert.ErrorIs(t, err, boom)
	reloaded, err := f.store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Before", reloaded.Title)
	assert.Equal(t, []string{"Ada created task"}, f.systemLog(t, task.ID))
}

func TestTaskService_MoveRollsBackWhenAuditFails(t *testing.T) {
	f := newFixture(t)
	todo := f.addList(t, "To do")
	done := f.addList(t, "Done")
	a := f.addTask(t, todo.ID, "A")
	f.addTask(t, todo.ID, "B")

	f.store.db.fail["comments.Create"] = errors.New("unavailable")
	_, err := f.tasks.Move(context.Background(), a.ID, f.owner.ID, done.ID, 0)

	require.Error(t, err)
	assert.Equal(t, []string{"A", "B"}, f.taskOrder(t, todo.ID))
	assert.Empty(t, f.taskOrder(t, done.ID))
}

func TestTaskService_DeleteRenumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	f.addTask(t, list.ID, "A")
	b := f.addTask(t, list.ID, "B")
	f.addTask(t, list.ID, "C")

	assert.ErrorIs(t, f.tasks.Delete(ctx, b.ID, f.viewer.ID), ErrForbidden)
	require.NoError(t, f.tasks.Delete(ctx, b.ID, f.editor.ID))

	assert.Equal(t, []string{"A", "C"}, f.taskOrder(t, list.ID))
	_, err := f.tasks.Get(ctx, b.ID, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Labels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "T")
	bug, err := f.labels.Create(ctx, f.board.ID, f.owner.ID, "bug", "#aa0000")
	require.NoError(t, err)

	other, err := f.boards.Create(ctx, f.owner.ID, "Other", "")
	require.NoError(t, err)
	foreign, err := f.labels.Create(ctx, other.ID, f.owner.ID, "foreign", "#00aa00")
	require.NoError(t, err)

	got, err := f.tasks.AddLabel(ctx, task.ID, f.editor.ID, bug.ID)
	require.NoError(t, err)
	assert.True(t, got.HasLabel(bug.ID))

	_, err = f.tasks.AddLabel(ctx, task.ID, f.editor.ID, bug.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tasks.AddLabel(ctx, task.ID, f.editor.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrValidation)

	got, err = f.tasks.RemoveLabel(ctx, task.ID, f.editor.ID, bug.ID)
	require.NoError(t, err)
	assert.False(t, got.HasLabel(bug.ID))
	_, err = f.tasks.RemoveLabel(ctx, task.ID, f.editor.ID, bug.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{
		"Ada created task",
		"Ed added label 'bug'",
		"Ed removed label 'bug'",
	}, f.systemLog(t, task.ID))
}

func TestTaskService_Assignees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "T")

	got, err := f.tasks.Assign(ctx, task.ID, f.editor.ID, f.viewer.ID)
	require.NoError(t, err)
	assert.True(t, got.HasAssignee(f.viewer.ID))

	_, err = f.tasks.Assign(ctx, task.ID, f.editor.ID, f.owner.ID)
	require.NoError(t, err)

	_, err = f.tasks.Assign(ctx, task.ID, f.editor.ID, f.viewer.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.tasks.Assign(ctx, task.ID, f.editor.ID, f.outsider.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = f.tasks.Unassign(ctx, task.ID, f.editor.ID, f.viewer.ID)
	require.NoError(t, err)
	assert.False(t, got.HasAssignee(f.viewer.ID))
	_, err = f.tasks.Unassign(ctx, task.ID, f.editor.ID, f.viewer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{
		"Ada created task",
		"Ed assigned Vi to task",
		"Ed assigned Ada to task",
		"Ed unassigned Vi from task",
	}, f.systemLog(t, task.ID))
}

func TestTaskService_DueSoon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	soon := fixedNow.Add(2 * time.Hour)
	far := fixedNow.Add(72 * time.Hour)
	due, err := f.tasks.Create(ctx, list.ID, f.owner.ID, CreateTaskInput{Title: "soon", DueDate: &soon})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, list.ID, f.owner.ID, CreateTaskInput{Title: "far", DueDate: &far})
	require.NoError(t, err)
	f.addTask(t, list.ID, "undated")

	tasks, err := f.tasks.DueSoon(ctx, fixedNow, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, due.ID, tasks[0].ID)

	require.NoError(t, f.tasks.MarkNotified(ctx, due.ID))
	tasks, err = f.tasks.DueSoon(ctx, fixedNow, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_GetIncludesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "T")
	_, err := f.comments.Add(ctx, task.ID, f.viewer.ID, "looks good")
	require.NoError(t, err)

	got, err := f.tasks.Get(ctx, task.ID, f.viewer.ID)

	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.True(t, got.Comments[0].IsSystemLog)
	assert.Equal(t, "looks good", got.Comments[1].Content)
}
