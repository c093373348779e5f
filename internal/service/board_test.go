package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/filter"
	"taskboard/internal/model"
)

func TestBoardService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.boards.Create(ctx, f.owner.ID, "   ", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.boards.Create(ctx, uuid.New(), "Ghost", "")
	assert.ErrorIs(t, err, ErrNotFound)

	board, err := f.boards.Create(ctx, f.editor.ID, " Sprint ", "two weeks")
	require.NoError(t, err)
	assert.Equal(t, "Sprint", board.Title)
	assert.Equal(t, f.editor.ID, board.OwnerID)
}

func TestBoardService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	own, err := f.boards.List(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.True(t, own[0].IsOwner)

	shared, err := f.boards.List(ctx, f.viewer.ID)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.False(t, shared[0].IsOwner)

	none, err := f.boards.List(ctx, f.outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBoardService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	todo := f.addList(t, "To do")
	f.addList(t, "Done")
	f.addTask(t, todo.ID, "first")
	f.addTask(t, todo.ID, "second")

	details, err := f.boards.Get(ctx, f.board.ID, f.viewer.ID)
	require.NoError(t, err)
	require.Len(t, details.Lists, 2)
	assert.Equal(t, "To do", details.Lists[0].Title)
	require.Len(t, details.Lists[0].Tasks, 2)
	assert.Equal(t, "first", details.Lists[0].Tasks[0].Title)
	assert.Empty(t, details.Lists[1].Tasks)
	assert.Len(t, details.Members, 2)
	assert.False(t, details.IsOwner)

	_, err = f.boards.Get(ctx, f.board.ID, f.outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.boards.Get(ctx, uuid.New(), f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.boards.Update(ctx, f.board.ID, f.editor.ID, "Renamed", "")
	assert.ErrorIs(t, err, ErrForbidden)

	board, err := f.boards.Update(ctx, f.board.ID, f.owner.ID, "Renamed", "desc")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", board.Title)

	assert.ErrorIs(t, f.boards.Delete(ctx, f.board.ID, f.editor.ID), ErrForbidden)
	require.NoError(t, f.boards.Delete(ctx, f.board.ID, f.owner.ID))

	_, err = f.boards.Get(ctx, f.board.ID, f.owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardService_AddMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   uuid.UUID
		email   string
		role    model.Role
		wantErr error
	}{
		{"owner role rejected", f.owner.ID, f.outsider.Email, model.RoleOwner, ErrValidation},
		{"editor cannot share", f.editor.ID, f.outsider.Email, model.RoleViewer, ErrForbidden},
		{"non-owner asking for owner role", f.editor.ID, f.outsider.Email, model.RoleOwner, ErrForbidden},
		{"unknown email", f.owner.ID, "nobody@example.com", model.RoleViewer, ErrNotFound},
		{"owner cannot be added", f.owner.ID, f.owner.Email, model.RoleEditor, ErrValidation},
		{"already a member", f.owner.ID, f.editor.Email, model.RoleViewer, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.boards.AddMember(ctx, f.board.ID, tt.actor, tt.email, tt.role)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	member, err := f.boards.AddMember(ctx, f.board.ID, f.owner.ID, "  OUT@example.com ", model.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, f.outsider.ID, member.UserID)
	assert.Equal(t, model.RoleViewer, member.Role)

	d, err := f.access.CheckAccess(ctx, f.board.ID, f.outsider.ID, model.RoleViewer)
	require.NoError(t, err)
	assert.True(t, d.HasAccess)
}

func TestBoardService_ChangeMemberRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.boards.ChangeMemberRole(ctx, f.board.ID, f.owner.ID, f.viewer.ID, model.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, member.Role)

	_, err = f.boards.ChangeMemberRole(ctx, f.board.ID, f.owner.ID, f.outsider.ID, model.RoleEditor)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.boards.ChangeMemberRole(ctx, f.board.ID, f.owner.ID, f.viewer.ID, model.Role("admin"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.boards.ChangeMemberRole(ctx, f.board.ID, f.editor.ID, f.viewer.ID, model.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBoardService_RemoveMember_DropsAssignments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := f.addList(t, "To do")
	task := f.addTask(t, list.ID, "ship it")
	_, err := f.tasks.Assign(ctx, task.ID, f.owner.ID, f.editor.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.boards.RemoveMember(ctx, f.board.ID, f.owner.ID, f.owner.ID), ErrValidation)
	require.NoError(t, f.boards.RemoveMember(ctx, f.board.ID, f.owner.ID, f.editor.ID))

	reloaded, err := f.store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Assignees)

	_, err = f.tasks.Update(ctx, task.ID, f.editor.ID, UpdateTaskInput{Title: "nope"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBoardService_ListMembers(t *testing.T) {
	f := newFixture(t)

	roster, err := f.boards.ListMembers(context.Background(), f.board.ID, f.viewer.ID)

	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, roster.Owner.ID)
	assert.Len(t, roster.Members, 2)
}

func TestBoardService_FilterTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	todo := f.addList(t, "To do")
	doing := f.addList(t, "Doing")
	done := f.addList(t, "Done")

	bug, err := f.labels.Create(ctx, f.board.ID, f.owner.ID, "bug", "#FF0000")
	require.NoError(t, err)

	soon := fixedNow.Add(3 * time.Hour)
	a := f.addTask(t, todo.ID, "a")
	b := f.addTask(t, todo.ID, "b")
	c := f.addTask(t, doing.ID, "c")
	f.addTask(t, done.ID, "d")

	for _, id := range []uuid.UUID{a.ID, c.ID} {
		_, err := f.tasks.AddLabel(ctx, id, f.owner.ID, bug.ID)
		require.NoError(t, err)
	}
	_, err = f.tasks.Update(ctx, b.ID, f.owner.ID, UpdateTaskInput{Title: "b", DueDate: &soon})
	require.NoError(t, err)

	groups, err := f.boards.FilterTasks(ctx, f.board.ID, f.viewer.ID, filter.Criteria{LabelIDs: []uuid.UUID{bug.ID}})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "To do", groups[0].List.Title)
	assert.Equal(t, "a", groups[0].Tasks[0].Title)
	assert.Equal(t, "Doing", groups[1].List.Title)

	preset := filter.DueWithinDay
	groups, err = f.boards.FilterTasks(ctx, f.board.ID, f.viewer.ID, filter.Criteria{DueDatePreset: &preset})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Tasks, 1)
	assert.Equal(t, "b", groups[0].Tasks[0].Title)

	all, err := f.boards.FilterTasks(ctx, f.board.ID, f.viewer.ID, filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.boards.FilterTasks(ctx, f.board.ID, f.outsider.ID, filter.Criteria{})
	assert.ErrorIs(t, err, ErrForbidden)
}
