package service

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type pair struct {
	a, b uuid.UUID
}

// memDB is an in-memory rendition of the relational schema.
type memDB struct {
	users       map[uuid.UUID]model.User
	boards      map[uuid.UUID]model.Board
	members     map[pair]model.Member // (board, user)
	lists       map[uuid.UUID]model.TaskList
	tasks       map[uuid.UUID]model.Task
	labels      map[uuid.UUID]model.Label
	taskLabels  map[pair]bool // (task, label)
	assignees   map[pair]bool // (task, user)
	comments    []model.Comment
	attachments map[uuid.UUID]model.Attachment
	refresh     map[uuid.UUID]model.RefreshToken

	// fail makes the named operation, e.g. "comments.Create", return the error.
	fail map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[uuid.UUID]model.User{},
		boards:      map[uuid.UUID]model.Board{},
		members:     map[pair]model.Member{},
		lists:       map[uuid.UUID]model.TaskList{},
		tasks:       map[uuid.UUID]model.Task{},
		labels:      map[uuid.UUID]model.Label{},
		taskLabels:  map[pair]bool{},
		assignees:   map[pair]bool{},
		attachments: map[uuid.UUID]model.Attachment{},
		refresh:     map[uuid.UUID]model.RefreshToken{},
		fail:        map[string]error{},
	}
}

func (db *memDB) clone() *memDB {
	return &memDB{
		users:       maps.Clone(db.users),
		boards:      maps.Clone(db.boards),
		members:     maps.Clone(db.members),
		lists:       maps.Clone(db.lists),
		tasks:       maps.Clone(db.tasks),
		labels:      maps.Clone(db.labels),
		taskLabels:  maps.Clone(db.taskLabels),
		assignees:   maps.Clone(db.assignees),
		comments:    slices.Clone(db.comments),
		attachments: maps.Clone(db.attachments),
		refresh:     maps.Clone(db.refresh),
		fail:        db.fail,
	}
}

func (db *memDB) failure(op string) error {
	return db.fail[op]
}

type fakeStore struct {
	db *memDB
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{db: newMemDB()}
}

func (f *fakeStore) Users() repository.UserStore                 { return fakeUsers{f.db} }
func (f *fakeStore) Boards() repository.BoardStore               { return fakeBoards{f.db} }
func (f *fakeStore) Members() repository.MemberStore             { return fakeMembers{f.db} }
func (f *fakeStore) TaskLists() repository.TaskListStore         { return fakeLists{f.db} }
func (f *fakeStore) Tasks() repository.TaskStore                 { return fakeTasks{f.db} }
func (f *fakeStore) Labels() repository.LabelStore               { return fakeLabels{f.db} }
func (f *fakeStore) Comments() repository.CommentStore           { return fakeComments{f.db} }
func (f *fakeStore) Attachments() repository.AttachmentStore     { return fakeAttachments{f.db} }
func (f *fakeStore) RefreshTokens() repository.RefreshTokenStore { return fakeRefreshTokens{f.db} }

// Transaction restores the snapshot taken before fn when fn fails.
func (f *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	snapshot := f.db.clone()
	if err := fn(f); err != nil {
		*f.db = *snapshot
		return err
	}
	return nil
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

type fakeUsers struct{ db *memDB }

func (r fakeUsers) Create(ctx context.Context, user *model.User) error {
	user.ID = newID(user.ID)
	r.db.users[user.ID] = *user
	return nil
}

func (r fakeUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r fakeUsers) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.db.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.db.users[user.ID] = *user
	return nil
}

type fakeBoards struct{ db *memDB }

func (r fakeBoards) Create(ctx context.Context, board *model.Board) error {
	board.ID = newID(board.ID)
	r.db.boards[board.ID] = *board
	return nil
}

func (r fakeBoards) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	b, ok := r.db.boards[id]
	if !ok {
		return nil, repository.ErrBoardNotFound
	}
	return &b, nil
}

func (r fakeBoards) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var out []model.Board
	for _, b := range r.db.boards {
		if _, member := r.db.members[pair{b.ID, userID}]; b.OwnerID == userID || member {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b model.Board) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r fakeBoards) Update(ctx context.Context, board *model.Board) error {
	if _, ok := r.db.boards[board.ID]; !ok {
		return repository.ErrBoardNotFound
	}
	r.db.boards[board.ID] = *board
	return nil
}

func (r fakeBoards) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	delete(r.db.boards, id)
	for k := range r.db.members {
		if k.a == id {
			delete(r.db.members, k)
		}
	}
	for lid, l := range r.db.lists {
		if l.BoardID == id {
			fakeLists{r.db}.Delete(ctx, lid)
		}
	}
	for lid, l := range r.db.labels {
		if l.BoardID == id {
			fakeLabels{r.db}.Delete(ctx, lid)
		}
	}
	return nil
}

type fakeMembers struct{ db *memDB }

func (r fakeMembers) Add(ctx context.Context, member *model.Member) error {
	member.ID = newID(member.ID)
	r.db.members[pair{member.BoardID, member.UserID}] = *member
	return nil
}

func (r fakeMembers) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error) {
	m, ok := r.db.members[pair{boardID, userID}]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}
	m.User = r.db.users[userID]
	return &m, nil
}

func (r fakeMembers) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error) {
	var out []model.Member
	for k, m := range r.db.members {
		if k.a == boardID {
			m.User = r.db.users[m.UserID]
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b model.Member) int { return a.AddedAt.Compare(b.AddedAt) })
	return out, nil
}

func (r fakeMembers) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role model.Role) error {
	k := pair{boardID, userID}
	m, ok := r.db.members[k]
	if !ok {
		return repository.ErrMemberNotFound
	}
	m.Role = role
	r.db.members[k] = m
	return nil
}

func (r fakeMembers) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	k := pair{boardID, userID}
	if _, ok := r.db.members[k]; !ok {
		return repository.ErrMemberNotFound
	}
	delete(r.db.members, k)
	return nil
}

type fakeLists struct{ db *memDB }

func (r fakeLists) Create(ctx context.Context, list *model.TaskList) error {
	list.ID = newID(list.ID)
	r.db.lists[list.ID] = *list
	return nil
}

func (r fakeLists) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskList, error) {
	l, ok := r.db.lists[id]
	if !ok {
		return nil, repository.ErrTaskListNotFound
	}
	return &l, nil
}

func (r fakeLists) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.TaskList, error) {
	var out []model.TaskList
	for _, l := range r.db.lists {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b model.TaskList) int { return cmp.Compare(a.Order, b.Order) })
	return out, nil
}

func (r fakeLists) GetMaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	maxOrder := 0
	for _, l := range r.db.lists {
		if l.BoardID == boardID {
			maxOrder = max(maxOrder, l.Order)
		}
	}
	return maxOrder, nil
}

func (r fakeLists) Update(ctx context.Context, list *model.TaskList) error {
	l, ok := r.db.lists[list.ID]
	if !ok {
		return repository.ErrTaskListNotFound
	}
	l.Title = list.Title
	r.db.lists[list.ID] = l
	return nil
}

func (r fakeLists) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.lists[id]; !ok {
		return repository.ErrTaskListNotFound
	}
	delete(r.db.lists, id)
	for tid, t := range r.db.tasks {
		if t.ListID == id {
			fakeTasks{r.db}.Delete(ctx, tid)
		}
	}
	return nil
}

func (r fakeLists) Reorder(ctx context.Context, lists []*model.TaskList) error {
	if err := r.db.failure("lists.Reorder"); err != nil {
		return err
	}
	for _, list := range lists {
		l := r.db.lists[list.ID]
		l.Order = list.Order
		r.db.lists[list.ID] = l
	}
	return nil
}

type fakeTasks struct{ db *memDB }

func (r fakeTasks) hydrate(t model.Task) model.Task {
	t.Labels, t.Assignees = nil, nil
	for k := range r.db.taskLabels {
		if k.a == t.ID {
			t.Labels = append(t.Labels, r.db.labels[k.b])
		}
	}
	for k := range r.db.assignees {
		if k.a == t.ID {
			t.Assignees = append(t.Assignees, r.db.users[k.b])
		}
	}
	slices.SortFunc(t.Labels, func(a, b model.Label) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortFunc(t.Assignees, func(a, b model.User) int { return cmp.Compare(a.Name, b.Name) })
	return t
}

func (r fakeTasks) sorted(match func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range r.db.tasks {
		if match(t) {
			out = append(out, r.hydrate(t))
		}
	}
	slices.SortFunc(out, func(a, b model.Task) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

func (r fakeTasks) Create(ctx context.Context, task *model.Task) error {
	task.ID = newID(task.ID)
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	stored := *task
	stored.Labels, stored.Assignees = nil, nil
	r.db.tasks[task.ID] = stored
	return nil
}

func (r fakeTasks) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	t, ok := r.db.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	t = r.hydrate(t)
	return &t, nil
}

func (r fakeTasks) ListByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error) {
	return r.sorted(func(t model.Task) bool { return t.ListID == listID }), nil
}

func (r fakeTasks) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	return r.sorted(func(t model.Task) bool { return r.db.lists[t.ListID].BoardID == boardID }), nil
}

func (r fakeTasks) GetMaxOrder(ctx context.Context, listID uuid.UUID) (int, error) {
	maxOrder := 0
	for _, t := range r.db.tasks {
		if t.ListID == listID {
			maxOrder = max(maxOrder, t.Order)
		}
	}
	return maxOrder, nil
}

func (r fakeTasks) Update(ctx context.Context, task *model.Task) error {
	t, ok := r.db.tasks[task.ID]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	t.DueDate = task.DueDate
	t.IsCompleted = task.IsCompleted
	t.DueDateNotificationSent = task.DueDateNotificationSent
	r.db.tasks[task.ID] = t
	return nil
}

func (r fakeTasks) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(r.db.tasks, id)
	for k := range r.db.taskLabels {
		if k.a == id {
			delete(r.db.taskLabels, k)
		}
	}
	for k := range r.db.assignees {
		if k.a == id {
			delete(r.db.assignees, k)
		}
	}
	return nil
}

func (r fakeTasks) Reorder(ctx context.Context, tasks []*model.Task) error {
	if err := r.db.failure("tasks.Reorder"); err != nil {
		return err
	}
	for _, task := range tasks {
		t := r.db.tasks[task.ID]
		t.ListID = task.ListID
		t.Order = task.Order
		r.db.tasks[task.ID] = t
	}
	return nil
}

func (r fakeTasks) AddLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	r.db.taskLabels[pair{taskID, labelID}] = true
	return nil
}

func (r fakeTasks) RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	delete(r.db.taskLabels, pair{taskID, labelID})
	return nil
}

func (r fakeTasks) AddAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	r.db.assignees[pair{taskID, userID}] = true
	return nil
}

func (r fakeTasks) RemoveAssignee(ctx context.Context, taskID, userID uuid.UUID) error {
	delete(r.db.assignees, pair{taskID, userID})
	return nil
}

func (r fakeTasks) RemoveAssigneeFromBoard(ctx context.Context, boardID, userID uuid.UUID) error {
	for k := range r.db.assignees {
		if k.b == userID && r.db.lists[r.db.tasks[k.a].ListID].BoardID == boardID {
			delete(r.db.assignees, k)
		}
	}
	return nil
}

func (r fakeTasks) ListDueBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	return r.sorted(func(t model.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(start) && !t.DueDate.After(end) &&
			!t.IsCompleted && !t.DueDateNotificationSent
	}), nil
}

func (r fakeTasks) MarkDueDateNotificationSent(ctx context.Context, id uuid.UUID) error {
	t, ok := r.db.tasks[id]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.DueDateNotificationSent = true
	r.db.tasks[id] = t
	return nil
}

type fakeLabels struct{ db *memDB }

func (r fakeLabels) Create(ctx context.Context, label *model.Label) error {
	label.ID = newID(label.ID)
	r.db.labels[label.ID] = *label
	return nil
}

func (r fakeLabels) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	l, ok := r.db.labels[id]
	if !ok {
		return nil, repository.ErrLabelNotFound
	}
	return &l, nil
}

func (r fakeLabels) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	var out []model.Label
	for _, l := range r.db.labels {
		if l.BoardID == boardID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b model.Label) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r fakeLabels) Update(ctx context.Context, label *model.Label) error {
	if _, ok := r.db.labels[label.ID]; !ok {
		return repository.ErrLabelNotFound
	}
	r.db.labels[label.ID] = *label
	return nil
}

func (r fakeLabels) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.labels[id]; !ok {
		return repository.ErrLabelNotFound
	}
	delete(r.db.labels, id)
	for k := range r.db.taskLabels {
		if k.b == id {
			delete(r.db.taskLabels, k)
		}
	}
	return nil
}

type fakeComments struct{ db *memDB }

func (r fakeComments) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.failure("comments.Create"); err != nil {
		return err
	}
	comment.ID = newID(comment.ID)
	r.db.comments = append(r.db.comments, *comment)
	return nil
}

func (r fakeComments) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.db.comments {
		if c.TaskID == taskID {
			c.Author = r.db.users[c.AuthorID]
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

type fakeAttachments struct{ db *memDB }

func (r fakeAttachments) Create(ctx context.Context, attachment *model.Attachment) error {
	attachment.ID = newID(attachment.ID)
	r.db.attachments[attachment.ID] = *attachment
	return nil
}

func (r fakeAttachments) GetByID(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	a, ok := r.db.attachments[id]
	if !ok {
		return nil, repository.ErrAttachmentNotFound
	}
	return &a, nil
}

func (r fakeAttachments) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	var out []model.Attachment
	for _, a := range r.db.attachments {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b model.Attachment) int { return a.UploadedAt.Compare(b.UploadedAt) })
	return out, nil
}

func (r fakeAttachments) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.attachments[id]; !ok {
		return repository.ErrAttachmentNotFound
	}
	delete(r.db.attachments, id)
	return nil
}

type fakeRefreshTokens struct{ db *memDB }

func (r fakeRefreshTokens) Create(ctx context.Context, token *model.RefreshToken) error {
	r.db.refresh[token.ID] = *token
	return nil
}

func (r fakeRefreshTokens) GetByID(ctx context.Context, id uuid.UUID) (*model.RefreshToken, error) {
	t, ok := r.db.refresh[id]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	return &t, nil
}

func (r fakeRefreshTokens) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.db.refresh[id]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.db.refresh, id)
	return nil
}

func (r fakeRefreshTokens) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for id, t := range r.db.refresh {
		if t.UserID == userID {
			delete(r.db.refresh, id)
			n++
		}
	}
	return n, nil
}
