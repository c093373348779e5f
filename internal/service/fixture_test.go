package service

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskboard/internal/audit"
	"taskboard/internal/identity"
	"taskboard/internal/metrics"
	"taskboard/internal/model"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture wires every service over one in-memory store and seeds a board
// owned by owner, with editor and viewer as members and outsider unrelated.
type fixture struct {
	store   *fakeStore
	metrics *metrics.Metrics
	files   *memFiles
	people  *identity.Directory
	outbox  *outbox

	access      *AccessService
	boards      *BoardService
	lists       *TaskListService
	tasks       *TaskService
	labels      *LabelService
	comments    *CommentService
	attachments *AttachmentService
	users       *UserService

	owner, editor, viewer, outsider model.User
	board                           model.Board
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newFakeStore()
	m := metrics.New()
	now := func() time.Time { return fixedNow }
	recorder := audit.NewRecorder(now)
	people := identity.NewDirectory(store.Users(), time.Minute)
	files := newMemFiles()

	f := &fixture{store: store, metrics: m, files: files, people: people, outbox: &outbox{}}
	f.access = NewAccessService(store, m)
	f.boards = NewBoardService(store, f.access, now)
	f.lists = NewTaskListService(store, f.access, m)
	f.tasks = NewTaskService(store, f.access, people, recorder, m)
	f.labels = NewLabelService(store, f.access)
	f.comments = NewCommentService(store, f.access, now)
	f.attachments = NewAttachmentService(store, f.access, people, recorder, files, 16)
	f.users = NewUserService(store, people, f.outbox, TokenSettings{
		Secret:     "secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	f.users.now = now

	f.owner = f.addUser(t, "ada@example.com", "Ada")
	f.editor = f.addUser(t, "ed@example.com", "Ed")
	f.viewer = f.addUser(t, "vi@example.com", "Vi")
	f.outsider = f.addUser(t, "out@example.com", "Otto")

	ctx := context.Background()
	board, err := f.boards.Create(ctx, f.owner.ID, "Roadmap", "")
	require.NoError(t, err)
	f.board = *board

	_, err = f.boards.AddMember(ctx, board.ID, f.owner.ID, f.editor.Email, model.RoleEditor)
	require.NoError(t, err)
	_, err = f.boards.AddMember(ctx, board.ID, f.owner.ID, f.viewer.Email, model.RoleViewer)
	require.NoError(t, err)
	return f
}

func (f *fixture) addUser(t *testing.T, email, name string) model.User {
	t.Helper()
	u := &model.User{ID: uuid.New(), Email: email, Name: name}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return *u
}

func (f *fixture) addList(t *testing.T, title string) *model.TaskList {
	t.Helper()
	l, err := f.lists.Create(context.Background(), f.board.ID, f.owner.ID, title)
	require.NoError(t, err)
	return l
}

func (f *fixture) addTask(t *testing.T, listID uuid.UUID, title string) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), listID, f.owner.ID, CreateTaskInput{Title: title})
	require.NoError(t, err)
	return task
}

// taskOrder returns the titles of the list's tasks by order and checks the
// orders are dense.
func (f *fixture) taskOrder(t *testing.T, listID uuid.UUID) []string {
	t.Helper()
	tasks, err := f.store.Tasks().ListByList(context.Background(), listID)
	require.NoError(t, err)
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		require.Equal(t, i+1, task.Order, "task %s", task.Title)
		titles[i] = task.Title
	}
	return titles
}

func (f *fixture) listOrder(t *testing.T) []string {
	t.Helper()
	lists, err := f.store.TaskLists().ListByBoard(context.Background(), f.board.ID)
	require.NoError(t, err)
	titles := make([]string, len(lists))
	for i, l := range lists {
		require.Equal(t, i+1, l.Order, "list %s", l.Title)
		titles[i] = l.Title
	}
	return titles
}

// systemLog returns the system-log messages of the task in order.
func (f *fixture) systemLog(t *testing.T, taskID uuid.UUID) []string {
	t.Helper()
	comments, err := f.store.Comments().ListByTask(context.Background(), taskID)
	require.NoError(t, err)
	var out []string
	for _, c := range comments {
		if c.IsSystemLog {
			out = append(out, c.Content)
		}
	}
	return out
}

// outbox records confirmation codes instead of mailing them.
type outbox struct {
	codes map[string][]string
	err   error
}

func (o *outbox) SendConfirmationCode(ctx context.Context, to, code string, expires time.Duration) error {
	if o.err != nil {
		return o.err
	}
	if o.codes == nil {
		o.codes = map[string][]string{}
	}
	o.codes[to] = append(o.codes[to], code)
	return nil
}

func (o *outbox) last(to string) string {
	codes := o.codes[to]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFiles() *memFiles {
	return &memFiles{files: map[string][]byte{}}
}

func (m *memFiles) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return int64(len(data)), nil
}

func (m *memFiles) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memFiles) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *memFiles) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
