package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/filter"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// BoardSummary is a board as seen by one user.
type BoardSummary struct {
	Board   model.Board
	IsOwner bool
}

// BoardDetails is a board with its ordered lists (tasks included), labels
// and members.
type BoardDetails struct {
	Board   model.Board
	Lists   []model.TaskList
	Labels  []model.Label
	Members []model.Member
	IsOwner bool
}

// Roster is the owner and the members of a board.
type Roster struct {
	Owner   model.User
	Members []model.Member
}

type BoardService struct {
	store  repository.Store
	access *AccessService
	now    func() time.Time
}

func NewBoardService(store repository.Store, access *AccessService, now func() time.Time) *BoardService {
	if now == nil {
		now = time.Now
	}
	return &BoardService{store: store, access: access, now: now}
}

func (s *BoardService) Create(ctx context.Context, userID uuid.UUID, title, description string) (*model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}

	board := &model.Board{
		Title:       title,
		Description: description,
		OwnerID:     userID,
	}
	if err := s.store.Boards().Create(ctx, board); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"board_id": board.ID, "user_id": userID}).Info("board created")
	return board, nil
}

// List returns the boards the user owns or is a member of.
func (s *BoardService) List(ctx context.Context, userID uuid.UUID) ([]BoardSummary, error) {
	boards, err := s.store.Boards().ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, len(boards))
	for i, b := range boards {
		summaries[i] = BoardSummary{Board: b, IsOwner: b.OwnerID == userID}
	}
	return summaries, nil
}

func (s *BoardService) Get(ctx context.Context, boardID, userID uuid.UUID) (*BoardDetails, error) {
	board, decision, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleViewer)
	if err != nil {
		return nil, err
	}

	lists, err := s.store.TaskLists().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	labels, err := s.store.Labels().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	groups := groupTasks(lists, tasks)
	for i := range lists {
		lists[i].Tasks = groups[i].Tasks
	}

	return &BoardDetails{
		Board:   *board,
		Lists:   lists,
		Labels:  labels,
		Members: members,
		IsOwner: decision.IsOwner,
	}, nil
}

func (s *BoardService) Update(ctx context.Context, boardID, userID uuid.UUID, title, description string) (*model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	board, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleOwner)
	if err != nil {
		return nil, err
	}

	board.Title = title
	board.Description = description
	if err := s.store.Boards().Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Delete removes the board; lists, tasks, labels and members cascade.
func (s *BoardService) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	if _, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleOwner); err != nil {
		return err
	}
	if err := s.store.Boards().Delete(ctx, boardID); err != nil {
		return err
	}

	log.WithFields(log.Fields{"board_id": boardID, "user_id": userID}).Info("board deleted")
	return nil
}

func (s *BoardService) AddMember(ctx context.Context, boardID, userID uuid.UUID, email string, role model.Role) (*model.Member, error) {
	var member *model.Member
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		board, _, err := s.access.authorize(ctx, tx, boardID, userID, model.RoleOwner)
		if err != nil {
			return err
		}
		if err := assignable(role); err != nil {
			return err
		}

		user, err := tx.Users().FindByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
		}
		if user.ID == board.OwnerID {
			return fmt.Errorf("%w: user is the board owner", ErrValidation)
		}

		_, err = tx.Members().Get(ctx, boardID, user.ID)
		if err == nil {
			return fmt.Errorf("%w: user is already a member", ErrValidation)
		}
		if !errors.Is(err, repository.ErrMemberNotFound) {
			return err
		}

		member = &model.Member{
			BoardID: boardID,
			UserID:  user.ID,
			Role:    role,
			AddedAt: s.now().UTC(),
			User:    *user,
		}
		return tx.Members().Add(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"board_id": boardID, "member_id": member.UserID, "role": role}).Info("member added")
	return member, nil
}

func (s *BoardService) ChangeMemberRole(ctx context.Context, boardID, userID, memberUserID uuid.UUID, role model.Role) (*model.Member, error) {
	var member *model.Member
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, _, err := s.access.authorize(ctx, tx, boardID, userID, model.RoleOwner); err != nil {
			return err
		}
		if err := assignable(role); err != nil {
			return err
		}
		if err := tx.Members().UpdateRole(ctx, boardID, memberUserID, role); err != nil {
			return err
		}
		var err error
		member, err = tx.Members().Get(ctx, boardID, memberUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember revokes the membership and drops the user's task
// assignments on the board.
func (s *BoardService) RemoveMember(ctx context.Context, boardID, userID, memberUserID uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, _, err := s.access.authorize(ctx, tx, boardID, userID, model.RoleOwner); err != nil {
			return err
		}
		if memberUserID == userID {
			return fmt.Errorf("%w: cannot remove yourself", ErrValidation)
		}
		if err := tx.Members().Remove(ctx, boardID, memberUserID); err != nil {
			return err
		}
		return tx.Tasks().RemoveAssigneeFromBoard(ctx, boardID, memberUserID)
	})
}

func (s *BoardService) ListMembers(ctx context.Context, boardID, userID uuid.UUID) (*Roster, error) {
	board, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleViewer)
	if err != nil {
		return nil, err
	}

	owner, err := s.store.Users().GetByID(ctx, board.OwnerID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return &Roster{Owner: *owner, Members: members}, nil
}

// FilterTasks returns the board's lists in order, each holding only its
// matching tasks. Lists without matches are dropped.
func (s *BoardService) FilterTasks(ctx context.Context, boardID, userID uuid.UUID, criteria filter.Criteria) ([]filter.Group, error) {
	if _, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleViewer); err != nil {
		return nil, err
	}

	lists, err := s.store.TaskLists().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	return filter.Apply(groupTasks(lists, tasks), criteria, s.now()), nil
}

// groupTasks pairs every list with its tasks sorted by order. lists must
// already be in board order.
func groupTasks(lists []model.TaskList, tasks []model.Task) []filter.Group {
	byList := make(map[uuid.UUID][]model.Task, len(lists))
	for _, t := range tasks {
		byList[t.ListID] = append(byList[t.ListID], t)
	}

	groups := make([]filter.Group, len(lists))
	for i, l := range lists {
		listTasks := byList[l.ID]
		sortByOrder(listTasks)
		groups[i] = filter.Group{List: l, Tasks: listTasks}
	}
	return groups
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func assignable(role model.Role) error {
	if !role.Assignable() {
		return fmt.Errorf("%w: role must be %s or %s", ErrValidation, model.RoleEditor, model.RoleViewer)
	}
	return nil
}
