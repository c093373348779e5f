package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CommentService handles user-authored comments. System-log comments are
// only written by the audit recorder.
type CommentService struct {
	store  repository.Store
	access *AccessService
	now    func() time.Time
}

func NewCommentService(store repository.Store, access *AccessService, now func() time.Time) *CommentService {
	if now == nil {
		now = time.Now
	}
	return &CommentService{store: store, access: access, now: now}
}

func (s *CommentService) Add(ctx context.Context, taskID, userID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if _, err := s.access.authorizeTask(ctx, s.store, taskID, userID, model.RoleViewer); err != nil {
		return nil, err
	}

	author, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		TaskID:    taskID,
		AuthorID:  userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
		Author:    *author,
	}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns user comments and system-log entries in creation order.
func (s *CommentService) List(ctx context.Context, taskID, userID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.access.authorizeTask(ctx, s.store, taskID, userID, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByTask(ctx, taskID)
}
