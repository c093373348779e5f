package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type LabelService struct {
	store  repository.Store
	access *AccessService
}

func NewLabelService(store repository.Store, access *AccessService) *LabelService {
	return &LabelService{store: store, access: access}
}

func (s *LabelService) Create(ctx context.Context, boardID, userID uuid.UUID, name, color string) (*model.Label, error) {
	name, err := validateLabel(name, color)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleEditor); err != nil {
		return nil, err
	}

	label := &model.Label{BoardID: boardID, Name: name, Color: color}
	if err := s.store.Labels().Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) Get(ctx context.Context, labelID, userID uuid.UUID) (*model.Label, error) {
	label, err := s.store.Labels().GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.access.authorize(ctx, s.store, label.BoardID, userID, model.RoleViewer); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) List(ctx context.Context, boardID, userID uuid.UUID) ([]model.Label, error) {
	if _, _, err := s.access.authorize(ctx, s.store, boardID, userID, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.Labels().ListByBoard(ctx, boardID)
}

func (s *LabelService) Update(ctx context.Context, labelID, userID uuid.UUID, name, color string) (*model.Label, error) {
	name, err := validateLabel(name, color)
	if err != nil {
		return nil, err
	}
	label, err := s.store.Labels().GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.access.authorize(ctx, s.store, label.BoardID, userID, model.RoleEditor); err != nil {
		return nil, err
	}

	label.Name = name
	label.Color = color
	if err := s.store.Labels().Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// Delete removes the label from the board and from every task carrying it.
func (s *LabelService) Delete(ctx context.Context, labelID, userID uuid.UUID) error {
	label, err := s.store.Labels().GetByID(ctx, labelID)
	if err != nil {
		return err
	}
	if _, _, err := s.access.authorize(ctx, s.store, label.BoardID, userID, model.RoleEditor); err != nil {
		return err
	}
	return s.store.Labels().Delete(ctx, labelID)
}

func validateLabel(name, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !colorPattern.MatchString(color) {
		return "", fmt.Errorf("%w: color must be a hex code like #1A2B3C", ErrValidation)
	}
	return name, nil
}
