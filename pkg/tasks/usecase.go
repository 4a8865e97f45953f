package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase encapsulates owner-scoped task operations.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch Patch) (Task, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrValidation("title is required")
	}
	now := time.Now().UTC()
	t := Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (Task, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, patch Patch) (Task, error) {
	t, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return Task{}, err
	}
	if patch.Empty() {
		return t, nil
	}
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if t.Title == "" {
		return Task{}, ErrValidation("title is required")
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateForOwner(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
