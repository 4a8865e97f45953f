package tasks

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrInvalidID = errors.New("invalid task id")
)

// ErrValidation reports a caller-supplied field violation.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository stores tasks. Reads and writes take the owner id so that a
// task is never visible or mutable through another user's identity.
type Repository interface {
	Create(ctx context.Context, t Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	UpdateForOwner(ctx context.Context, t Task) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// ParseID validates the wire form of a task identifier. It is the only
// place that knows what the store's id encoding looks like.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
