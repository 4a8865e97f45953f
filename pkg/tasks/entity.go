package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one user; every read/write path filters by the
// owner as well as the id.
type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput carries the caller-supplied fields for a new task.
type CreateInput struct {
	Title       string
	Description string
	Completed   bool
}

// Patch is a partial update; nil fields keep their current value.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
