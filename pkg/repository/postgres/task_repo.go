package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/taskboard/pkg/tasks"
)

// TaskRepository implements tasks.Repository backed by PostgreSQL (pgx).
// Every query filters by owner_id as well as id.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) (*TaskRepository, error) {
	repo := &TaskRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *TaskRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	`)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, t tasks.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.OwnerID, t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]tasks.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []tasks.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (tasks.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasks.Task{}, tasks.ErrNotFound
		}
		return tasks.Task{}, err
	}
	return t, nil
}

func (r *TaskRepository) UpdateForOwner(ctx context.Context, t tasks.Task) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, completed = $5, updated_at = $6
		WHERE id = $1 AND owner_id = $2
	`, t.ID, t.OwnerID, t.Title, t.Description, t.Completed, t.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return tasks.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return tasks.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (tasks.Task, error) {
	var t tasks.Task
	var created, updated time.Time
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &created, &updated); err != nil {
		return tasks.Task{}, err
	}
	t.CreatedAt = created.UTC()
	t.UpdatedAt = updated.UTC()
	return t, nil
}
