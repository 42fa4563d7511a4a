// Package repo provides the tasks repository implementation
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/services/tasks/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the tasks repository
type Storage interface {
	Insert(ctx context.Context, id string, w domain.TaskWrite) (domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	ListByAssignee(ctx context.Context, personID string, limit int) ([]domain.Task, error)
	ListByAssigneeSince(ctx context.Context, personID string, since time.Time) ([]domain.Task, error)
	Complete(ctx context.Context, id string) (domain.Task, error)
}

const taskCols = `id, org_id, title, COALESCE(description, ''), assignee_id,
	COALESCE(creator_id::text, ''), status, priority, due_date, COALESCE(due_phrase, ''),
	ai_generated, COALESCE(source, ''), COALESCE(confidence, 0), created_at, updated_at, completed_at`

func scanTask(row repokit.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.OrgID, &t.Title, &t.Description, &t.AssigneeID,
		&t.CreatorID, &t.Status, &t.Priority, &t.DueDate, &t.DuePhrase,
		&t.AIGenerated, &t.Source, &t.Confidence, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	return t, err
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, id string, w domain.TaskWrite) (domain.Task, error) {
	if id == "" {
		id = uuid.NewString()
	}
	t, err := scanTask(s.q.QueryRow(ctx, `
		INSERT INTO tasks (
			id, org_id, title, description, assignee_id, creator_id,
			status, priority, due_date, due_phrase, ai_generated, source, confidence,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, '')::uuid,
			'pending', $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''), $12,
			NOW(), NOW()
		)
		RETURNING `+taskCols,
		id, w.OrgID, w.Title, w.Description, w.AssigneeID, w.CreatorID,
		string(w.Priority), w.DueDate, w.DuePhrase, w.AIGenerated, w.Source, w.Confidence,
	))
	if err != nil {
		return domain.Task{}, perr.DBf("insert task: %v", err)
	}
	return t, nil
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(s.q.QueryRow(ctx,
		`SELECT `+taskCols+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	if err != nil {
		return domain.Task{}, perr.DBf("get task: %v", err)
	}
	return t, nil
}

// ListByAssignee returns the newest tasks for a person, newest first
func (s *pg) ListByAssignee(ctx context.Context, personID string, limit int) ([]domain.Task, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+taskCols+`
		 FROM tasks
		 WHERE assignee_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, personID, limit)
	if err != nil {
		return nil, perr.DBf("list tasks: %v", err)
	}
	defer rows.Close()
	return collect(rows)
}

// ListByAssigneeSince returns tasks created on or after since, newest first
func (s *pg) ListByAssigneeSince(ctx context.Context, personID string, since time.Time) ([]domain.Task, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+taskCols+`
		 FROM tasks
		 WHERE assignee_id = $1 AND created_at >= $2
		 ORDER BY created_at DESC`, personID, since)
	if err != nil {
		return nil, perr.DBf("list tasks since: %v", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Complete marks a task completed and stamps completed_at
func (s *pg) Complete(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(s.q.QueryRow(ctx, `
		UPDATE tasks
		SET status = 'completed', completed_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING `+taskCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, perr.NotFoundf("task %s not found", id)
	}
	if err != nil {
		return domain.Task{}, perr.DBf("complete task: %v", err)
	}
	return t, nil
}

func collect(rows repokit.Rows) ([]domain.Task, error) {
	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, perr.DBf("scan task: %v", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
