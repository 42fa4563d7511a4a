// Package service contains task workflows
package service

import (
	"context"
	"strings"
	"time"

	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	pstrings "taskpulse/internal/platform/strings"
	"taskpulse/internal/services/tasks/domain"
	"taskpulse/internal/services/tasks/repo"
)

// TitleMax bounds stored task titles in runes
const TitleMax = 200

// Service is the public service port
type Service interface{ domain.StorePort }

// Svc implements the service port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Svc {
	if db == nil {
		panic("tasks.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tasks.Service requires a non nil binder")
	}
	return &Svc{db: db, binder: binder}
}

// Create validates, normalizes and inserts one task
func (s *Svc) Create(ctx context.Context, w domain.TaskWrite) (domain.Task, error) {
	w.Title = pstrings.TruncateRunes(pstrings.CollapseSpace(w.Title), TitleMax)
	if w.Title == "" {
		return domain.Task{}, perr.InvalidArgf("task title required")
	}
	if strings.TrimSpace(w.AssigneeID) == "" {
		return domain.Task{}, perr.InvalidArgf("task assignee required")
	}
	if w.Priority == "" {
		w.Priority = domain.PriorityMedium
	}
	return s.binder.Bind(s.db).Insert(ctx, "", w)
}

// Get returns one task by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.binder.Bind(s.db).Get(ctx, id)
}

// ListByAssignee returns a person's newest tasks
func (s *Svc) ListByAssignee(ctx context.Context, personID string, limit int) ([]domain.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.binder.Bind(s.db).ListByAssignee(ctx, personID, limit)
}

// ListByAssigneeSince returns a person's tasks created within a window
func (s *Svc) ListByAssigneeSince(ctx context.Context, personID string, since time.Time) ([]domain.Task, error) {
	return s.binder.Bind(s.db).ListByAssigneeSince(ctx, personID, since)
}

// Complete marks a task completed
func (s *Svc) Complete(ctx context.Context, id string) (domain.Task, error) {
	return s.binder.Bind(s.db).Complete(ctx, id)
}
