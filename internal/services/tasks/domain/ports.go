package domain

import (
	"context"
	"time"
)

// StorePort is the task persistence surface exposed to sibling modules
type StorePort interface {
	Create(ctx context.Context, w TaskWrite) (Task, error)
	Get(ctx context.Context, id string) (Task, error)
	ListByAssignee(ctx context.Context, personID string, limit int) ([]Task, error)
	ListByAssigneeSince(ctx context.Context, personID string, since time.Time) ([]Task, error)
	Complete(ctx context.Context, id string) (Task, error)
}
