// Package domain defines the types and interfaces for the tasks service
package domain

import (
	"strings"
	"time"
)

// Status enumerates the task lifecycle states
type Status string

// Status values
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority enumerates task urgency
type Priority string

// Priority values
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority maps free-form phrasing onto the enum, defaulting to medium
func ParsePriority(s string) Priority {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "critical"):
		return PriorityCritical
	case strings.Contains(s, "high"):
		return PriorityHigh
	case strings.Contains(s, "low"):
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is a persisted task row
type Task struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"org_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeID  string     `json:"assignee_id"`
	CreatorID   string     `json:"creator_id,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DuePhrase   string     `json:"due_phrase,omitempty"`
	AIGenerated bool       `json:"ai_generated"`
	Source      string     `json:"source,omitempty"`
	Confidence  float64    `json:"confidence,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskWrite carries the fields a caller may set on create
type TaskWrite struct {
	OrgID       string
	Title       string
	Description string
	AssigneeID  string
	CreatorID   string
	Priority    Priority
	DueDate     *time.Time
	DuePhrase   string
	AIGenerated bool
	Source      string
	Confidence  float64
}
