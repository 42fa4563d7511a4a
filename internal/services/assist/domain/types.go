// Package domain defines the types and interfaces for the assist service
package domain

import (
	"time"

	tdom "taskpulse/internal/services/tasks/domain"
)

// AudioInput carries one uploaded recording through the pipeline
type AudioInput struct {
	Audio       []byte
	Filename    string
	RequesterID string
}

// TranscriptionView is the transcript portion of a proposal
type TranscriptionView struct {
	Text       string  `json:"text"`
	Language   string  `json:"language,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
	Confidence float64 `json:"confidence"`
	Corrected  bool    `json:"corrected"`
}

// ProposedTask is an extracted task candidate, resolved but not persisted
type ProposedTask struct {
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	AssigneeID   string        `json:"assignee_id"`
	AssigneeName string        `json:"assignee_name,omitempty"`
	Priority     tdom.Priority `json:"priority"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	DuePhrase    string        `json:"due_phrase,omitempty"`
	Confidence   float64       `json:"confidence"`
}

// Proposal is the ProcessAudio result; nothing in it is persisted as tasks
type Proposal struct {
	Transcription  TranscriptionView `json:"transcription"`
	ExtractedTasks []ProposedTask    `json:"extractedTasks"`
}

// PredictedTask is one forward-looking suggestion; Reasoning is the
// model's own rationale for proposing it
type PredictedTask struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Priority    tdom.Priority `json:"priority"`
	Reasoning   string        `json:"reasoning,omitempty"`
	Confidence  float64       `json:"confidence"`
}

// SavedPrediction is a persisted prediction with an expiry window
type SavedPrediction struct {
	ID          string        `json:"id"`
	PersonID    string        `json:"person_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Priority    tdom.Priority `json:"priority"`
	Reasoning   string        `json:"reasoning,omitempty"`
	Confidence  float64       `json:"confidence"`
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// InsightReport is the Insights result; Message is set when history is empty
type InsightReport struct {
	Timeframe string             `json:"timeframe"`
	Insights  map[string]Insight `json:"insights"`
	Message   string             `json:"message,omitempty"`
}

// Insight is one category observation
type Insight struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// SaveTaskItem is one reviewed task submitted for persistence
type SaveTaskItem struct {
	Title       string  `json:"title"       validate:"required,min=1"`
	Description string  `json:"description" validate:"omitempty,max=4000"`
	AssigneeID  string  `json:"assignee_id" validate:"omitempty,uuid4"`
	DueDate     string  `json:"due_date"    validate:"omitempty,max=64"`
	Priority    string  `json:"priority"    validate:"omitempty,max=32"`
	Confidence  float64 `json:"confidence"  validate:"omitempty,min=0,max=1"`
}

// SavedRef identifies one created task
type SavedRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SaveResult reports a batch save; failures are skipped, not fatal
type SaveResult struct {
	Created int        `json:"created"`
	Tasks   []SavedRef `json:"tasks"`
}
