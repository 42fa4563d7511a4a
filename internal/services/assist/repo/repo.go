// Package repo provides the assist repository implementation
package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"taskpulse/internal/core/llm"
	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/services/assist/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// TranscriptionWrite is the audit row recorded after a pipeline run
type TranscriptionWrite struct {
	PersonID   string
	Filename   string
	Transcript string
	Language   string
	Segments   []llm.Segment
	Duration   float64
	Confidence float64
	Corrected  bool
	TaskCount  int
}

// Storage defines the assist repository
type Storage interface {
	InsertTranscription(ctx context.Context, w TranscriptionWrite) (string, error)
	InsertPrediction(ctx context.Context, personID string, p domain.PredictedTask, expiresAt time.Time) (domain.SavedPrediction, error)
	ListActivePredictions(ctx context.Context, personID string, now time.Time) ([]domain.SavedPrediction, error)
}

// InsertTranscription records one pipeline run for audit
func (s *pg) InsertTranscription(ctx context.Context, w TranscriptionWrite) (string, error) {
	segs, err := json.Marshal(w.Segments)
	if err != nil || w.Segments == nil {
		segs = []byte("[]")
	}

	id := uuid.NewString()
	_, err = s.q.Exec(ctx, `
		INSERT INTO transcriptions (
			id, person_id, filename, transcript, language, segments,
			duration_seconds, confidence, corrected, task_count, created_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6::jsonb, $7, $8, $9, $10, NOW())`,
		id, w.PersonID, w.Filename, w.Transcript, w.Language, string(segs),
		w.Duration, w.Confidence, w.Corrected, w.TaskCount,
	)
	if err != nil {
		return "", perr.DBf("insert transcription: %v", err)
	}
	return id, nil
}

// InsertPrediction persists one suggestion with an expiry window
func (s *pg) InsertPrediction(
	ctx context.Context, personID string, p domain.PredictedTask, expiresAt time.Time,
) (domain.SavedPrediction, error) {
	var out domain.SavedPrediction
	err := s.q.QueryRow(ctx, `
		INSERT INTO predictions (
			id, person_id, title, description, priority, reasoning, confidence, created_at, expires_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, NOW(), $8)
		RETURNING id, person_id, title, COALESCE(description, ''), priority, COALESCE(reasoning, ''),
			confidence, created_at, expires_at`,
		uuid.NewString(), personID, p.Title, p.Description, string(p.Priority), p.Reasoning, p.Confidence, expiresAt,
	).Scan(&out.ID, &out.PersonID, &out.Title, &out.Description, &out.Priority, &out.Reasoning,
		&out.Confidence, &out.CreatedAt, &out.ExpiresAt)
	if err != nil {
		return domain.SavedPrediction{}, perr.DBf("insert prediction: %v", err)
	}
	return out, nil
}

// ListActivePredictions returns unexpired rows, newest first.
// Expired rows stay in place for audit; they are filtered, never deleted
func (s *pg) ListActivePredictions(
	ctx context.Context, personID string, now time.Time,
) ([]domain.SavedPrediction, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, person_id, title, COALESCE(description, ''), priority, COALESCE(reasoning, ''),
			confidence, created_at, expires_at
		FROM predictions
		WHERE person_id = $1 AND expires_at > $2
		ORDER BY created_at DESC`, personID, now)
	if err != nil {
		return nil, perr.DBf("list predictions: %v", err)
	}
	defer rows.Close()

	var out []domain.SavedPrediction
	for rows.Next() {
		var p domain.SavedPrediction
		if err := rows.Scan(&p.ID, &p.PersonID, &p.Title, &p.Description, &p.Priority, &p.Reasoning,
			&p.Confidence, &p.CreatedAt, &p.ExpiresAt); err != nil {
			return nil, perr.DBf("scan prediction: %v", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
