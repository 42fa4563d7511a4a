package service

import (
	"context"
	"time"

	"taskpulse/internal/platform/logger"
	"taskpulse/internal/platform/store"
)

// pipelineEventCols matches the pipeline_events ClickHouse table
var pipelineEventCols = []string{
	"ts", "operation", "person_id", "parser_tier", "duration_ms", "ok",
}

// Telemetry writes pipeline events to ClickHouse, best-effort.
// A nil receiver or nil sink disables emission
type Telemetry struct {
	ch  store.Clickhouse
	log logger.Logger
}

// NewTelemetry constructs a Telemetry writer
func NewTelemetry(ch store.Clickhouse, log logger.Logger) *Telemetry {
	return &Telemetry{ch: ch, log: log}
}

// Emit records one pipeline event; failures are logged and swallowed
func (t *Telemetry) Emit(ctx context.Context, op, personID, tier string, took time.Duration, ok bool) {
	if t == nil || t.ch == nil {
		return
	}
	row := []any{time.Now().UTC(), op, personID, tier, uint64(took.Milliseconds()), ok}
	if err := t.ch.Insert(ctx, "pipeline_events", pipelineEventCols, [][]any{row}); err != nil {
		t.log.Warn().Err(err).Str("operation", op).Msg("pipeline event write failed")
	}
}
