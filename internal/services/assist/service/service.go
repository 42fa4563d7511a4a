// Package service contains the audio-to-tasks pipeline workflows
package service

import (
	"context"
	"time"

	"taskpulse/internal/core/llm"
	"taskpulse/internal/core/parse"
	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/platform/logger"
	pstrings "taskpulse/internal/platform/strings"
	ptime "taskpulse/internal/platform/time"

	adom "taskpulse/internal/services/assist/domain"
	"taskpulse/internal/services/assist/repo"
	ddom "taskpulse/internal/services/directory/domain"
	tdom "taskpulse/internal/services/tasks/domain"
	tsvc "taskpulse/internal/services/tasks/service"
)

// correctionThreshold gates the transcript repair pass
const correctionThreshold = 0.85

// saveConfidence is the default stored on extracted tasks without an explicit score
const saveConfidence = 0.85

// predictConfidence is the default for predictions without a usable score
const predictConfidence = 0.7

// historyLimit bounds the task history rendered into prompts
const historyLimit = 20

// colleagueLimit bounds the people offered as assignee candidates
const colleagueLimit = 10

// predictionTTL is how long a saved prediction stays active
const predictionTTL = 7 * 24 * time.Hour

// placeholderTitle is the degraded-mode suggestion when the gateway is down
const placeholderTitle = "Follow up on recent tasks"

// Gateway is the model-call surface the pipeline consumes
type Gateway interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (llm.TranscriptionResult, error)
	CorrectTranscript(ctx context.Context, transcript string, confidence float64) (string, error)
	ExtractTasks(ctx context.Context, text string, ec llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error)
	PredictTasks(ctx context.Context, pc llm.PredictionContext) ([]parse.Candidate, parse.Tier, error)
	AnalyzeTasks(ctx context.Context, tasksText string) (map[string]llm.Insight, error)
}

// Service is the public service port
type Service interface{ adom.ServicePort }

// Options control service behavior
type Options struct {
	// Gateway is required
	Gateway Gateway

	// Directory is required
	Directory ddom.QueryPort

	// Tasks is required
	Tasks tdom.StorePort

	// Telemetry is optional
	Telemetry *Telemetry

	// Clock defaults to the real clock
	Clock ptime.Clock

	// PlaceholderFallback degrades prediction gateway failures to a single
	// low-confidence placeholder instead of surfacing the error
	PlaceholderFallback bool
}

// Svc implements the service port
type Svc struct {
	log       logger.Logger
	db        repokit.TxRunner
	binder    repokit.Binder[repo.Storage]
	gw        Gateway
	directory ddom.QueryPort
	tasks     tdom.StorePort
	telemetry *Telemetry
	clock     ptime.Clock
	fallback  bool
}

// New constructs the service
func New(log logger.Logger, db repokit.TxRunner, binder repokit.Binder[repo.Storage], opt Options) *Svc {
	if db == nil {
		panic("assist.Service requires a non nil TxRunner")
	}
	if opt.Gateway == nil {
		panic("assist.Service requires a Gateway")
	}
	if opt.Directory == nil {
		panic("assist.Service requires the directory port")
	}
	if opt.Tasks == nil {
		panic("assist.Service requires the tasks port")
	}
	clock := opt.Clock
	if clock == nil {
		clock = ptime.Real{}
	}
	return &Svc{
		log:       log,
		db:        db,
		binder:    binder,
		gw:        opt.Gateway,
		directory: opt.Directory,
		tasks:     opt.Tasks,
		telemetry: opt.Telemetry,
		clock:     clock,
		fallback:  opt.PlaceholderFallback,
	}
}

// ProcessAudio runs transcribe, correct, extract and resolve.
// The returned proposal is for review; no task rows are written here
func (s *Svc) ProcessAudio(ctx context.Context, in adom.AudioInput) (adom.Proposal, error) {
	if len(in.Audio) == 0 {
		return adom.Proposal{}, perr.InvalidArgf("audio payload required")
	}

	start := s.clock.Now()

	tr, err := s.gw.Transcribe(ctx, in.Audio, in.Filename)
	if err != nil {
		s.emit(ctx, "transcribe", in.RequesterID, "", start, false)
		return adom.Proposal{}, err
	}

	text := tr.Text
	corrected := false
	if tr.Confidence <= correctionThreshold {
		fixed, cerr := s.gw.CorrectTranscript(ctx, tr.Text, tr.Confidence)
		if cerr != nil {
			// Keep the raw transcript; correction is an improvement pass, never a gate
			s.log.Warn().Err(cerr).Msg("transcript correction failed, keeping original")
		} else if fixed != "" {
			text = fixed
			corrected = true
		}
	}

	requester, ec := s.extractionContext(ctx, in.RequesterID)

	cands, tier, err := s.gw.ExtractTasks(ctx, text, ec)
	if err != nil {
		s.emit(ctx, "extract", in.RequesterID, string(tier), start, false)
		return adom.Proposal{}, err
	}

	proposed := s.resolveCandidates(ctx, cands, requester)

	if _, aerr := s.binder.Bind(s.db).InsertTranscription(ctx, repo.TranscriptionWrite{
		PersonID:   in.RequesterID,
		Filename:   in.Filename,
		Transcript: text,
		Language:   tr.Language,
		Segments:   tr.Segments,
		Duration:   tr.Duration,
		Confidence: tr.Confidence,
		Corrected:  corrected,
		TaskCount:  len(proposed),
	}); aerr != nil {
		s.log.Warn().Err(aerr).Msg("transcription audit write failed")
	}

	s.emit(ctx, "extract", in.RequesterID, string(tier), start, true)

	return adom.Proposal{
		Transcription: adom.TranscriptionView{
			Text:       text,
			Language:   tr.Language,
			Duration:   tr.Duration,
			Confidence: tr.Confidence,
			Corrected:  corrected,
		},
		ExtractedTasks: proposed,
	}, nil
}

// Predict suggests likely upcoming tasks from a person's recent history
func (s *Svc) Predict(ctx context.Context, personID string) ([]adom.PredictedTask, error) {
	start := s.clock.Now()

	person, err := s.directory.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	pc, err := s.predictionContext(ctx, person)
	if err != nil {
		return nil, err
	}

	cands, tier, gerr := s.gw.PredictTasks(ctx, pc)
	if gerr != nil {
		s.emit(ctx, "predict", personID, string(tier), start, false)
		if s.fallback {
			s.log.Warn().Err(gerr).Msg("prediction gateway failed, serving placeholder")
			return []adom.PredictedTask{{
				Title:      placeholderTitle,
				Priority:   tdom.PriorityMedium,
				Reasoning:  "prediction service unavailable; suggested from recent activity",
				Confidence: 0.6,
			}}, nil
		}
		return nil, gerr
	}

	out := make([]adom.PredictedTask, 0, len(cands))
	for _, c := range cands {
		conf := predictConfidence
		if c.HasConf {
			conf = clamp01(c.Confidence)
		}
		out = append(out, adom.PredictedTask{
			Title:       c.Title,
			Description: c.Description,
			Priority:    tdom.ParsePriority(c.Priority),
			Reasoning:   c.Reasoning,
			Confidence:  conf,
		})
	}

	s.emit(ctx, "predict", personID, string(tier), start, true)
	return out, nil
}

// Insights summarizes productivity patterns over a timeframe
func (s *Svc) Insights(ctx context.Context, personID, timeframe string) (adom.InsightReport, error) {
	start := s.clock.Now()

	tf, days := timeframeDays(timeframe)
	since := s.clock.Now().AddDate(0, 0, -days)

	history, err := s.tasks.ListByAssigneeSince(ctx, personID, since)
	if err != nil {
		return adom.InsightReport{}, err
	}
	if len(history) == 0 {
		return adom.InsightReport{
			Timeframe: tf,
			Insights:  map[string]adom.Insight{},
			Message:   "not enough task data",
		}, nil
	}

	raw, err := s.gw.AnalyzeTasks(ctx, historyText(history))
	if err != nil {
		s.emit(ctx, "insights", personID, "", start, false)
		return adom.InsightReport{}, err
	}

	insights := make(map[string]adom.Insight, len(raw))
	for k, v := range raw {
		insights[k] = adom.Insight{Description: v.Description, Confidence: clamp01(v.Confidence)}
	}

	s.emit(ctx, "insights", personID, "", start, true)
	return adom.InsightReport{Timeframe: tf, Insights: insights}, nil
}

// SaveTasks persists reviewed items one by one.
// A malformed due date unsets the date but still creates the task; a store
// failure skips the item and the batch continues
func (s *Svc) SaveTasks(ctx context.Context, personID string, items []adom.SaveTaskItem) (adom.SaveResult, error) {
	person, err := s.directory.GetPerson(ctx, personID)
	if err != nil {
		return adom.SaveResult{}, err
	}

	res := adom.SaveResult{Tasks: []adom.SavedRef{}}
	for _, it := range items {
		w := tdom.TaskWrite{
			OrgID:       person.OrgID,
			Title:       pstrings.TruncateRunes(pstrings.CollapseSpace(it.Title), tsvc.TitleMax),
			Description: it.Description,
			AssigneeID:  it.AssigneeID,
			CreatorID:   personID,
			Priority:    tdom.ParsePriority(it.Priority),
			AIGenerated: true,
			Source:      "extraction",
			Confidence:  it.Confidence,
		}
		if w.AssigneeID == "" {
			w.AssigneeID = personID
		}
		if w.Confidence == 0 {
			w.Confidence = saveConfidence
		}
		if it.DueDate != "" {
			if due, ok := s.resolveDue(it.DueDate); ok {
				w.DueDate = &due
			} else {
				s.log.Warn().Str("due_date", it.DueDate).Str("title", w.Title).
					Msg("unusable due date, saving task without one")
			}
		}

		created, cerr := s.tasks.Create(ctx, w)
		if cerr != nil {
			s.log.Warn().Err(cerr).Str("title", w.Title).Msg("task save failed, continuing batch")
			continue
		}
		res.Created++
		res.Tasks = append(res.Tasks, adom.SavedRef{ID: created.ID, Title: created.Title})
	}
	return res, nil
}

// SavePrediction persists one suggestion with the standard expiry window
func (s *Svc) SavePrediction(ctx context.Context, personID string, p adom.PredictedTask) (adom.SavedPrediction, error) {
	if p.Title == "" {
		return adom.SavedPrediction{}, perr.InvalidArgf("prediction title required")
	}
	if p.Priority == "" {
		p.Priority = tdom.PriorityMedium
	}
	p.Confidence = clamp01(p.Confidence)
	expires := s.clock.Now().Add(predictionTTL)
	return s.binder.Bind(s.db).InsertPrediction(ctx, personID, p, expires)
}

// ActivePredictions lists unexpired saved predictions, newest first
func (s *Svc) ActivePredictions(ctx context.Context, personID string) ([]adom.SavedPrediction, error) {
	return s.binder.Bind(s.db).ListActivePredictions(ctx, personID, s.clock.Now())
}

func (s *Svc) emit(ctx context.Context, op, personID, tier string, start time.Time, ok bool) {
	s.telemetry.Emit(ctx, op, personID, tier, s.clock.Now().Sub(start), ok)
}

// timeframeDays maps the public timeframe names to day windows, defaulting to month
func timeframeDays(tf string) (string, int) {
	switch tf {
	case "week":
		return "week", 7
	case "quarter":
		return "quarter", 90
	case "year":
		return "year", 365
	default:
		return "month", 30
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
