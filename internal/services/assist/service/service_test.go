package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskpulse/internal/core/llm"
	"taskpulse/internal/core/parse"
	"taskpulse/internal/modkit/repokit"
	ptime "taskpulse/internal/platform/time"

	adom "taskpulse/internal/services/assist/domain"
	"taskpulse/internal/services/assist/repo"
	ddom "taskpulse/internal/services/directory/domain"
	tdom "taskpulse/internal/services/tasks/domain"
)

var ref = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	transcribe func(ctx context.Context, audio []byte, filename string) (llm.TranscriptionResult, error)
	correct    func(ctx context.Context, text string, conf float64) (string, error)
	extract    func(ctx context.Context, text string, ec llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error)
	predict    func(ctx context.Context, pc llm.PredictionContext) ([]parse.Candidate, parse.Tier, error)
	analyze    func(ctx context.Context, tasksText string) (map[string]llm.Insight, error)
}

func (f *fakeGateway) Transcribe(ctx context.Context, audio []byte, filename string) (llm.TranscriptionResult, error) {
	return f.transcribe(ctx, audio, filename)
}

func (f *fakeGateway) CorrectTranscript(ctx context.Context, text string, conf float64) (string, error) {
	if f.correct == nil {
		return "", errors.New("unexpected correction call")
	}
	return f.correct(ctx, text, conf)
}

func (f *fakeGateway) ExtractTasks(ctx context.Context, text string, ec llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error) {
	return f.extract(ctx, text, ec)
}

func (f *fakeGateway) PredictTasks(ctx context.Context, pc llm.PredictionContext) ([]parse.Candidate, parse.Tier, error) {
	return f.predict(ctx, pc)
}

func (f *fakeGateway) AnalyzeTasks(ctx context.Context, tasksText string) (map[string]llm.Insight, error) {
	return f.analyze(ctx, tasksText)
}

type fakeDirectory struct {
	people map[string]ddom.Person
	org    []ddom.Person
	teams  []ddom.Team
}

func (f *fakeDirectory) GetPerson(_ context.Context, id string) (ddom.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return ddom.Person{}, errNotFound
	}
	return p, nil
}

func (f *fakeDirectory) GetPersonByUser(_ context.Context, userID string) (ddom.Person, error) {
	for _, p := range f.people {
		if p.UserID == userID {
			return p, nil
		}
	}
	return ddom.Person{}, errNotFound
}

func (f *fakeDirectory) ListOrgPeople(_ context.Context, orgID, excludeID string, limit int) ([]ddom.Person, error) {
	var out []ddom.Person
	for _, p := range f.org {
		if p.OrgID == orgID && p.ID != excludeID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDirectory) FindByName(_ context.Context, orgID, fragment string) (ddom.Person, bool, error) {
	for _, p := range f.org {
		if p.OrgID == orgID && strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			return p, true, nil
		}
	}
	return ddom.Person{}, false, nil
}

func (f *fakeDirectory) TeamsFor(_ context.Context, _ string) ([]ddom.Team, error) {
	return f.teams, nil
}

type fakeTasks struct {
	created  []tdom.TaskWrite
	history  []tdom.Task
	failWith string
}

func (f *fakeTasks) Create(_ context.Context, w tdom.TaskWrite) (tdom.Task, error) {
	if f.failWith != "" && strings.Contains(w.Title, f.failWith) {
		return tdom.Task{}, errors.New("insert refused")
	}
	f.created = append(f.created, w)
	return tdom.Task{ID: uuid.NewString(), Title: w.Title, AssigneeID: w.AssigneeID}, nil
}

func (f *fakeTasks) Get(_ context.Context, _ string) (tdom.Task, error) {
	return tdom.Task{}, errNotFound
}

func (f *fakeTasks) ListByAssignee(_ context.Context, _ string, limit int) ([]tdom.Task, error) {
	if len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeTasks) ListByAssigneeSince(_ context.Context, _ string, _ time.Time) ([]tdom.Task, error) {
	return f.history, nil
}

func (f *fakeTasks) Complete(_ context.Context, _ string) (tdom.Task, error) {
	return tdom.Task{}, errNotFound
}

var errNotFound = errors.New("not found")

type fakeStorage struct {
	transcriptions []repo.TranscriptionWrite
	predictions    []adom.SavedPrediction
}

func (f *fakeStorage) InsertTranscription(_ context.Context, w repo.TranscriptionWrite) (string, error) {
	f.transcriptions = append(f.transcriptions, w)
	return uuid.NewString(), nil
}

func (f *fakeStorage) InsertPrediction(_ context.Context, personID string, p adom.PredictedTask, expiresAt time.Time) (adom.SavedPrediction, error) {
	sp := adom.SavedPrediction{
		ID: uuid.NewString(), PersonID: personID,
		Title: p.Title, Description: p.Description,
		Priority: p.Priority, Confidence: p.Confidence,
		Reasoning: p.Reasoning,
		CreatedAt: ref, ExpiresAt: expiresAt,
	}
	f.predictions = append(f.predictions, sp)
	return sp, nil
}

func (f *fakeStorage) ListActivePredictions(_ context.Context, personID string, now time.Time) ([]adom.SavedPrediction, error) {
	var out []adom.SavedPrediction
	for _, p := range f.predictions {
		if p.PersonID == personID && p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeBinder struct{ s *fakeStorage }

func (f fakeBinder) Bind(repokit.Queryer) repo.Storage { return f.s }

type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errors.New("unused")
}
func (fakeDB) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("unused")
}
func (fakeDB) QueryRow(context.Context, string, ...any) repokit.Row { return nil }
func (fakeDB) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	return fn(fakeDB{})
}

func testSvc(t *testing.T, gw Gateway, dir *fakeDirectory, tasks *fakeTasks, fallback bool) (*Svc, *fakeStorage) {
	t.Helper()
	st := &fakeStorage{}
	s := New(zerolog.Nop(), fakeDB{}, fakeBinder{s: st}, Options{
		Gateway:             gw,
		Directory:           dir,
		Tasks:               tasks,
		Clock:               ptime.Fixed{T: ref},
		PlaceholderFallback: fallback,
	})
	return s, st
}

func stdDirectory() *fakeDirectory {
	me := ddom.Person{ID: "p-me", OrgID: "org-1", Name: "Riley Chen", Role: "Engineer"}
	jordan := ddom.Person{ID: "p-jordan", OrgID: "org-1", Name: "Jordan Park", Role: "Designer"}
	return &fakeDirectory{
		people: map[string]ddom.Person{"p-me": me},
		org:    []ddom.Person{me, jordan},
	}
}

func TestProcessAudioResolvesAssigneesAndDates(t *testing.T) {
	gw := &fakeGateway{
		transcribe: func(context.Context, []byte, string) (llm.TranscriptionResult, error) {
			return llm.TranscriptionResult{
				Text:       "meeting notes",
				Confidence: 0.95,
				Segments: []llm.Segment{
					{Start: 0, End: 2.5, Text: "meeting notes", Confidence: 0.95},
				},
			}, nil
		},
		extract: func(_ context.Context, _ string, ec llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error) {
			if len(ec.People) != 2 {
				t.Fatalf("expected requester plus one colleague in context, got %d", len(ec.People))
			}
			return []parse.Candidate{
				{Title: "Ship the beta", AssigneeName: "jordan", DuePhrase: "next week"},
				{Title: "Write release notes"},
			}, parse.TierStrict, nil
		},
	}
	tasks := &fakeTasks{}
	svc, st := testSvc(t, gw, stdDirectory(), tasks, false)

	out, err := svc.ProcessAudio(context.Background(), adom.AudioInput{
		Audio: []byte{1, 2, 3}, Filename: "standup.mp3", RequesterID: "p-me",
	})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if out.Transcription.Corrected {
		t.Fatalf("high-confidence transcript should not be corrected")
	}
	if len(out.ExtractedTasks) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(out.ExtractedTasks))
	}

	first := out.ExtractedTasks[0]
	if first.AssigneeID != "p-jordan" {
		t.Fatalf("mention should resolve to jordan, got %q", first.AssigneeID)
	}
	if first.DueDate == nil || !first.DueDate.Equal(ref.AddDate(0, 0, 7)) {
		t.Fatalf("next week should resolve to +7d, got %v", first.DueDate)
	}

	second := out.ExtractedTasks[1]
	if second.AssigneeID != "p-me" {
		t.Fatalf("unassigned candidate should default to the requester, got %q", second.AssigneeID)
	}

	if len(tasks.created) != 0 {
		t.Fatalf("proposal must not persist tasks")
	}
	if len(st.transcriptions) != 1 || st.transcriptions[0].TaskCount != 2 {
		t.Fatalf("expected one audit row with task_count 2, got %+v", st.transcriptions)
	}
	if len(st.transcriptions[0].Segments) != 1 || st.transcriptions[0].Segments[0].Text != "meeting notes" {
		t.Fatalf("audit row should carry the provider segments, got %+v", st.transcriptions[0].Segments)
	}
}

func TestProcessAudioCorrectsLowConfidence(t *testing.T) {
	gw := &fakeGateway{
		transcribe: func(context.Context, []byte, string) (llm.TranscriptionResult, error) {
			return llm.TranscriptionResult{Text: "garbled", Confidence: 0.5}, nil
		},
		correct: func(_ context.Context, text string, conf float64) (string, error) {
			if text != "garbled" || conf != 0.5 {
				t.Fatalf("correction got text=%q conf=%v", text, conf)
			}
			return "cleaned up", nil
		},
		extract: func(_ context.Context, text string, _ llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error) {
			if text != "cleaned up" {
				t.Fatalf("extraction should see the corrected text, got %q", text)
			}
			return nil, parse.TierNone, nil
		},
	}
	svc, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)

	out, err := svc.ProcessAudio(context.Background(), adom.AudioInput{
		Audio: []byte{1}, RequesterID: "p-me",
	})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if !out.Transcription.Corrected || out.Transcription.Text != "cleaned up" {
		t.Fatalf("expected corrected transcript, got %+v", out.Transcription)
	}
}

func TestProcessAudioKeepsOriginalWhenCorrectionFails(t *testing.T) {
	gw := &fakeGateway{
		transcribe: func(context.Context, []byte, string) (llm.TranscriptionResult, error) {
			return llm.TranscriptionResult{Text: "garbled", Confidence: 0.4}, nil
		},
		correct: func(context.Context, string, float64) (string, error) {
			return "", errors.New("model unavailable")
		},
		extract: func(_ context.Context, text string, _ llm.ExtractionContext) ([]parse.Candidate, parse.Tier, error) {
			if text != "garbled" {
				t.Fatalf("extraction should fall back to the raw transcript, got %q", text)
			}
			return nil, parse.TierNone, nil
		},
	}
	svc, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)

	out, err := svc.ProcessAudio(context.Background(), adom.AudioInput{Audio: []byte{1}, RequesterID: "p-me"})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if out.Transcription.Corrected {
		t.Fatalf("failed correction must not mark the transcript corrected")
	}
}

func TestPredictClampsConfidence(t *testing.T) {
	gw := &fakeGateway{
		predict: func(context.Context, llm.PredictionContext) ([]parse.Candidate, parse.Tier, error) {
			return []parse.Candidate{
				{Title: "A", Confidence: 1.7, HasConf: true},
				{Title: "B"},
				{Title: "C", Confidence: -2, HasConf: true, Priority: "very high urgency"},
			}, parse.TierStrict, nil
		},
	}
	svc, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)

	out, err := svc.Predict(context.Background(), "p-me")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if out[0].Confidence != 1.0 {
		t.Fatalf("overrange confidence should clamp to 1, got %v", out[0].Confidence)
	}
	if out[1].Confidence != 0.7 {
		t.Fatalf("missing confidence should default to 0.7, got %v", out[1].Confidence)
	}
	if out[2].Confidence != 0 {
		t.Fatalf("negative confidence should clamp to 0, got %v", out[2].Confidence)
	}
	if out[2].Priority != tdom.PriorityHigh {
		t.Fatalf("priority phrase should map to high, got %v", out[2].Priority)
	}
}

func TestPredictDefaultsProseConfidence(t *testing.T) {
	gw := &fakeGateway{
		predict: func(context.Context, llm.PredictionContext) ([]parse.Candidate, parse.Tier, error) {
			cands, tier := parse.Tasks(`[
				{"title": "A", "confidence": "very likely", "reasoning": "recurs every sprint"},
				{"title": "B", "confidence": 0.4}
			]`)
			return cands, tier, nil
		},
	}
	svc, st := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)

	out, err := svc.Predict(context.Background(), "p-me")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(out))
	}
	if out[0].Confidence != 0.7 {
		t.Fatalf("prose confidence should fall back to the default 0.7, got %v", out[0].Confidence)
	}
	if out[0].Reasoning != "recurs every sprint" {
		t.Fatalf("reasoning should carry through, got %q", out[0].Reasoning)
	}
	if out[1].Confidence != 0.4 {
		t.Fatalf("numeric confidence should pass through, got %v", out[1].Confidence)
	}

	saved, err := svc.SavePrediction(context.Background(), "p-me", out[0])
	if err != nil {
		t.Fatalf("SavePrediction: %v", err)
	}
	if saved.Reasoning != "recurs every sprint" {
		t.Fatalf("reasoning should persist with the prediction, got %q", saved.Reasoning)
	}
	if len(st.predictions) != 1 || st.predictions[0].Reasoning != "recurs every sprint" {
		t.Fatalf("stored row should carry the reasoning, got %+v", st.predictions)
	}
}

func TestPredictPlaceholderFallback(t *testing.T) {
	gw := &fakeGateway{
		predict: func(context.Context, llm.PredictionContext) ([]parse.Candidate, parse.Tier, error) {
			return nil, parse.TierNone, errors.New("gateway down")
		},
	}

	svc, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, true)
	out, err := svc.Predict(context.Background(), "p-me")
	if err != nil {
		t.Fatalf("fallback should swallow the gateway error, got %v", err)
	}
	if len(out) != 1 || out[0].Title != placeholderTitle || out[0].Confidence != 0.6 {
		t.Fatalf("expected the placeholder suggestion, got %+v", out)
	}

	strict, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)
	if _, err := strict.Predict(context.Background(), "p-me"); err == nil {
		t.Fatalf("without fallback the gateway error must surface")
	}
}

func TestInsightsEmptyHistorySkipsGateway(t *testing.T) {
	gw := &fakeGateway{
		analyze: func(context.Context, string) (map[string]llm.Insight, error) {
			t.Fatalf("gateway must not be called with no history")
			return nil, nil
		},
	}
	svc, _ := testSvc(t, gw, stdDirectory(), &fakeTasks{}, false)

	out, err := svc.Insights(context.Background(), "p-me", "week")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if out.Message != "not enough task data" || len(out.Insights) != 0 {
		t.Fatalf("expected the empty-history report, got %+v", out)
	}
	if out.Timeframe != "week" {
		t.Fatalf("timeframe should echo back, got %q", out.Timeframe)
	}
}

func TestInsightsAnalyzesHistory(t *testing.T) {
	gw := &fakeGateway{
		analyze: func(_ context.Context, tasksText string) (map[string]llm.Insight, error) {
			if !strings.Contains(tasksText, "Fix the build") {
				t.Fatalf("rendered history missing task title: %q", tasksText)
			}
			return map[string]llm.Insight{
				"completion_rate": {Description: "steady", Confidence: 0.9},
			}, nil
		},
	}
	tasks := &fakeTasks{history: []tdom.Task{{Title: "Fix the build", Status: tdom.StatusCompleted, Priority: tdom.PriorityHigh}}}
	svc, _ := testSvc(t, gw, stdDirectory(), tasks, false)

	out, err := svc.Insights(context.Background(), "p-me", "bogus")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if out.Timeframe != "month" {
		t.Fatalf("unknown timeframe should default to month, got %q", out.Timeframe)
	}
	if out.Insights["completion_rate"].Description != "steady" {
		t.Fatalf("insight lost in mapping: %+v", out)
	}
}

func TestSaveTasksToleratesBadItems(t *testing.T) {
	tasks := &fakeTasks{failWith: "refused"}
	svc, _ := testSvc(t, &fakeGateway{}, stdDirectory(), tasks, false)

	out, err := svc.SaveTasks(context.Background(), "p-me", []adom.SaveTaskItem{
		{Title: "Good task", DueDate: "2025-05-01"},
		{Title: "Odd date", DueDate: "whenever you get to it"},
		{Title: "This one is refused"},
	})
	if err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if out.Created != 2 || len(out.Tasks) != 2 {
		t.Fatalf("expected 2 created with the store failure skipped, got %+v", out)
	}

	if tasks.created[0].DueDate == nil {
		t.Fatalf("absolute due date should parse")
	}
	if tasks.created[1].DueDate != nil {
		t.Fatalf("unusable due date should save without one")
	}
	if tasks.created[0].AssigneeID != "p-me" {
		t.Fatalf("missing assignee should default to the saver")
	}
	if !tasks.created[0].AIGenerated || tasks.created[0].Source != "extraction" {
		t.Fatalf("saved tasks should be marked ai generated, got %+v", tasks.created[0])
	}
	if tasks.created[0].Confidence != saveConfidence {
		t.Fatalf("unset confidence should default to %v, got %v", saveConfidence, tasks.created[0].Confidence)
	}
}

func TestSaveTasksBadDueDateDoesNotBlockBatch(t *testing.T) {
	tasks := &fakeTasks{}
	svc, _ := testSvc(t, &fakeGateway{}, stdDirectory(), tasks, false)

	out, err := svc.SaveTasks(context.Background(), "p-me", []adom.SaveTaskItem{
		{Title: "First"},
		{Title: "Second", DueDate: "the twelfth of never"},
		{Title: "Third"},
	})
	if err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if out.Created != 3 || len(out.Tasks) != 3 {
		t.Fatalf("a bad due date must not block the batch, got %+v", out)
	}
	if tasks.created[1].DueDate != nil {
		t.Fatalf("second task should save without a due date")
	}
}

func TestPredictionsRoundTripWithExpiry(t *testing.T) {
	svc, _ := testSvc(t, &fakeGateway{}, stdDirectory(), &fakeTasks{}, false)

	saved, err := svc.SavePrediction(context.Background(), "p-me", adom.PredictedTask{
		Title: "Prep quarterly review", Confidence: 0.8,
	})
	if err != nil {
		t.Fatalf("SavePrediction: %v", err)
	}
	if !saved.ExpiresAt.Equal(ref.Add(predictionTTL)) {
		t.Fatalf("expiry should be now+ttl, got %v", saved.ExpiresAt)
	}
	if saved.Priority != tdom.PriorityMedium {
		t.Fatalf("empty priority should default to medium")
	}

	active, err := svc.ActivePredictions(context.Background(), "p-me")
	if err != nil {
		t.Fatalf("ActivePredictions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected the saved prediction to be active, got %d", len(active))
	}
}

func TestTimeframeDays(t *testing.T) {
	cases := map[string]int{"week": 7, "month": 30, "quarter": 90, "year": 365, "": 30, "decade": 30}
	for tf, want := range cases {
		if _, got := timeframeDays(tf); got != want {
			t.Fatalf("timeframeDays(%q) = %d, want %d", tf, got, want)
		}
	}
}
