// Package http provides http transport for the assist pipeline
package http

import (
	"io"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"taskpulse/internal/modkit/httpkit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/services/assist/domain"
	svc "taskpulse/internal/services/assist/service"
	tdom "taskpulse/internal/services/tasks/domain"
)

// maxAudioBytes bounds uploaded recordings
const maxAudioBytes = 25 << 20

// PredictInput selects whose history to predict from
type PredictInput struct {
	PersonID string `json:"person_id" validate:"required,uuid4"`
}

// SaveInput is the reviewed-tasks batch payload
type SaveInput struct {
	Tasks []domain.SaveTaskItem `json:"tasks" validate:"required,min=1,max=50,dive"`
}

// SavePredictionInput persists one suggestion
type SavePredictionInput struct {
	PersonID    string  `json:"person_id"   validate:"required,uuid4"`
	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=4000"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	Reasoning   string  `json:"reasoning"   validate:"omitempty,max=2000"`
	Confidence  float64 `json:"confidence"  validate:"omitempty,min=0,max=1"`
}

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/audio", httpkit.Call(h.audio))
	httpkit.PostJSON[PredictInput](r, "/predict", h.predict)
	httpkit.GetJSON(r, "/insights/{person_id}", h.insights)
	httpkit.PostJSON[SaveInput](r, "/tasks/save", h.save)
	httpkit.PostJSON[SavePredictionInput](r, "/predictions", h.savePrediction)
	httpkit.GetJSON(r, "/predictions/{person_id}", h.predictions)
}

type handlers struct{ svc svc.Service }

// @Summary Transcribe a recording and propose tasks
// @Tags assist
// @Accept mpfd
// @Produce json
// @Param audio formData file true "Audio recording"
// @Param person_id formData string false "Requester override"
// @Success 200 {object} domain.Proposal "ok"
// @Failure 502 {object} httpkit.Envelope "model gateway failure"
// @Router /assist/audio [post]
func (h *handlers) audio(r *stdhttp.Request) (any, error) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		return nil, perr.InvalidArgf("multipart form required: %v", err)
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		return nil, perr.InvalidArgf("audio file part required")
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		return nil, perr.InvalidArgf("read audio: %v", err)
	}

	requester := r.FormValue("person_id")
	if requester == "" {
		requester, err = httpkit.Person(r)
		if err != nil {
			return nil, err
		}
	}

	return h.svc.ProcessAudio(r.Context(), domain.AudioInput{
		Audio:       audio,
		Filename:    header.Filename,
		RequesterID: requester,
	})
}

// @Summary Predict likely upcoming tasks for a person
// @Tags assist
// @Accept json
// @Produce json
// @Param payload body PredictInput true "Predict"
// @Success 200 {array} domain.PredictedTask "ok"
// @Router /assist/predict [post]
func (h *handlers) predict(r *stdhttp.Request, in PredictInput) (any, error) {
	out, err := h.svc.Predict(r.Context(), in.PersonID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"predictedTasks": out}, nil
}

// @Summary Productivity insights over a timeframe
// @Tags assist
// @Produce json
// @Param timeframe query string false "week, month, quarter or year" default(month)
// @Success 200 {object} domain.InsightReport "ok"
// @Router /assist/insights/{person_id} [get]
func (h *handlers) insights(r *stdhttp.Request) (any, error) {
	return h.svc.Insights(r.Context(),
		chi.URLParam(r, "person_id"),
		r.URL.Query().Get("timeframe"))
}

// @Summary Persist reviewed tasks
// @Tags assist
// @Accept json
// @Produce json
// @Param payload body SaveInput true "Tasks"
// @Success 200 {object} domain.SaveResult "ok"
// @Router /assist/tasks/save [post]
func (h *handlers) save(r *stdhttp.Request, in SaveInput) (any, error) {
	person, err := httpkit.Person(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SaveTasks(r.Context(), person, in.Tasks)
}

// @Summary Persist one prediction
// @Tags assist
// @Accept json
// @Produce json
// @Param payload body SavePredictionInput true "Prediction"
// @Success 200 {object} domain.SavedPrediction "ok"
// @Router /assist/predictions [post]
func (h *handlers) savePrediction(r *stdhttp.Request, in SavePredictionInput) (any, error) {
	return h.svc.SavePrediction(r.Context(), in.PersonID, domain.PredictedTask{
		Title:       in.Title,
		Description: in.Description,
		Priority:    tdom.Priority(in.Priority),
		Reasoning:   in.Reasoning,
		Confidence:  in.Confidence,
	})
}

// @Summary Unexpired saved predictions for a person
// @Tags assist
// @Produce json
// @Success 200 {array} domain.SavedPrediction "ok"
// @Router /assist/predictions/{person_id} [get]
func (h *handlers) predictions(r *stdhttp.Request) (any, error) {
	return h.svc.ActivePredictions(r.Context(), chi.URLParam(r, "person_id"))
}
