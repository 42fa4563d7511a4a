// Package http provides http transport for tasks
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskpulse/internal/modkit/httpkit"
	"taskpulse/internal/services/tasks/domain"
	svc "taskpulse/internal/services/tasks/service"
)

// CreateInput is the POST /tasks payload
type CreateInput struct {
	OrgID       string  `json:"org_id"      validate:"required,uuid4"`
	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=4000"`
	AssigneeID  string  `json:"assignee_id" validate:"omitempty,uuid4"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	DueDate     string  `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
	Confidence  float64 `json:"confidence"  validate:"omitempty,min=0,max=1"`
}

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[CreateInput](r, "/", h.create)
	httpkit.GetJSON(r, "/", h.mine)
	httpkit.GetJSON(r, "/{id}", h.get)
	r.Post("/{id}/complete", httpkit.Call(h.complete))
}

type handlers struct{ svc svc.Service }

// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param payload body CreateInput true "Task"
// @Success 200 {object} domain.Task "ok"
// @Router /tasks [post]
func (h *handlers) create(r *stdhttp.Request, in CreateInput) (any, error) {
	person, err := httpkit.Person(r)
	if err != nil {
		return nil, err
	}
	assignee := in.AssigneeID
	if assignee == "" {
		assignee = person
	}
	w := domain.TaskWrite{
		OrgID:       in.OrgID,
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  assignee,
		CreatorID:   person,
		Priority:    domain.Priority(in.Priority),
		Confidence:  in.Confidence,
	}
	if in.DueDate != "" {
		due, err := time.Parse("2006-01-02", in.DueDate)
		if err == nil {
			w.DueDate = &due
		}
	}
	return h.svc.Create(r.Context(), w)
}

// @Summary List the caller's tasks, newest first
// @Tags tasks
// @Produce json
// @Success 200 {array} domain.Task "ok"
// @Router /tasks [get]
func (h *handlers) mine(r *stdhttp.Request) (any, error) {
	person, err := httpkit.Person(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListByAssignee(r.Context(), person, 20)
}

// @Summary Fetch one task
// @Tags tasks
// @Produce json
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /tasks/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Mark a task completed
// @Tags tasks
// @Produce json
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /tasks/{id}/complete [post]
func (h *handlers) complete(r *stdhttp.Request) (any, error) {
	return h.svc.Complete(r.Context(), chi.URLParam(r, "id"))
}
