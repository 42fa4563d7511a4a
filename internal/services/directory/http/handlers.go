// Package http provides http transport for directory
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"taskpulse/internal/modkit/httpkit"
	svc "taskpulse/internal/services/directory/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetJSON(r, "/", h.list)
	httpkit.GetJSON(r, "/{id}", h.get)
	httpkit.GetJSON(r, "/{id}/teams", h.teams)
}

type handlers struct{ svc svc.Service }

// @Summary List colleagues in the caller's organization
// @Tags directory
// @Produce json
// @Param org query string true "Organization id"
// @Success 200 {array} domain.Person "ok"
// @Router /people [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.ListOrgPeople(r.Context(), r.URL.Query().Get("org"), "", 50)
}

// @Summary Fetch one person
// @Tags directory
// @Produce json
// @Success 200 {object} domain.Person "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /people/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.GetPerson(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Teams a person belongs to
// @Tags directory
// @Produce json
// @Success 200 {array} domain.Team "ok"
// @Router /people/{id}/teams [get]
func (h *handlers) teams(r *stdhttp.Request) (any, error) {
	return h.svc.TeamsFor(r.Context(), chi.URLParam(r, "id"))
}
