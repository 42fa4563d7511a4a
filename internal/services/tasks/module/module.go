// Package module wires tasks into the API using modkit
package module

import (
	"net/http"

	modkit "taskpulse/internal/modkit"
	"taskpulse/internal/modkit/httpkit"

	tdom "taskpulse/internal/services/tasks/domain"
	thttp "taskpulse/internal/services/tasks/http"
	trepo "taskpulse/internal/services/tasks/repo"
	tsvc "taskpulse/internal/services/tasks/service"
)

// Module implements the tasks API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc tsvc.Service
}

// Ports exposes the task store surface to sibling modules
type Ports struct {
	Store tdom.StorePort
}

// New constructs the tasks module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("tasks"),
		modkit.WithPrefix("/tasks"),
	}, opts...)...)

	svc := tsvc.New(deps.PG, trepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Store: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		thttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
