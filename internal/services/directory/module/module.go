// Package module wires directory into the API using modkit
package module

import (
	"net/http"

	modkit "taskpulse/internal/modkit"
	"taskpulse/internal/modkit/httpkit"

	ddom "taskpulse/internal/services/directory/domain"
	dhttp "taskpulse/internal/services/directory/http"
	drepo "taskpulse/internal/services/directory/repo"
	dsvc "taskpulse/internal/services/directory/service"
)

// Module implements the directory API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc dsvc.Service
}

// Ports exposes the directory query surface to sibling modules
type Ports struct {
	Query ddom.QueryPort
}

// New constructs the directory module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("directory"),
		modkit.WithPrefix("/people"),
	}, opts...)...)

	svc := dsvc.New(deps.PG, drepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Query: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dhttp.Register(r, m.svc)
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
