// Package module wires the assist pipeline into the API using modkit
package module

import (
	"net/http"

	"taskpulse/internal/core/llm"
	modkit "taskpulse/internal/modkit"
	"taskpulse/internal/modkit/httpkit"

	adom "taskpulse/internal/services/assist/domain"
	ahttp "taskpulse/internal/services/assist/http"
	arepo "taskpulse/internal/services/assist/repo"
	asvc "taskpulse/internal/services/assist/service"
	ddom "taskpulse/internal/services/directory/domain"
	tdom "taskpulse/internal/services/tasks/domain"
)

// Module implements the assist API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc asvc.Service
}

// Ports declares the injected sibling ports this module requires
type Ports struct {
	Directory ddom.QueryPort
	Tasks     tdom.StorePort
}

// ServicePorts exposes the assist surface to callers outside http
type ServicePorts struct {
	Assist adom.ServicePort
}

// New constructs the assist module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("assist"),
		modkit.WithPrefix("/assist"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Directory == nil {
		panic("assist module requires the directory port")
	}
	if injected.Tasks == nil {
		panic("assist module requires the tasks port")
	}

	cfg := FromConfig(deps.Cfg)

	gw := llm.New(llm.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		ChatModel:  cfg.ChatModel,
		AudioModel: cfg.AudioModel,
	}, deps.Log)

	svc := asvc.New(deps.Log, deps.PG, arepo.NewPG(), asvc.Options{
		Gateway:             gw,
		Directory:           injected.Directory,
		Tasks:               injected.Tasks,
		Telemetry:           asvc.NewTelemetry(deps.CH, deps.Log),
		PlaceholderFallback: cfg.PlaceholderFallback,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = ServicePorts{Assist: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ahttp.Register(r, m.svc)
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
