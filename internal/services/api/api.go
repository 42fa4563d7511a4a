// Package api provides the HTTP API for the application
package api

import (
	"taskpulse/internal/platform/config"
	"taskpulse/internal/platform/logger"
	phttp "taskpulse/internal/platform/net/http"
	pmw "taskpulse/internal/platform/net/middleware"
	"taskpulse/internal/platform/store"

	"taskpulse/internal/modkit"
	"taskpulse/internal/modkit/httpkit"
	"taskpulse/internal/modkit/module"
	"taskpulse/internal/modkit/swaggerkit"

	metamod "taskpulse/internal/services/api/meta/module"
	assistmod "taskpulse/internal/services/assist/module"
	dirmod "taskpulse/internal/services/directory/module"
	tasksmod "taskpulse/internal/services/tasks/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Auth          pmw.AuthPort
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	authed := modkit.WithMiddlewares(httpkit.Auth(opt.Auth))

	directory := dirmod.New(deps, authed)
	tasks := tasksmod.New(deps, authed)

	// assist consumes the sibling ports directly rather than going over http
	assist := assistmod.New(deps, authed, modkit.WithPorts(assistmod.Ports{
		Directory: module.MustPortsOf[dirmod.Ports](directory).Query,
		Tasks:     module.MustPortsOf[tasksmod.Ports](tasks).Store,
	}))

	mods := []module.Module{
		metamod.New(deps),
		directory,
		tasks,
		assist,
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
