// Package modkit provides module wiring and core deps
package modkit

import (
	"taskpulse/internal/modkit/repokit"
	"taskpulse/internal/platform/config"
	"taskpulse/internal/platform/logger"
	"taskpulse/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
