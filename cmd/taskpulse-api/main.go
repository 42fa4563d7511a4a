// @title         TaskPulse API
// @version       0.1.0
// @description   Team task management with an audio-to-tasks pipeline

package main

import (
	"context"

	"github.com/joho/godotenv"

	"taskpulse/internal/platform/config"
	"taskpulse/internal/platform/logger"
	phttp "taskpulse/internal/platform/net/http"
	"taskpulse/internal/platform/store"

	"taskpulse/internal/services/api"
	"taskpulse/internal/services/authn"
)

func main() {
	// optional .env for local runs; real deployments set the environment
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	svcCfg := root.Prefix("SERVICE_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	chURL := chCfg.MayString("DBURL", "")

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "taskpulse-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				// telemetry sink is optional; no DSN means no CH
				Enabled: chURL != "",
				URL:     chURL,
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	verifier := authn.New(authn.FromConfig(root.Prefix("AUTH_")))

	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:        svcCfg,
			Store:         st,
			Logger:        l,
			Auth:          verifier,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
