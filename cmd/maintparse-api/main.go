// Command maintparse-api serves the notice parser over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"maintnotice/internal/core/extract"
	"maintnotice/internal/platform/config"
	"maintnotice/internal/platform/logger"
	phttp "maintnotice/internal/platform/net/http"

	"maintnotice/internal/services/api"
)

func main() {
	root := config.New()
	// service-scoped config for HTTP (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ex, err := extract.FromConfig(root)
	if err != nil {
		l.Panic().Err(err).Msg("profile registry failed to load")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Extractor:      ex,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
