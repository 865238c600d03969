// Package api provides the HTTP API for the application
package api

import (
	"time"

	"maintnotice/internal/core/extract"
	"maintnotice/internal/platform/config"
	"maintnotice/internal/platform/logger"
	phttp "maintnotice/internal/platform/net/http"

	"maintnotice/internal/modkit"
	"maintnotice/internal/modkit/httpkit"
	"maintnotice/internal/modkit/module"
	"maintnotice/internal/modkit/swaggerkit"

	metamod "maintnotice/internal/services/api/meta/module"
	"maintnotice/internal/services/notices/domain"
	noticesmod "maintnotice/internal/services/notices/module"
)

// Options are the API options
type Options struct {
	// Config is the root (unprefixed) config view
	Config         config.Conf
	Extractor      *extract.Extractor
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:       opt.Logger,
		Cfg:       opt.Config,
		Extractor: opt.Extractor,
	}

	// notices owns the catalog port that meta reports on
	notices := noticesmod.New(deps)
	catalog := module.MustPortsOf[domain.CatalogPort](notices)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Catalog: catalog})),
		notices,
	}

	if opt.EnableSwagger {
		swaggerkit.Register(profileNames(opt.Extractor))
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins:  apiCfg.MayCSV("CORS_ORIGINS", nil),
		MaxBodyBytes: opt.Config.Prefix("MAINTPARSE_").MayInt64("MAX_BODY_BYTES", 1<<20),
		SlowRequest:  apiCfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	deps.Logger().Info().
		Int("modules", len(mods)).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Msg("api mounted")
}

// profileNames documents the registered profile names on the parse request
func profileNames(ex *extract.Extractor) swaggerkit.SpecMutator {
	return func(spec map[string]any) {
		comps, _ := spec["components"].(map[string]any)
		schemas, _ := comps["schemas"].(map[string]any)
		req, _ := schemas["ParseRequest"].(map[string]any)
		props, _ := req["properties"].(map[string]any)
		prop, ok := props["profile"].(map[string]any)
		if !ok {
			return
		}
		var names []any
		for _, info := range ex.Registry().List() {
			names = append(names, info.Name)
		}
		prop["enum"] = names
	}
}
