// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "maintnotice/internal/modkit"
	"maintnotice/internal/modkit/httpkit"
	str "maintnotice/internal/platform/strings"

	metahttp "maintnotice/internal/services/api/meta/http"
)

// Ports are the cross module ports meta consumes; pass them with modkit.WithPorts
type Ports struct {
	Catalog metahttp.Catalog
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	in        Ports
	startedAt time.Time
	service   string
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	return &Module{
		deps:      deps,
		b:         b,
		in:        in,
		startedAt: time.Now(),
		service:   deps.Cfg.Prefix("CORE_API_").MayString("SERVICE_NAME", "maintparse-api"),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.service,
			StartedAt:   m.startedAt,
			Catalog:     m.in.Catalog,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }

// Ports implements the modkit.Module interface; meta exports nothing
func (m *Module) Ports() any { return nil }
