// Package module wires the notices API into HTTP via modkit
package module

import (
	"net/http"

	"maintnotice/internal/modkit"
	"maintnotice/internal/modkit/httpkit"
	"maintnotice/internal/platform/net/http/bind"
	"maintnotice/internal/platform/strings"
	"maintnotice/internal/services/notices/domain"

	noticeshttp "maintnotice/internal/services/notices/http"
	"maintnotice/internal/services/notices/service"
)

// Ports exposes the service for cross-module lookups
type Ports struct {
	Service domain.ServicePort
	Catalog domain.CatalogPort
}

// Module implements the notices module
type Module struct {
	deps   modkit.Deps
	b      modkit.Built
	ports  Ports
	bindOp httpkit.JSONOptions
}

// New constructs the notices module. deps.Extractor is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Extractor == nil {
		panic("notices: Extractor is required")
	}
	b := modkit.Build(append([]modkit.Option{modkit.WithName("notices"), modkit.WithPrefix("/notices")}, opts...)...)

	svc := service.New(deps.Extractor)
	bindOp := bind.DefaultJSONOptions()
	bindOp.MaxBytes = deps.Cfg.Prefix("MAINTPARSE_").MayInt64("MAX_BODY_BYTES", bindOp.MaxBytes)

	return &Module{
		deps:   deps,
		b:      b,
		ports:  Ports{Service: svc, Catalog: svc},
		bindOp: bindOp,
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		noticeshttp.Register(rr, m.ports.Service, m.bindOp)
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.b.Name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.b.Prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
