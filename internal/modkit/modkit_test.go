package modkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"maintnotice/internal/platform/config"
	"maintnotice/internal/platform/logger"
	phttp "maintnotice/internal/platform/net/http"
)

type stub struct {
	mounted bool
	ports   any
}

func (s *stub) MountRoutes(phttp.Router) { s.mounted = true }
func (s *stub) Ports() any               { return s.ports }
func (s *stub) Name() string             { return "stub" }

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignature(t *testing.T) {
	var b Builder = func(_ Deps, _ ...Option) Module { return &stub{ports: "ok"} }
	if p := b(Deps{}).Ports(); p != "ok" {
		t.Fatalf("ports = %v", p)
	}
}

func TestDeps_Logger(t *testing.T) {
	if (Deps{}).Logger() == nil {
		t.Fatal("zero Deps must fall back to the root logger")
	}
	l := logger.Named("custom")
	if got := (Deps{Log: l, Cfg: config.New()}).Logger(); got != l {
		t.Fatal("explicit logger not returned")
	}
}

func TestOptions(t *testing.T) {
	type ports struct{ N int }
	var c buildCfg
	for _, o := range []Option{
		WithName("notices"),
		WithPrefix("/notices"),
		WithMiddlewares(func(h http.Handler) http.Handler { return h }),
		WithMiddlewares(func(h http.Handler) http.Handler { return h }),
		WithPorts(ports{N: 3}),
	} {
		o(&c)
	}
	if c.name != "notices" || c.prefix != "/notices" {
		t.Fatalf("name/prefix = %q %q", c.name, c.prefix)
	}
	if len(c.mw) != 2 {
		t.Fatalf("middlewares = %d", len(c.mw))
	}
	if p, ok := c.ports.(ports); !ok || p.N != 3 {
		t.Fatalf("ports = %#v", c.ports)
	}
}

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults %+v", b)
	}
	var r phttp.Router
	if b.Subrouter(r) != r {
		t.Fatal("default subrouter should be identity")
	}
	b.Register(r)
}

func TestBuild_CopiesMiddlewares(t *testing.T) {
	mw := []func(http.Handler) http.Handler{func(h http.Handler) http.Handler { return h }}
	b := Build(WithMiddlewares(mw...))
	mw[0] = nil
	if b.Mw[0] == nil {
		t.Fatal("Build must copy the middleware slice")
	}
}

func TestBuilt_Mount(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))

	subCalled := false
	b := Build(
		WithPrefix("/things"),
		WithMiddlewares(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Mod", "1")
				next.ServeHTTP(w, r)
			})
		}),
		WithSubrouter(func(r phttp.Router) phttp.Router { subCalled = true; return r }),
		WithRegister(func(r phttp.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "extra") })
		}),
	)
	b.Mount(srv.Router(), func(r phttp.Router) {
		r.Get("/own", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "own") })
	})

	if !subCalled {
		t.Fatal("subrouter hook not called")
	}
	for path, want := range map[string]string{"/things/own": "own", "/things/extra": "extra"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Body.String() != want || rec.Header().Get("X-Mod") != "1" {
			t.Fatalf("%s: body=%q header=%q", path, rec.Body.String(), rec.Header().Get("X-Mod"))
		}
	}
}
