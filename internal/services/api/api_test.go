package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maintnotice/internal/core/extract"
	"maintnotice/internal/core/profile"
	"maintnotice/internal/modkit/module"
	"maintnotice/internal/platform/config"
	phttp "maintnotice/internal/platform/net/http"
	"maintnotice/internal/services/notices/domain"
	noticesmod "maintnotice/internal/services/notices/module"
)

func mount(t *testing.T, swagger bool) http.Handler {
	t.Helper()
	module.Reset()
	t.Cleanup(module.Reset)
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))
	Mount(srv.Router(), Options{
		Config:        config.New(),
		Extractor:     extract.New(profile.MustLoad(), extract.Options{Normalize: true}),
		EnableSwagger: swagger,
	})
	return srv.Handler()
}

func TestMount_Routes(t *testing.T) {
	h := mount(t, false)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{"GET", "/api/v1/meta/health", "", http.StatusOK},
		{"GET", "/api/v1/meta/version", "", http.StatusOK},
		{"GET", "/api/v1/notices/profiles", "", http.StatusOK},
		{"POST", "/api/v1/notices/parse", `{"body":"Start: 2024-Jan-05 10:00 UTC"}`, http.StatusOK},
		{"GET", "/api/docs/doc.json", "", http.StatusNotFound},
		{"GET", "/debug/pprof/", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: %d (%s)", tc.method, tc.path, rec.Code, rec.Body.String())
		}
	}

	// health carries the profile count from the notices catalog
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/meta/health", nil))
	var env struct {
		Data struct {
			OK       bool `json:"ok"`
			Profiles int  `json:"profiles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.OK || env.Data.Profiles < 3 {
		t.Fatalf("health = %+v", env.Data)
	}

	// ports are published in the module registry
	ports, ok := module.PortsAs[noticesmod.Ports]("notices")
	if !ok || ports.Service == nil {
		t.Fatal("notices ports not registered")
	}
	var _ domain.ServicePort = ports.Service
}

func TestMount_SwaggerListsProfiles(t *testing.T) {
	h := mount(t, true)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"labeled_fields"`) {
		t.Fatal("profile names not injected into spec")
	}
}
