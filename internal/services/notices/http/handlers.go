// Package http provides HTTP transport for the notices API
package http

import (
	stdhttp "net/http"

	"maintnotice/internal/modkit/httpkit"
	"maintnotice/internal/services/notices/domain"
)

// Register mounts notice endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort, opts httpkit.JSONOptions) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ParseInput](r, "/parse", h.parse, opts)
	httpkit.Get(r, "/profiles", h.profiles)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /notices/parse Notices noticesParse
// @Summary Parse a maintenance notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param payload body domain.ParseInput true "Notice"
// @Success 200 {object} domain.ParseResp "ok"
// @Router /notices/parse [post]
func (h *handlers) parse(r *stdhttp.Request, in domain.ParseInput) (any, error) {
	return h.svc.Parse(r.Context(), in)
}

// swagger:route GET /notices/profiles Notices noticesProfiles
// @Summary List registered extraction profiles
// @Tags Notices
// @Produce json
// @Success 200 {object} domain.ProfilesResp "ok"
// @Router /notices/profiles [get]
func (h *handlers) profiles(r *stdhttp.Request) (any, error) {
	return h.svc.Profiles(r.Context())
}
