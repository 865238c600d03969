// Package domain holds the transport facing types of the notices module
package domain

import (
	"maintnotice/internal/core/notice"
	"maintnotice/internal/core/profile"
)

// ParseInput is the request body of POST /notices/parse
type ParseInput struct {
	Body    string `json:"body" validate:"notblank"`
	From    string `json:"from,omitempty" validate:"omitempty,max=320"`
	Profile string `json:"profile,omitempty" validate:"omitempty,max=128"`
}

// ParseResp reports one parse. Notice is set only when the record is complete
type ParseResp struct {
	ParseID   string           `json:"parse_id"`
	Profile   string           `json:"profile"`
	Complete  bool             `json:"complete"`
	LastToken string           `json:"last_token,omitempty"`
	Notice    *notice.Document `json:"notice,omitempty"`
}

// ProfilesResp lists the registry contents
type ProfilesResp struct {
	Default  string            `json:"default"`
	Profiles []profile.Info    `json:"profiles"`
	Senders  map[string]string `json:"senders"`
}
