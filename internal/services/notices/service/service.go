// Package service adapts the extraction engine to the notices API
package service

import (
	"context"

	"maintnotice/internal/core/extract"
	"maintnotice/internal/services/notices/domain"
)

// Service implements domain.ServicePort over an Extractor
type Service struct {
	ex *extract.Extractor
}

var (
	_ domain.ServicePort = (*Service)(nil)
	_ domain.CatalogPort = (*Service)(nil)
)

// New constructs the service
func New(ex *extract.Extractor) *Service { return &Service{ex: ex} }

// Parse runs one notice through the engine. An explicit profile wins over the
// sender address
func (s *Service) Parse(ctx context.Context, in domain.ParseInput) (domain.ParseResp, error) {
	var (
		res extract.Result
		err error
	)
	if in.Profile != "" {
		res, err = s.ex.ParseWith(ctx, in.Body, in.Profile)
	} else {
		res, err = s.ex.Parse(ctx, in.Body, in.From)
	}
	if err != nil {
		return domain.ParseResp{}, err
	}

	out := domain.ParseResp{
		ParseID:   res.ParseID,
		Profile:   res.Profile,
		Complete:  res.Complete,
		LastToken: res.LastToken,
	}
	if res.Complete {
		doc := res.Record.Document()
		out.Notice = &doc
	}
	return out, nil
}

// Profiles lists registered profiles, the default and sender mappings
func (s *Service) Profiles(_ context.Context) (domain.ProfilesResp, error) {
	reg := s.ex.Registry()
	return domain.ProfilesResp{
		Default:  reg.DefaultName(),
		Profiles: reg.List(),
		Senders:  reg.Senders(),
	}, nil
}

// ProfileCount returns the number of listed names, aliases included
func (s *Service) ProfileCount() int { return len(s.ex.Registry().List()) }
