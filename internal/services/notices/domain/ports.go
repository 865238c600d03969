package domain

import "context"

// ServicePort is what the HTTP layer and other modules depend on
type ServicePort interface {
	Parse(ctx context.Context, in ParseInput) (ParseResp, error)
	Profiles(ctx context.Context) (ProfilesResp, error)
}

// CatalogPort is the read only view other modules use for registry stats
type CatalogPort interface {
	ProfileCount() int
}
