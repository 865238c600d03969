// Package sender picks the extraction profile for a notice from the
// domain of the address that sent it
package sender

import (
	"net/mail"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"maintnotice/internal/core/profile"
	perr "maintnotice/internal/platform/errors"
)

var (
	vOnce sync.Once
	v     *validator.Validate
)

func validate() *validator.Validate {
	vOnce.Do(func() { v = validator.New(validator.WithRequiredStructEnabled()) })
	return v
}

// Domain returns the lowercased domain of a bare address or a
// "Name <addr>" form. The domain is everything after the last '@'
func Domain(from string) (string, error) {
	s := strings.TrimSpace(from)
	if strings.ContainsAny(s, "<>") {
		if a, err := mail.ParseAddress(s); err == nil {
			s = a.Address
		}
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return "", perr.WithField(perr.Formatf("sender %q has no domain", from), "from")
	}
	d := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(s[at+1:], ">")))
	if d == "" {
		return "", perr.WithField(perr.Formatf("sender %q has an empty domain", from), "from")
	}
	if err := validate().Var(d, "hostname_rfc1123"); err != nil {
		return "", perr.WithField(perr.Wrapf(err, perr.ErrorCodeFormat, "sender domain %q is not a valid hostname", d), "from")
	}
	return d, nil
}

// Resolver maps senders to profiles through a registry
type Resolver struct {
	reg *profile.Registry
}

// New returns a Resolver over reg
func New(reg *profile.Registry) *Resolver { return &Resolver{reg: reg} }

// Resolve returns the default profile for an empty sender, otherwise the
// profile mapped to the sender's domain. Unmapped domains do not fall back
func (r *Resolver) Resolve(from string) (profile.Profile, error) {
	if strings.TrimSpace(from) == "" {
		p := r.reg.Default()
		if p == nil {
			return nil, perr.WithOp(perr.Configurationf("no default profile registered"), "sender.Resolve")
		}
		return p, nil
	}
	d, err := Domain(from)
	if err != nil {
		return nil, perr.WithOp(err, "sender.Resolve")
	}
	name, ok := r.reg.ForSender(d)
	if !ok {
		return nil, perr.WithOp(perr.WithField(perr.Configurationf("sender domain %s has no profile mapping", d), "from"), "sender.Resolve")
	}
	p, err := r.reg.Get(name)
	if err != nil {
		return nil, perr.WithOp(err, "sender.Resolve")
	}
	return p, nil
}
