// Package extract runs a profile over a notice body and routes every named
// capture to its field handler, then finalizes and checks the record
package extract

import (
	"context"

	"github.com/google/uuid"

	"maintnotice/internal/core/normalize"
	"maintnotice/internal/core/notice"
	"maintnotice/internal/core/profile"
	"maintnotice/internal/core/sender"
	perr "maintnotice/internal/platform/errors"
	"maintnotice/internal/platform/logger"
)

// Result is the outcome of one parse. Incomplete is not an error
type Result struct {
	ParseID   string
	Profile   string
	Complete  bool
	LastToken string
	Record    *notice.Record
}

// Options controls Extractor behavior
type Options struct {
	// Normalize cleans the body before matching
	Normalize bool
}

// Extractor parses notices against a profile registry
type Extractor struct {
	reg      *profile.Registry
	resolver *sender.Resolver
	norm     *normalize.Normalizer
	handlers map[string]notice.Handler
	opts     Options
}

// seam for tests
var newParseID = func() string { return uuid.NewString() }

// New creates an Extractor with the standard handler set
func New(reg *profile.Registry, opts Options) *Extractor {
	return &Extractor{
		reg:      reg,
		resolver: sender.New(reg),
		norm:     normalize.New(),
		handlers: notice.Handlers(),
		opts:     opts,
	}
}

// Registry returns the registry the extractor reads from
func (e *Extractor) Registry() *profile.Registry { return e.reg }

// Dispatch applies every match of p over text to rec, left to right and
// capture by capture, so later matches overwrite earlier values. Captures
// without a handler are skipped. It returns the last dispatched capture name
func Dispatch(text string, p profile.Profile, rec *notice.Record, hs map[string]notice.Handler) (string, error) {
	var last string
	for _, m := range p.FindAll(text) {
		for _, c := range m {
			last = c.Name
			h, ok := hs[c.Name]
			if !ok {
				continue
			}
			if err := h(rec, c.Value); err != nil {
				return last, perr.WithOp(err, "extract.Dispatch")
			}
		}
	}
	return last, nil
}

// Parse resolves the profile from the sender and parses body with it.
// An empty sender selects the default profile
func (e *Extractor) Parse(ctx context.Context, body, from string) (Result, error) {
	id := newParseID()
	ctx = logger.WithParse(ctx, id, from)

	p, err := e.resolver.Resolve(from)
	if err != nil {
		logger.C(ctx).Debug().Err(err).Msg("profile resolution failed")
		return Result{ParseID: id}, err
	}
	return e.run(ctx, id, body, p)
}

// ParseWith parses body with the named profile, ignoring sender mapping
func (e *Extractor) ParseWith(ctx context.Context, body, name string) (Result, error) {
	id := newParseID()
	ctx = logger.WithParse(ctx, id, "")

	p, err := e.reg.Get(name)
	if err != nil {
		return Result{ParseID: id}, err
	}
	return e.run(ctx, id, body, p)
}

func (e *Extractor) run(ctx context.Context, id, body string, p profile.Profile) (Result, error) {
	log := logger.C(ctx)
	res := Result{ParseID: id, Profile: p.Name()}

	if err := ctx.Err(); err != nil {
		return res, perr.Wrap(err, perr.ErrorCodeUnavailable, "parse canceled")
	}

	text := body
	if e.opts.Normalize {
		text = e.norm.Normalize(body)
	}

	rec := notice.New()
	last, err := Dispatch(text, p, rec, e.handlers)
	res.LastToken = last
	if err != nil {
		log.Debug().Err(err).Str("profile", p.Name()).Str("last_token", last).Msg("dispatch failed")
		return res, err
	}
	if err := rec.Finalize(); err != nil {
		log.Debug().Err(err).Str("profile", p.Name()).Msg("finalize failed")
		return res, err
	}

	res.Record = rec
	res.Complete = rec.IsComplete()
	log.Debug().
		Str("profile", p.Name()).
		Bool("complete", res.Complete).
		Str("last_token", last).
		Msg("notice parsed")
	return res, nil
}
