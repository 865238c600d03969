// Package modkit provides module wiring and core deps
package modkit

import (
	"maintnotice/internal/core/extract"
	"maintnotice/internal/platform/config"
	"maintnotice/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// Extractor is the shared parse engine; its registry is safe for concurrent use
	Extractor *extract.Extractor
}

// Logger returns Log or the process root logger when unset
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}
