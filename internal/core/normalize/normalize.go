// Package normalize cleans notice bodies before profile matching.
// Pipeline order
// 1 Sanitize control characters and drop invalid UTF-8
// 2 Unicode NFKC so no-break and other compatibility spaces become spaces
// 3 Remove format characters (zero-width space/joiners, BOM, soft hyphen)
// 4 Width fold fullwidth forms to ASCII
// 5 CRLF and lone CR to LF
// 6 Collapse horizontal whitespace runs to one space and trim line ends
//
// Case is preserved: profiles match case-insensitively and circuit ids keep
// the vendor's spelling
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// keep the sanitized text rather than lose the notice
		ns = s
	}

	ns = strings.ReplaceAll(ns, "\r\n", "\n")
	ns = strings.ReplaceAll(ns, "\r", "\n")

	return collapseLines(ns)
}

// collapseLines folds runs of horizontal whitespace into a single ASCII
// space and trims each line. Line breaks are kept as-is
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = collapseSpaces(ln)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
