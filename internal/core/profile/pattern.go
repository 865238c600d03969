package profile

import (
	"regexp"
	"strings"

	perr "maintnotice/internal/platform/errors"
)

// Capture is a named group that took part in a match
type Capture struct {
	Name  string
	Value string
}

// Match holds the participating captures of one match in pattern order
type Match []Capture

// Profile extracts named captures from a notice body.
// Implementations must be safe for concurrent use
type Profile interface {
	Name() string
	// Captures lists capture names in pattern order
	Captures() []string
	// FindAll returns every non-overlapping match, left to right
	FindAll(text string) []Match
}

// Pattern is a Profile backed by one verbose regular expression compiled
// case-insensitive with dot matching newline
type Pattern struct {
	name        string
	description string
	source      string
	re          *regexp.Regexp
	captures    []string
}

// Compile builds a Pattern from verbose source
func Compile(name, source string) (*Pattern, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, perr.Configurationf("profile name is required")
	}
	expr := "(?is)" + stripVerbose(source)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfiguration, "profile %q: compile pattern", name)
	}
	var caps []string
	for _, n := range re.SubexpNames() {
		if n != "" {
			caps = append(caps, n)
		}
	}
	if len(caps) == 0 {
		return nil, perr.Configurationf("profile %q: pattern has no named captures", name)
	}
	return &Pattern{name: name, source: source, re: re, captures: caps}, nil
}

// MustCompile is Compile that panics on error
func MustCompile(name, source string) *Pattern {
	p, err := Compile(name, source)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the profile name
func (p *Pattern) Name() string { return p.name }

// Description returns the human description, if any
func (p *Pattern) Description() string { return p.description }

// Source returns the verbose source the pattern was compiled from
func (p *Pattern) Source() string { return p.source }

// Expr returns the compiled expression
func (p *Pattern) Expr() string { return p.re.String() }

// Captures lists capture names in pattern order
func (p *Pattern) Captures() []string { return append([]string(nil), p.captures...) }

// FindAll returns all non-overlapping matches. Captures that did not
// participate in a match are left out of it
func (p *Pattern) FindAll(text string) []Match {
	names := p.re.SubexpNames()
	idx := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Match, 0, len(idx))
	for _, loc := range idx {
		m := make(Match, 0, len(p.captures))
		for g := 1; g < len(names); g++ {
			if names[g] == "" {
				continue
			}
			s, e := loc[2*g], loc[2*g+1]
			if s < 0 {
				continue
			}
			m = append(m, Capture{Name: names[g], Value: text[s:e]})
		}
		out = append(out, m)
	}
	return out
}

// stripVerbose drops unescaped whitespace and # comments outside character
// classes. Escapes are kept as written
func stripVerbose(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	inClass := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\':
			b.WriteByte(c)
			if i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			}
		case inClass:
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// a leading ']' or '^]' is literal
			if i+1 < len(src) && src[i+1] == '^' {
				i++
				b.WriteByte(src[i])
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
				b.WriteByte(src[i])
			}
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
