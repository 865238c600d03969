// Package profile loads extraction profiles from the embedded profiles.json
// pack and keeps them in a registry keyed by name and by sender domain
package profile

import (
	_ "embed"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	perr "maintnotice/internal/platform/errors"
)

//go:embed profiles.json
var embedded []byte

// PackVersion is the only pack layout understood
const PackVersion = 1

// Lines is pattern source written either as one string or as a list of
// lines joined with newlines
type Lines string

// UnmarshalJSON accepts a string or an array of strings
func (l *Lines) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = Lines(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	*l = Lines(strings.Join(parts, "\n"))
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars
func (l *Lines) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*l = Lines(n.Value)
		return nil
	}
	var parts []string
	if err := n.Decode(&parts); err != nil {
		return err
	}
	*l = Lines(strings.Join(parts, "\n"))
	return nil
}

// Spec is one profile entry in a pack
type Spec struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Pattern     Lines  `json:"pattern" yaml:"pattern"`
}

// Pack is the on-disk profile set
type Pack struct {
	Version  int               `json:"version" yaml:"version"`
	Meta     map[string]any    `json:"meta,omitempty" yaml:"meta,omitempty"`
	Default  string            `json:"default,omitempty" yaml:"default,omitempty"`
	Profiles []Spec            `json:"profiles,omitempty" yaml:"profiles,omitempty"`
	Aliases  map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Senders  map[string]string `json:"senders,omitempty" yaml:"senders,omitempty"`
}

// Builtin decodes the embedded pack
func Builtin() (Pack, error) {
	var pk Pack
	if err := json.Unmarshal(embedded, &pk); err != nil {
		return Pack{}, perr.Wrap(err, perr.ErrorCodeConfiguration, "profile: parse profiles.json")
	}
	if err := pk.check(); err != nil {
		return Pack{}, err
	}
	return pk, nil
}

// Load returns a registry holding the built-in profiles
func Load() (*Registry, error) {
	pk, err := Builtin()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	if err := r.Apply(pk); err != nil {
		return nil, err
	}
	return r, nil
}

// MustLoad is Load that panics on error
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

func (pk Pack) check() error {
	if pk.Version != PackVersion {
		return perr.Configurationf("profile: unsupported pack version %d (want %d)", pk.Version, PackVersion)
	}
	return nil
}
