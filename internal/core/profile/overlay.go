package profile

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	perr "maintnotice/internal/platform/errors"
)

// LoadFile reads an operator pack from YAML or JSON.
// JSON is read through the YAML decoder since it is a subset
func LoadFile(path string) (Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, perr.Wrapf(err, perr.ErrorCodeConfiguration, "profile: read %s", path)
	}
	return Decode(b)
}

// Decode parses a pack document
func Decode(b []byte) (Pack, error) {
	var pk Pack
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&pk); err != nil {
		return Pack{}, perr.Wrap(err, perr.ErrorCodeConfiguration, "profile: decode pack")
	}
	if err := pk.check(); err != nil {
		return Pack{}, err
	}
	return pk, nil
}

// Overlay reads path and applies it over the registry
func (r *Registry) Overlay(path string) error {
	pk, err := LoadFile(path)
	if err != nil {
		return err
	}
	return r.Apply(pk)
}
