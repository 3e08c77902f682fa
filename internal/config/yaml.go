package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ringrecovery/internal/simtime"
)

// Overrides is a YAML-tagged subset of Config's fields, used to layer a file
// on top of an explicit in-code base. Delays are given in whole
// microseconds in the file, since that is the natural grain for leaf-spine
// link delays; omitted fields are left untouched by Merge, while a field
// set explicitly to zero is applied.
//
// Grounded on getployz-ployz/config/config.go's pattern: a small YAML
// struct, loaded with os.ReadFile + yaml.Unmarshal, where a missing file is
// not an error.
type Overrides struct {
	K         *int64   `yaml:"k,omitempty"`
	S         *int64   `yaml:"s,omitempty"`
	M         *int64   `yaml:"m,omitempty"`
	C0        *int64   `yaml:"c0,omitempty"`
	C1        *int64   `yaml:"c1,omitempty"`
	B         *int64   `yaml:"b,omitempty"`
	D0Micros  *int64   `yaml:"d0_micros,omitempty"`
	D1Micros  *int64   `yaml:"d1_micros,omitempty"`
	L         *float64 `yaml:"l,omitempty"`
	E         *float64 `yaml:"e,omitempty"`
	GGigabits *int64   `yaml:"g_gigabits,omitempty"`
}

// LoadFile reads a YAML overrides file at path. A missing file yields a
// zero-value Overrides (every field nil) rather than an error, matching the
// "file absent is not an error" convention the corpus uses for optional
// config.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("read config %q: %w", path, err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return o, nil
}

// Merge returns a copy of base with every non-nil field of o layered on
// top. base is never mutated.
func (o Overrides) Merge(base Config) Config {
	c := base
	if o.K != nil {
		c.K = *o.K
	}
	if o.S != nil {
		c.S = *o.S
	}
	if o.M != nil {
		c.M = *o.M
	}
	if o.C0 != nil {
		c.C0 = *o.C0
	}
	if o.C1 != nil {
		c.C1 = *o.C1
	}
	if o.B != nil {
		c.B = *o.B
	}
	if o.D0Micros != nil {
		c.D0 = simtime.Micros(*o.D0Micros)
	}
	if o.D1Micros != nil {
		c.D1 = simtime.Micros(*o.D1Micros)
	}
	if o.L != nil {
		c.L = *o.L
	}
	if o.E != nil {
		c.E = *o.E
	}
	if o.GGigabits != nil {
		c.G = simtime.FromGigabits(*o.GGigabits)
	}
	return c
}
