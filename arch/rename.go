package arch

import "github.com/sirupsen/logrus"

// DefaultReservedNames collide with identifiers of the generated network.
var DefaultReservedNames = []string{"Server", "Model", "Simulator"}

// DefaultRenamePrefix is prepended to a colliding name.
const DefaultRenamePrefix = "Data"

// Renamer rewrites component names that equal a reserved identifier.
type Renamer struct {
	reserved map[string]bool
	prefix   string
}

// NewRenamer builds a renamer. Empty arguments select the defaults.
func NewRenamer(reserved []string, prefix string) *Renamer {
	if reserved == nil {
		reserved = DefaultReservedNames
	}
	if prefix == "" {
		prefix = DefaultRenamePrefix
	}
	r := &Renamer{reserved: make(map[string]bool, len(reserved)), prefix: prefix}
	for _, n := range reserved {
		r.reserved[n] = true
	}
	return r
}

// Apply returns name, prefixed until it no longer equals a reserved
// identifier. Apply is idempotent.
func (r *Renamer) Apply(name string) string {
	for r.reserved[name] {
		name = r.prefix + name
	}
	return name
}

// RenameAll returns a copy of components with every reserved name rewritten.
// A rewritten name never takes a name already used by another component;
// the prefix is repeated until it is free.
func (r *Renamer) RenameAll(components []ComponentRecord) []ComponentRecord {
	taken := make(map[string]bool, len(components))
	for _, c := range components {
		taken[c.Name] = true
	}
	out := make([]ComponentRecord, len(components))
	for i, c := range components {
		renamed := r.Apply(c.Name)
		if renamed != c.Name {
			for taken[renamed] {
				renamed = r.Apply(r.prefix + renamed)
			}
			taken[renamed] = true
			logrus.Infof("Renaming component %q to %q to avoid a reserved identifier", c.Name, renamed)
		}
		c.Name = renamed
		out[i] = c
	}
	return out
}
