package manifest

import (
	"regexp"
	"slices"
)

// ReservedTargetName is the target name reserved for "build everything" on
// the command line; a manifest may not declare a target with this name.
const ReservedTargetName = "all"

// validTargetName matches acceptable target names after lowercasing.
var validTargetName = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Rule maps a file pattern to the destination directory its matches unpack to.
type Rule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Dest    string `yaml:"dest" json:"dest"`
}

// Target is one named packaging configuration. The zero value is a blank
// target; fields left empty by the manifest author inherit the package-level
// defaults when the target's section closes.
type Target struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	File              string `yaml:"file,omitempty" json:"file,omitempty"`
	Branch            string `yaml:"branch,omitempty" json:"branch,omitempty"`
	ModName           string `yaml:"modName,omitempty" json:"modName,omitempty"`
	ModMinGameVersion string `yaml:"modMinGameVersion,omitempty" json:"modMinGameVersion,omitempty"`

	Includes []string `yaml:"includes,omitempty" json:"includes,omitempty"`
	Excludes []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
	Filters  []string `yaml:"filters,omitempty" json:"filters,omitempty"`
	Flags    []string `yaml:"flags,omitempty" json:"flags,omitempty"`

	Rules   []Rule            `yaml:"rules,omitempty" json:"rules,omitempty"`
	Aliases map[string]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// HasFlag reports whether the target carries the given flag.
func (t *Target) HasFlag(flag string) bool {
	return slices.Contains(t.Flags, flag)
}

// Alias looks up an alias binding on the target.
func (t *Target) Alias(name string) (string, bool) {
	v, ok := t.Aliases[name]
	return v, ok
}

// setAlias sets an alias binding, allocating the map on first use. Later
// writes to the same key overwrite earlier ones.
func (t *Target) setAlias(key, value string) {
	if t.Aliases == nil {
		t.Aliases = make(map[string]string)
	}
	t.Aliases[key] = value
}

// clone returns a deep copy of the target. No slice or map is shared with
// the receiver, so the package-level defaults snapshot and every target own
// their data independently.
func (t *Target) clone() Target {
	c := *t
	c.Includes = slices.Clone(t.Includes)
	c.Excludes = slices.Clone(t.Excludes)
	c.Filters = slices.Clone(t.Filters)
	c.Flags = slices.Clone(t.Flags)
	c.Rules = slices.Clone(t.Rules)
	if t.Aliases != nil {
		c.Aliases = make(map[string]string, len(t.Aliases))
		for k, v := range t.Aliases {
			c.Aliases[k] = v
		}
	}
	return c
}

// applyDefaults merges the package-level defaults into the target.
//
// Aliases merge by key: defaults supply any key absent from the target's own
// map and never overwrite one it set itself. All other inheritable fields are
// replaced wholesale when the target left them empty. Name and Description
// are never inherited. An explicitly-set empty string is indistinguishable
// from unset, so it inherits too.
func (t *Target) applyDefaults(d *Target) {
	for k, v := range d.Aliases {
		if _, ok := t.Aliases[k]; !ok {
			t.setAlias(k, v)
		}
	}

	if t.File == "" {
		t.File = d.File
	}
	if t.Branch == "" {
		t.Branch = d.Branch
	}
	if t.ModName == "" {
		t.ModName = d.ModName
	}
	if t.ModMinGameVersion == "" {
		t.ModMinGameVersion = d.ModMinGameVersion
	}
	if len(t.Includes) == 0 {
		t.Includes = slices.Clone(d.Includes)
	}
	if len(t.Excludes) == 0 {
		t.Excludes = slices.Clone(d.Excludes)
	}
	if len(t.Filters) == 0 {
		t.Filters = slices.Clone(d.Filters)
	}
	if len(t.Flags) == 0 {
		t.Flags = slices.Clone(d.Flags)
	}
	if len(t.Rules) == 0 {
		t.Rules = slices.Clone(d.Rules)
	}
}
