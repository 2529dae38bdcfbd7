// Package selector expands a target's source patterns against a real file
// tree and resolves unpack-rule destinations. It is the bridge between the
// parsed manifest and the archive writer.
package selector

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/squattingmonk/nasher/internal/manifest"
	"github.com/squattingmonk/nasher/internal/utils"
)

// File is a source file selected for a target.
type File struct {
	Path     string // location on disk
	Rel      string // slash-separated path relative to the root
	Filtered bool   // matched a filter pattern; collected but not packed
}

// rule is a compiled unpack rule.
type rule struct {
	pattern glob.Glob
	raw     string
	dest    string
}

// Selector matches a source tree against one target's include, exclude,
// filter, and rule patterns. Patterns use glob syntax with '/' as the
// separator, so '*' stays within one directory and '**' crosses them.
type Selector struct {
	root     string
	includes []glob.Glob
	excludes []glob.Glob
	filters  []glob.Glob
	rules    []rule
	aliases  map[string]string
}

// New compiles the target's patterns into a Selector rooted at root.
func New(root string, t *manifest.Target) (*Selector, error) {
	s := &Selector{root: root, aliases: t.Aliases}

	var err error
	if s.includes, err = compileAll("include", t.Includes); err != nil {
		return nil, err
	}
	if s.excludes, err = compileAll("exclude", t.Excludes); err != nil {
		return nil, err
	}
	if s.filters, err = compileAll("filter", t.Filters); err != nil {
		return nil, err
	}

	for _, r := range t.Rules {
		g, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid rule pattern %q: %w", r.Pattern, err)
		}
		s.rules = append(s.rules, rule{pattern: g, raw: r.Pattern, dest: r.Dest})
	}

	return s, nil
}

func compileAll(kind string, patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", kind, p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Files walks the root and returns the files the target selects, in walk
// order. A file is selected when it matches at least one include pattern and
// no exclude pattern. Matches of a filter pattern are returned with Filtered
// set so callers can drop them from the packed artifact.
func (s *Selector) Files() ([]File, error) {
	var files []File

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = utils.NormalizeRel(rel)

		if !matchAny(s.includes, rel) || matchAny(s.excludes, rel) {
			return nil
		}

		files = append(files, File{
			Path:     p,
			Rel:      rel,
			Filtered: matchAny(s.filters, rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.root, err)
	}

	return files, nil
}

// Destination resolves the unpack destination for a selected file. Rules are
// consulted in declaration order and the first match wins; bare patterns
// like "*.nss" match the file name, patterns containing '/' match the whole
// relative path. Files with no matching rule land at the archive root.
func (s *Selector) Destination(rel string) string {
	name := path.Base(rel)
	for _, r := range s.rules {
		subject := name
		if strings.ContainsRune(r.raw, '/') {
			subject = rel
		}
		if r.pattern.Match(subject) {
			return s.expandAlias(r.dest)
		}
	}
	return "."
}

// expandAlias resolves a leading "@name" in a destination against the
// target's alias map. Unknown aliases are left as written.
func (s *Selector) expandAlias(dest string) string {
	if !strings.HasPrefix(dest, "@") {
		return dest
	}
	name, rest, _ := strings.Cut(dest[1:], "/")
	v, ok := s.aliases[name]
	if !ok {
		return dest
	}
	if rest == "" {
		return v
	}
	return path.Join(v, rest)
}

func matchAny(globs []glob.Glob, subject string) bool {
	for _, g := range globs {
		if g.Match(subject) {
			return true
		}
	}
	return false
}
