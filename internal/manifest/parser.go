package manifest

import (
	"fmt"
	"os"
	"strings"
)

// StreamName is the source name reported in errors when parsing raw text.
const StreamName = "[stream]"

// state is the parser context: outside any section, inside [package], or
// inside a [target].
type state int

const (
	stateInitial state = iota
	statePackage
	stateTarget
)

// section is the routing pointer for key-value events. It is independent of
// the state and is reset by every section header.
type section int

const (
	secPackage section = iota
	secTarget
	secSources
	secRules
	secAliases
)

// Parser parses package manifests into ordered target lists. A Parser holds
// no state between calls; independent parses may run concurrently.
type Parser struct{}

// NewParser creates a new manifest parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse consumes events from src in a single pass and returns the declared
// targets in order. sourceName is used in error messages. The first
// violation aborts the parse; no partial list is ever returned.
func (p *Parser) Parse(src EventSource, sourceName string) ([]Target, error) {
	r := &run{file: sourceName}

	for {
		ev, ok := src.Next()
		if !ok {
			break
		}

		var err error
		switch ev.Kind {
		case EventSection:
			err = r.section(ev)
		case EventKeyValue:
			err = r.keyValue(ev)
		case EventError:
			err = newParseError(r.file, ev.Pos, ErrSyntax, "%s", ev.Msg)
		}
		if err != nil {
			return nil, err
		}
	}

	// The last target is closed by end of stream rather than a header.
	if r.state == stateTarget {
		if err := r.closeTarget(); err != nil {
			return nil, err
		}
	}
	return r.targets, nil
}

// ParseString parses manifest text.
func (p *Parser) ParseString(text string) ([]Target, error) {
	return p.Parse(NewScanner(text), StreamName)
}

// ParseFile reads and parses a manifest file from the given path.
func (p *Parser) ParseFile(path string) ([]Target, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return p.Parse(NewScanner(string(data)), path)
}

// run is the private accumulator for one Parse call.
type run struct {
	file string

	state state
	sec   section

	pkg      Target // package-level accumulator; receives top-level key-values
	defaults Target // snapshot of pkg, frozen at the first [target] header
	cur      Target // target in progress

	count       int // targets seen so far, for the unnamed-target ordinal
	seenPackage bool
	seenSection bool

	targets []Target
}

// section handles a section header. Section names are case-insensitive.
func (r *run) section(ev Event) error {
	name := strings.ToLower(strings.TrimSpace(ev.Name))
	parent, child, dotted := strings.Cut(name, ".")

	switch {
	case !dotted && parent == "package":
		if r.seenPackage {
			return newParseError(r.file, ev.Pos, ErrDuplicateSection, "duplicate [package] section")
		}
		if r.seenSection {
			return newParseError(r.file, ev.Pos, ErrSectionOrder, "[package] section must be declared before other sections")
		}
		r.seenPackage = true
		r.state = statePackage
		r.sec = secPackage

	case !dotted && parent == "target":
		if r.state == stateTarget {
			if err := r.closeTarget(); err != nil {
				return err
			}
		} else {
			// Entering the first target freezes the package accumulator.
			// Nothing mutates pkg after this point, so every target merges
			// against the same defaults.
			r.defaults = r.pkg.clone()
		}
		r.cur = Target{}
		r.state = stateTarget
		r.sec = secTarget

	case !dotted && subsection(parent) != secPackage:
		// Bare [sources]/[rules]/[aliases] repoint routing within the
		// current context. Before any header this is still top-level
		// package scope.
		r.sec = subsection(parent)

	case dotted && parent == "package" && subsection(child) != secPackage:
		if r.state == stateTarget {
			return newParseError(r.file, ev.Pos, ErrSectionScope, "[package.%s] must be declared within [package]", child)
		}
		r.sec = subsection(child)

	case dotted && parent == "target" && subsection(child) != secPackage:
		if r.state != stateTarget {
			return newParseError(r.file, ev.Pos, ErrSectionScope, "[target.%s] must be declared within [target]", child)
		}
		r.sec = subsection(child)

	default:
		return newParseError(r.file, ev.Pos, ErrUnknownSection, "invalid section [%s]", name)
	}

	r.seenSection = true
	return nil
}

// subsection maps a subsection name to its routing section, or secPackage if
// the name is not a subsection.
func subsection(name string) section {
	switch name {
	case "sources":
		return secSources
	case "rules":
		return secRules
	case "aliases":
		return secAliases
	}
	return secPackage
}

// active returns the accumulator key-values currently route to: the target
// in progress, or the package accumulator everywhere else.
func (r *run) active() *Target {
	if r.state == stateTarget {
		return &r.cur
	}
	return &r.pkg
}

// contextName names the current context for error messages.
func (r *run) contextName() string {
	if r.state == stateTarget {
		return "target"
	}
	return "package"
}

// keyValue routes a key-value pair according to the current section.
func (r *run) keyValue(ev Event) error {
	t := r.active()

	switch r.sec {
	case secPackage, secTarget:
		return r.mainKey(t, ev)

	case secSources:
		switch ev.Key {
		case "include":
			t.Includes = append(t.Includes, ev.Value)
		case "exclude":
			t.Excludes = append(t.Excludes, ev.Value)
		case "filter":
			t.Filters = append(t.Filters, ev.Value)
		default:
			return newParseError(r.file, ev.Pos, ErrInvalidKey, "invalid key '%s' for section [%s.sources]", ev.Key, r.contextName())
		}

	case secRules:
		t.Rules = append(t.Rules, Rule{Pattern: ev.Key, Dest: ev.Value})

	case secAliases:
		t.setAlias(ev.Key, ev.Value)
	}
	return nil
}

// mainKey handles a key directly under [package] or [target]. Keys are
// case-sensitive. Any key not in the table becomes an unpack rule; the
// fallback is deliberate, trading strict validation for forward
// compatibility with newer manifests.
func (r *run) mainKey(t *Target, ev Event) error {
	switch ev.Key {
	case "name":
		if r.state != stateTarget {
			// Package display name; exempt from inheritance, so targets
			// never see it and no validation applies.
			t.Name = ev.Value
			return nil
		}
		name := strings.ToLower(ev.Value)
		if name == ReservedTargetName || !validTargetName.MatchString(name) {
			return newParseError(r.file, ev.Pos, ErrInvalidTargetName, "invalid target name '%s'", name)
		}
		t.Name = name
	case "description":
		t.Description = ev.Value
	case "file":
		t.File = ev.Value
	case "branch":
		t.Branch = ev.Value
	case "modName":
		t.ModName = ev.Value
	case "modMinGameVersion":
		t.ModMinGameVersion = ev.Value
	case "flags":
		t.Flags = append(t.Flags, ev.Value)
	case "source", "include":
		t.Includes = append(t.Includes, ev.Value)
	case "exclude":
		t.Excludes = append(t.Excludes, ev.Value)
	case "filter":
		t.Filters = append(t.Filters, ev.Value)
	case "version", "url", "author":
		// Accepted and discarded; older manifests still carry these.
	default:
		t.Rules = append(t.Rules, Rule{Pattern: ev.Key, Dest: ev.Value})
	}
	return nil
}

// closeTarget merges the in-progress target with the frozen defaults,
// validates it, and appends it to the output.
func (r *run) closeTarget() error {
	r.count++
	if r.cur.Name == "" {
		return newParseError(r.file, Position{}, ErrUnnamedTarget, "target %d is unnamed", r.count)
	}
	r.cur.applyDefaults(&r.defaults)
	r.targets = append(r.targets, r.cur)
	return nil
}
