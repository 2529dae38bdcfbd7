// Package manifest parses nasher.cfg package manifests. A manifest maps a
// project's files into one or more named build targets, each describing a
// single packed artifact.
//
// # Manifest Format
//
// Manifests use an INI-like syntax with [section] headers and key = value
// pairs. Indentation is cosmetic; membership is determined solely by the
// most recent header:
//
//	[package]
//	name = "My Module"
//	file = "demo.mod"
//
//	  [package.sources]
//	  include = "src/**/*.nss"
//	  exclude = "src/wip/*"
//
//	[target]
//	name = "demo"
//	description = "Development build"
//
//	  [target.rules]
//	  "*.nss" = "src/scripts"
//	  "*" = "src"
//
// Values declared under [package] act as defaults: each target inherits any
// non-alias field it leaves empty wholesale, and alias maps merge by key with
// the target's own entries winning. The [package] section, if present, must
// come first and may not be repeated.
//
// # Usage
//
// Parse a manifest file:
//
//	parser := manifest.NewParser()
//	targets, err := parser.ParseFile("nasher.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, target := range targets {
//	    // Pack each target
//	}
//
// # Error Handling
//
// Parsing is all-or-nothing: the first violation aborts the parse and no
// partial target list is returned. Every grammar or semantic violation maps
// to one of the package's sentinel errors (ErrDuplicateSection,
// ErrUnknownSection, ErrUnnamedTarget, ...) wrapped in a ParseError that
// carries the source location when one is available.
package manifest
