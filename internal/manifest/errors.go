package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package. Every ParseError wraps exactly
// one of these so callers can classify failures with errors.Is.
var (
	// ErrSyntax indicates a malformed line reported by the event source
	ErrSyntax = errors.New("syntax error")

	// ErrSectionOrder indicates [package] was declared after another section
	ErrSectionOrder = errors.New("section out of order")

	// ErrDuplicateSection indicates more than one [package] section
	ErrDuplicateSection = errors.New("duplicate section")

	// ErrSectionScope indicates a dotted section used outside its parent context
	ErrSectionScope = errors.New("section out of scope")

	// ErrUnknownSection indicates a section name outside the accepted set
	ErrUnknownSection = errors.New("unknown section")

	// ErrInvalidKey indicates an unrecognized key inside a sources subsection
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnnamedTarget indicates a target closed without a name
	ErrUnnamedTarget = errors.New("unnamed target")

	// ErrInvalidTargetName indicates a target name that fails the charset
	// check or equals the reserved word "all"
	ErrInvalidTargetName = errors.New("invalid target name")

	// ErrManifestNotFound indicates the manifest file does not exist
	ErrManifestNotFound = errors.New("manifest file not found")
)

// ParseError is a manifest violation tied to a source location. Pos is zero
// for conditions computed after the fact (an unnamed target is only detected
// when its section closes), in which case only the bare message is rendered.
type ParseError struct {
	File string
	Pos  Position
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Pos.IsZero() {
		return e.Msg
	}
	return fmt.Sprintf("Error parsing %s(%d:%d): %s", e.File, e.Pos.Line, e.Pos.Col, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError creates a ParseError wrapping the given sentinel.
func newParseError(file string, pos Position, kind error, format string, args ...any) *ParseError {
	return &ParseError{
		File: file,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
		Err:  kind,
	}
}
