package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_WithLocation(t *testing.T) {
	err := newParseError("nasher.cfg", Position{Line: 4, Col: 2}, ErrUnknownSection, "invalid section [%s]", "bogus")

	assert.Equal(t, "Error parsing nasher.cfg(4:2): invalid section [bogus]", err.Error())
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestParseError_WithoutLocation(t *testing.T) {
	err := newParseError("nasher.cfg", Position{}, ErrUnnamedTarget, "target %d is unnamed", 3)

	assert.Equal(t, "target 3 is unnamed", err.Error())
	assert.ErrorIs(t, err, ErrUnnamedTarget)
}

func TestParseError_Unwrap(t *testing.T) {
	err := newParseError("nasher.cfg", Position{Line: 1, Col: 1}, ErrSyntax, "expected 'key = value'")

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrSyntax, parseErr.Unwrap())
	assert.Equal(t, "nasher.cfg", parseErr.File)
	assert.Equal(t, Position{Line: 1, Col: 1}, parseErr.Pos)
}
