package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestString(t *testing.T) {
	s := Get().String()

	assert.Contains(t, s, "nasher")
	assert.Contains(t, s, Version)
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestFull(t *testing.T) {
	assert.Equal(t, Get().String(), Full())
}
