package archive

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWrite_Zip(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeSource(t, tmpDir, "a.nss", "void main() {}")
	b := writeSource(t, tmpDir, "b.are", "area data")

	out := filepath.Join(tmpDir, "out", "demo.mod")
	err := Write(context.Background(), Archive{
		Path:    out,
		Comment: "Development build",
		Entries: []Entry{
			{Source: a, Name: "src/scripts/a.nss"},
			{Source: b, Name: "src/areas/b.are"},
		},
	})
	require.NoError(t, err)

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "Development build", r.Comment)
	require.Len(t, r.File, 2)
	assert.Equal(t, "src/scripts/a.nss", r.File[0].Name)
	assert.Equal(t, uint16(zip.Deflate), r.File[0].Method)

	rc, err := r.File[0].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "void main() {}", string(data))
}

func TestWrite_ZipStore(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeSource(t, tmpDir, "a.nss", "void main() {}")

	out := filepath.Join(tmpDir, "demo.mod")
	err := Write(context.Background(), Archive{
		Path:    out,
		Store:   true,
		Entries: []Entry{{Source: a, Name: "a.nss"}},
	})
	require.NoError(t, err)

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1)
	assert.Equal(t, uint16(zip.Store), r.File[0].Method)
}

func TestWrite_TarGz(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeSource(t, tmpDir, "a.nss", "void main() {}")

	out := filepath.Join(tmpDir, "demo.tar.gz")
	err := Write(context.Background(), Archive{
		Path:    out,
		Entries: []Entry{{Source: a, Name: "src/a.nss"}},
	})
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gzr)

	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "src/a.nss", hdr.Name)

	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(data))

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestWrite_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "demo.mod")

	err := Write(context.Background(), Archive{
		Path:    out,
		Entries: []Entry{{Source: filepath.Join(tmpDir, "missing.nss"), Name: "missing.nss"}},
	})

	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestWrite_CancelledContext(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeSource(t, tmpDir, "a.nss", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Write(ctx, Archive{
		Path:    filepath.Join(tmpDir, "demo.mod"),
		Entries: []Entry{{Source: a, Name: "a.nss"}},
	})

	assert.ErrorIs(t, err, context.Canceled)
}
