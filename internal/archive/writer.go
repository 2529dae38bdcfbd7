// Package archive builds the packed artifact for a target. The format is
// chosen by the output file's extension: .tar.gz and .tgz produce a gzipped
// tarball, everything else produces a zip file.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/squattingmonk/nasher/internal/utils"
)

// Entry is one file to place in an archive.
type Entry struct {
	Source string // file on disk
	Name   string // slash-separated path inside the archive
}

// Archive describes one artifact to build.
type Archive struct {
	Path    string // output file; parent directories are created
	Comment string // zip-only archive comment
	Store   bool   // store entries without compression
	Entries []Entry
}

// Write builds the archive, honoring ctx cancellation between entries.
func Write(ctx context.Context, a Archive) error {
	if err := utils.EnsureDir(a.Path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(a.Path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if isTarball(a.Path) {
		err = writeTarGz(ctx, f, a)
	} else {
		err = writeZip(ctx, f, a)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(a.Path)
		return err
	}
	return nil
}

func isTarball(path string) bool {
	return strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz")
}

func writeZip(ctx context.Context, f *os.File, a Archive) error {
	zw := zip.NewWriter(f)

	if a.Comment != "" {
		if err := zw.SetComment(a.Comment); err != nil {
			return fmt.Errorf("failed to set archive comment: %w", err)
		}
	}

	method := uint16(zip.Deflate)
	if a.Store {
		method = zip.Store
	}

	for _, e := range a.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := os.Stat(e.Source)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", e.Source, err)
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = e.Name
		hdr.Method = method

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		if err := copyFile(w, e.Source); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeTarGz(ctx context.Context, f *os.File, a Archive) error {
	level := gzip.DefaultCompression
	if a.Store {
		level = gzip.NoCompression
	}
	gzw, err := gzip.NewWriterLevel(f, level)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(gzw)

	for _, e := range a.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := os.Stat(e.Source)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", e.Source, err)
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = e.Name

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if err := copyFile(tw, e.Source); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gzw.Close()
}

func copyFile(w io.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return nil
}
