// Package app wires the manifest parser, file selector, and archive writer
// into the packing workflow the CLI drives.
package app

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/squattingmonk/nasher/internal/archive"
	"github.com/squattingmonk/nasher/internal/config"
	"github.com/squattingmonk/nasher/internal/manifest"
	"github.com/squattingmonk/nasher/internal/selector"
	"github.com/squattingmonk/nasher/internal/utils"
)

// FlagUncompressed is the target flag that disables archive compression.
const FlagUncompressed = "uncompressed"

// Packer builds the packed artifacts for a manifest's targets.
type Packer struct {
	cfg    *config.Config
	log    *utils.Logger
	parser *manifest.Parser
}

// PackerOptions contains options for creating a Packer
type PackerOptions struct {
	Config *config.Config
	Logger *utils.Logger
}

// NewPacker creates a new Packer
func NewPacker(opts PackerOptions) *Packer {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	return &Packer{
		cfg:    opts.Config,
		log:    log.WithComponent("packer"),
		parser: manifest.NewParser(),
	}
}

// Targets parses the manifest and returns every declared target.
func (p *Packer) Targets() ([]manifest.Target, error) {
	return p.parser.ParseFile(p.cfg.Manifest)
}

// ResolveTargets parses the manifest and returns the targets matching the
// requested names, in manifest declaration order. An empty request or the
// reserved name "all" selects every target.
func (p *Packer) ResolveTargets(names []string) ([]manifest.Target, error) {
	targets, err := p.Targets()
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", p.cfg.Manifest)
	}

	if len(names) == 0 || slices.Contains(names, manifest.ReservedTargetName) {
		return targets, nil
	}

	declared := make(map[string]bool, len(targets))
	for _, t := range targets {
		declared[t.Name] = true
	}
	for _, name := range names {
		if !declared[name] {
			return nil, fmt.Errorf("unknown target %q in %s", name, p.cfg.Manifest)
		}
	}

	var picked []manifest.Target
	for _, t := range targets {
		if slices.Contains(names, t.Name) {
			picked = append(picked, t)
		}
	}
	return picked, nil
}

// Run packs the requested targets concurrently and returns the first
// failure, if any.
func (p *Packer) Run(ctx context.Context, names []string) error {
	targets, err := p.ResolveTargets(names)
	if err != nil {
		return err
	}

	p.log.Info().
		Int("targets", len(targets)).
		Str("manifest", p.cfg.Manifest).
		Msg("Packing targets")

	bar := utils.NewProgressBar(len(targets), utils.DescPacking)
	defer bar.Finish()

	errs := utils.ParallelForEach(ctx, targets, p.cfg.Pack.Workers, func(ctx context.Context, t manifest.Target) error {
		err := p.packTarget(ctx, &t)
		bar.Add(1)
		return err
	})

	if failures := utils.CollectErrors(errs); len(failures) > 0 {
		p.log.Error().Int("failed", len(failures)).Msg("Packing finished with errors")
		return failures[0]
	}
	return nil
}

// packTarget builds one target's artifact.
func (p *Packer) packTarget(ctx context.Context, t *manifest.Target) error {
	log := p.log.WithTarget(t.Name)

	sel, err := selector.New(p.cfg.Pack.Root, t)
	if err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}

	files, err := sel.Files()
	if err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}
	if len(files) == 0 {
		log.Warn().Msg("No source files selected; skipping")
		return nil
	}

	out := filepath.Join(p.cfg.Output.Directory, p.artifactName(t))
	if !p.cfg.Output.Overwrite {
		if _, err := os.Stat(out); err == nil {
			log.Info().Str("file", out).Msg("Artifact exists; skipping (use overwrite to replace)")
			return nil
		}
	}

	var entries []archive.Entry
	for _, f := range files {
		if f.Filtered {
			log.Debug().Str("file", f.Rel).Msg("Filtered out")
			continue
		}
		dest := sel.Destination(f.Rel)
		entries = append(entries, archive.Entry{
			Source: f.Path,
			Name:   path.Join(dest, path.Base(f.Rel)),
		})
	}

	err = archive.Write(ctx, archive.Archive{
		Path:    out,
		Comment: t.Description,
		Store:   t.HasFlag(FlagUncompressed),
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}

	log.Info().
		Str("file", out).
		Int("files", len(entries)).
		Str("modName", t.ModName).
		Str("branch", t.Branch).
		Msg("Packed target")
	return nil
}

// artifactName picks the output file name for a target: its file field, or
// <name>.zip when the manifest leaves it empty.
func (p *Packer) artifactName(t *manifest.Target) string {
	if t.File != "" {
		return t.File
	}
	return t.Name + ".zip"
}
