// Package batch drives migrations: the single-file pipeline, origin
// discovery, template pairing, and the worker fan-out with per-file
// failure isolation.
package batch

import (
	"context"

	"github.com/fyrsmithlabs/pageporter/internal/assemble"
	"github.com/fyrsmithlabs/pageporter/internal/assets"
	"github.com/fyrsmithlabs/pageporter/internal/document"
	"github.com/fyrsmithlabs/pageporter/internal/logging"
	"github.com/fyrsmithlabs/pageporter/internal/mapper"
	"github.com/fyrsmithlabs/pageporter/internal/metadata"
	"github.com/fyrsmithlabs/pageporter/internal/miglog"
	"github.com/fyrsmithlabs/pageporter/internal/template"
)

// FileResult is the outcome of one file's pipeline. The pipeline is pure
// with respect to the filesystem output: it returns the serialized
// destination bytes and the caller decides whether to write them.
type FileResult struct {
	OriginPath string
	Output     []byte
	Log        *miglog.Log

	ItemCount  int
	Exclusions []mapper.Exclusion
	// Images holds one descriptor per referenced image, unresolved ones
	// flagged.
	Images []string
}

// MigrateFile runs the whole single-file pipeline: parse both trees,
// extract and transform metadata, map the content region, assemble the
// destination, and embed the audit summary. It touches no shared state;
// reading the same inputs twice yields byte-identical output.
func MigrateFile(ctx context.Context, originPath, templatePath string, resolver assets.Resolver) (*FileResult, error) {
	zlog := logging.FromContext(ctx)

	origin, err := document.Load(originPath)
	if err != nil {
		return nil, err
	}
	tpl, err := template.Load(templatePath)
	if err != nil {
		return nil, err
	}

	log := miglog.New()

	ex := metadata.Extract(origin)
	if title, ok := ex.Wired[document.FieldTitle]; ok {
		log.Infof("title: %q", title)
	} else {
		log.Warnf("origin has no wired title")
	}

	tr := metadata.Transform(ex, origin.Path, log)

	images := []string{}
	exclusions := []mapper.Exclusion{}
	m := mapper.New(resolver, log, origin.Path, &images, &exclusions)
	items := m.MapRegion(origin.Content())

	if err := assemble.Insert(tpl, items); err != nil {
		// Structural mismatch: the file fails whole, no partial write.
		log.Errorf("%v", err)
		return &FileResult{OriginPath: originPath, Log: log}, err
	}
	assemble.ApplyMetadata(tpl, tr)

	log.Infof("mapped %d content items, %d exclusions", len(items), len(exclusions))
	tpl.SetMigrationSummary(log.Render())

	out, err := tpl.Bytes()
	if err != nil {
		return &FileResult{OriginPath: originPath, Log: log}, err
	}

	zlog.Debug(ctx, "file pipeline complete")
	return &FileResult{
		OriginPath: originPath,
		Output:     out,
		Log:        log,
		ItemCount:  len(items),
		Exclusions: exclusions,
		Images:     images,
	}, nil
}
