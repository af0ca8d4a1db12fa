// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package generator runs the documentation pipeline over a source tree: discover
// files, read them concurrently, extract documentation comments, interpret each one
// and render the endpoints in a deterministic order.
package generator

import (
	"context"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"grimm.is/uridoc/internal/comment"
	"grimm.is/uridoc/internal/config"
	"grimm.is/uridoc/internal/discovery"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/logging"
	"grimm.is/uridoc/internal/render"
	"grimm.is/uridoc/internal/tree"
)

// Diagnostic is a failure confined to one comment, or to one file for read errors.
type Diagnostic struct {
	File string
	Line int // 0 when the whole file failed
	Kind errors.Kind
	Err  error
}

func (d Diagnostic) Error() string {
	return d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result is the outcome of a run.
type Result struct {
	Files       int
	Comments    int
	Endpoints   []*endpoint.Endpoint
	Diagnostics []Diagnostic
}

// Generator holds a validated configuration.
type Generator struct {
	cfg       *config.Config
	opts      endpoint.Options
	extractor *comment.Extractor
	walker    *discovery.Walker
	logger    *logging.Logger
}

// New validates cfg and prepares file discovery.
func New(cfg *config.Config, logger *logging.Logger) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	walker, err := discovery.New(discovery.Options{
		Root:         cfg.Root,
		Extensions:   cfg.Extensions,
		Exclude:      cfg.Exclude,
		UseGitignore: cfg.Gitignore,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:       cfg,
		opts:      cfg.EndpointOptions(),
		extractor: comment.NewExtractor(cfg.Sentinel),
		walker:    walker,
		logger:    logger.WithComponent("generator"),
	}, nil
}

type fileResult struct {
	comments  int
	endpoints []*endpoint.Endpoint
	diags     []Diagnostic
}

// Run processes every discovered file. Without keep_going the first diagnostic, in
// file then line order, is returned as the error. Context cancellation aborts the run.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	files, err := g.walker.Files(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	results := make([]fileResult, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Jobs)

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				readErr := errors.Wrapf(err, errors.KindIO, "failed to read %s", file)
				results[i] = fileResult{diags: []Diagnostic{{File: file, Kind: errors.KindIO, Err: readErr}}}
				return nil
			}
			results[i] = g.processFile(file, data)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: len(files)}
	for _, fr := range results {
		res.Comments += fr.comments
		res.Endpoints = append(res.Endpoints, fr.endpoints...)
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
	}
	sortEndpoints(res.Endpoints)

	if len(res.Diagnostics) > 0 && !g.cfg.KeepGoing {
		first := res.Diagnostics[0]
		g.logger.Error("Aborting on first failure", "file", first.File, "line", first.Line, "kind", first.Kind.String())
		return nil, first.Err
	}

	g.logger.Info("Processed sources",
		"files", res.Files,
		"comments", res.Comments,
		"endpoints", len(res.Endpoints),
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

// ProcessFile extracts and interprets the documentation comments of one file.
func (g *Generator) ProcessFile(file string, src []byte) ([]*endpoint.Endpoint, []Diagnostic) {
	fr := g.processFile(file, src)
	return fr.endpoints, fr.diags
}

func (g *Generator) processFile(file string, src []byte) fileResult {
	comments := g.extractor.Extract(file, src)
	fr := fileResult{comments: len(comments)}

	for _, c := range comments {
		ep, err := g.interpret(c)
		if err != nil {
			fr.diags = append(fr.diags, diagnose(c, err))
			g.logger.Debug("Skipping comment", "file", file, "line", c.Lines[0].Line, "error", err)
			continue
		}
		fr.endpoints = append(fr.endpoints, ep)
	}

	g.logger.Debug("Scanned file", "file", file, "comments", len(comments), "endpoints", len(fr.endpoints))
	return fr
}

func (g *Generator) interpret(c comment.Comment) (*endpoint.Endpoint, error) {
	root, err := tree.Build(c.Lines)
	if err != nil {
		return nil, err
	}
	return endpoint.Interpret(root, g.opts)
}

func diagnose(c comment.Comment, err error) Diagnostic {
	file, line := errors.Location(err)
	if file == "" {
		file = c.File
	}
	if line == 0 {
		line = c.Lines[0].Line
	}
	return Diagnostic{File: file, Line: line, Kind: errors.GetKind(err), Err: err}
}

func sortEndpoints(eps []*endpoint.Endpoint) {
	sort.SliceStable(eps, func(i, j int) bool {
		a, b := eps[i].Source, eps[j].Source
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}

// Render formats the endpoints of a result.
func Render(res *Result, format render.Format, opts render.Options) ([]byte, error) {
	if res == nil {
		return nil, errors.New(errors.KindInternal, "no result to render")
	}
	return render.Bytes(format, res.Endpoints, opts)
}

// Summary is a one-line description of a result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d endpoint(s) from %d comment(s) in %d file(s), %d diagnostic(s)",
		len(r.Endpoints), r.Comments, r.Files, len(r.Diagnostics))
}
