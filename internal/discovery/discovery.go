// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package discovery walks a source tree and selects the files to scan for
// documentation comments.
package discovery

import (
	"bufio"
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/logging"
)

// Options selects which files are returned.
type Options struct {
	Root         string
	Extensions   []string // e.g. ".js"; empty accepts every file
	Exclude      []string // globs against slash-separated paths relative to Root
	UseGitignore bool     // also skip names listed in Root/.gitignore
}

type pattern struct {
	source   string
	g        glob.Glob
	baseOnly bool // unanchored pattern without '/', tested against each path element's name
}

// Walker lists source files under a root directory.
type Walker struct {
	opts     Options
	exts     map[string]bool
	patterns []pattern
	logger   *logging.Logger
}

// New compiles the exclude globs and, when enabled, the root .gitignore.
func New(opts Options, logger *logging.Logger) (*Walker, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if logger == nil {
		logger = logging.Default()
	}

	w := &Walker{
		opts:   opts,
		exts:   make(map[string]bool, len(opts.Extensions)),
		logger: logger.WithComponent("discovery"),
	}
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.exts[strings.ToLower(ext)] = true
	}

	for _, src := range opts.Exclude {
		p, err := compile(src)
		if err != nil {
			return nil, errors.Wrapf(err, errors.KindValidation, "invalid exclude pattern %q", src)
		}
		w.patterns = append(w.patterns, p)
	}

	if opts.UseGitignore {
		ignored, negated, err := readGitignore(filepath.Join(opts.Root, ".gitignore"))
		if err != nil {
			return nil, err
		}
		for _, src := range negated {
			w.logger.Warn("Ignoring unsupported .gitignore negation", "pattern", src)
		}
		for _, src := range ignored {
			p, err := compile(src)
			if err != nil {
				w.logger.Warn("Skipping unusable .gitignore pattern", "pattern", src, "error", err)
				continue
			}
			w.patterns = append(w.patterns, p)
		}
	}

	return w, nil
}

// Files returns matching files in lexical order. Paths are Root joined with the
// file's relative path.
func (w *Walker) Files(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.KindIO, "failed to walk %s", path)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(w.opts.Root, path)
		if relErr != nil {
			return errors.Wrap(relErr, errors.KindInternal, "failed to relativise path")
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || w.excluded(rel, true) {
				w.logger.Debug("Skipping directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || w.excluded(rel, false) || !w.accepts(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Debug("Discovered files", "root", w.opts.Root, "count", len(files))
	return files, nil
}

func (w *Walker) accepts(rel string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(rel))]
}

func (w *Walker) excluded(rel string, dir bool) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, p := range w.patterns {
		if p.baseOnly {
			if p.g.Match(base) {
				return true
			}
			continue
		}
		if p.g.Match(rel) || (dir && p.g.Match(rel+"/")) {
			return true
		}
	}
	return false
}

// compile turns a gitignore-style pattern into a glob. A leading '/' anchors the
// pattern to the root; otherwise a pattern without an inner '/' matches any element.
func compile(src string) (pattern, error) {
	anchored := strings.HasPrefix(src, "/")
	trimmed := strings.Trim(src, "/")
	g, err := glob.Compile(trimmed, '/')
	if err != nil {
		return pattern{}, err
	}
	return pattern{
		source:   src,
		g:        g,
		baseOnly: !anchored && !strings.Contains(trimmed, "/"),
	}, nil
}

// readGitignore returns the patterns of a .gitignore file, with negations, which are
// not supported, returned separately. A missing file yields no patterns.
func readGitignore(path string) (patterns, negated []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrapf(err, errors.KindIO, "failed to read %s", path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "!"):
			negated = append(negated, line)
		default:
			patterns = append(patterns, line)
		}
	}
	return patterns, negated, nil
}
