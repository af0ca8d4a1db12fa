// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package render turns interpreted endpoints into documentation output.
package render

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatOpenAPI  Format = "openapi"
	FormatTable    Format = "table"
)

// Options carries document-level metadata used by some formats.
type Options struct {
	Title   string // OpenAPI info.title
	Version string // OpenAPI info.version
}

type renderer func(w io.Writer, eps []*endpoint.Endpoint, opts Options) error

var renderers = map[Format]renderer{
	FormatMarkdown: renderMarkdown,
	FormatJSON:     renderJSON,
	FormatYAML:     renderYAML,
	FormatOpenAPI:  renderOpenAPI,
	FormatTable:    renderTable,
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for f := range renderers {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFormat validates a format name. The empty string selects markdown.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatMarkdown, nil
	}
	f := Format(name)
	if _, ok := renderers[f]; !ok {
		return "", errors.Errorf(errors.KindValidation, "unknown output format %q (supported: %v)", name, Formats())
	}
	return f, nil
}

// Render writes eps to w in the given format.
func Render(w io.Writer, format Format, eps []*endpoint.Endpoint, opts Options) error {
	r, ok := renderers[format]
	if !ok {
		return errors.Errorf(errors.KindValidation, "unknown output format %q", format)
	}
	return r(w, eps, opts)
}

// Bytes is Render into a buffer.
func Bytes(format Format, eps []*endpoint.Endpoint, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, format, eps, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderJSON(w io.Writer, eps []*endpoint.Endpoint, _ Options) error {
	if eps == nil {
		eps = []*endpoint.Endpoint{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(eps); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode JSON")
	}
	return nil
}

func renderYAML(w io.Writer, eps []*endpoint.Endpoint, _ Options) error {
	if eps == nil {
		eps = []*endpoint.Endpoint{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(eps); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode YAML")
	}
	return nil
}
