// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
)

const (
	openAPIVersion  = "3.0.3"
	defaultTitle    = "API"
	defaultVersion  = "0.0.0"
	defaultResponse = "Response"
)

var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// OpenAPIPath converts "/users/:id" to the templated form "/users/{id}".
func OpenAPIPath(uri string) string {
	return pathParam.ReplaceAllString(uri, "{$1}")
}

// OpenAPI builds an OpenAPI 3 document. Endpoints without a method or URI cannot be
// placed in a path item and are left out. Endpoints sharing a URI share a path item;
// a repeated method and URI keeps the last endpoint.
func OpenAPI(eps []*endpoint.Endpoint, opts Options) *openapi3.T {
	info := &openapi3.Info{Title: opts.Title, Version: opts.Version}
	if info.Title == "" {
		info.Title = defaultTitle
	}
	if info.Version == "" {
		info.Version = defaultVersion
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    info,
		Paths:   openapi3.NewPaths(),
	}

	for _, ep := range eps {
		if ep.Method == "" || ep.URI == "" {
			continue
		}
		path := OpenAPIPath(ep.URI)
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}
		item.SetOperation(string(ep.Method), operation(ep, path))
	}

	return doc
}

func renderOpenAPI(w io.Writer, eps []*endpoint.Endpoint, opts Options) error {
	data, err := json.MarshalIndent(OpenAPI(eps, opts), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode OpenAPI document")
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func operation(ep *endpoint.Endpoint, path string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = operationID(ep.Method, path)
	op.Description = ep.Description
	if first, _, _ := strings.Cut(ep.Description, "\n"); first != "" {
		op.Summary = first
	}

	var params parameterSet
	inTemplate := make(map[string]bool)
	for _, m := range pathParam.FindAllStringSubmatch(ep.URI, -1) {
		inTemplate[m[1]] = true
	}
	if req := ep.Request; req != nil {
		for _, p := range req.Headers {
			params.add(openapi3.NewHeaderParameter(p.Key), p.Value)
		}
		// Path keys without a template variable have no place in the path item.
		for _, p := range req.Path {
			if inTemplate[p.Key] {
				params.add(openapi3.NewPathParameter(p.Key), p.Value)
			}
		}
		for _, p := range req.Query {
			params.add(openapi3.NewQueryParameter(p.Key), p.Value)
		}
		if req.Body != nil {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithContent(content(req.Body)),
			}
		}
	}
	// Every template variable must be declared.
	for _, m := range pathParam.FindAllStringSubmatch(ep.URI, -1) {
		if !params.has(openapi3.ParameterInPath, m[1]) {
			params.add(openapi3.NewPathParameter(m[1]), "")
		}
	}
	op.Parameters = params.list

	resp := openapi3.NewResponse().WithDescription(defaultResponse)
	if res := ep.Response; res != nil {
		if len(res.Headers) > 0 {
			resp.Headers = make(openapi3.Headers, len(res.Headers))
			for _, p := range res.Headers {
				resp.Headers[p.Key] = &openapi3.HeaderRef{
					Value: &openapi3.Header{Parameter: openapi3.Parameter{
						Description: p.Value,
						Schema:      stringSchema(),
					}},
				}
			}
		}
		if res.Body != nil {
			resp.Content = content(res.Body)
		}
	}
	op.Responses = openapi3.NewResponses(openapi3.WithName("default", resp))

	return op
}

// parameterSet keeps one parameter per location and name; a later declaration
// replaces an earlier one in place. Header names compare case-insensitively.
type parameterSet struct {
	list  openapi3.Parameters
	index map[string]int
}

func parameterKey(in, name string) string {
	if in == openapi3.ParameterInHeader {
		name = strings.ToLower(name)
	}
	return in + ":" + name
}

func (ps *parameterSet) has(in, name string) bool {
	_, ok := ps.index[parameterKey(in, name)]
	return ok
}

func (ps *parameterSet) add(p *openapi3.Parameter, description string) {
	p.Description = description
	p.Schema = stringSchema()
	ref := &openapi3.ParameterRef{Value: p}

	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	key := parameterKey(p.In, p.Name)
	if i, ok := ps.index[key]; ok {
		ps.list[i] = ref
		return
	}
	ps.index[key] = len(ps.list)
	ps.list = append(ps.list, ref)
}

func stringSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: openapi3.NewStringSchema()}
}

// content keeps the body as an example. Valid JSON is embedded as-is; anything else
// is a string example.
func content(body *endpoint.Body) openapi3.Content {
	media := &openapi3.MediaType{}
	trimmed := strings.TrimSpace(body.Content)
	switch {
	case trimmed == "":
	case FenceLanguage(body.MIMEType) == "json" && json.Valid([]byte(trimmed)):
		media.Example = json.RawMessage(trimmed)
	default:
		media.Schema = stringSchema()
		media.Example = body.Content
	}
	return openapi3.Content{body.MIMEType: media}
}

func operationID(method endpoint.Method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(string(method)))
	lastUnderscore := false
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}
