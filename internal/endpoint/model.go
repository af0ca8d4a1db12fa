// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package endpoint interprets a comment tree as the documentation of one HTTP endpoint.
//
// The grammar is small and closed:
//
//	@uri
//	Free text becomes the description.
//	@get /users/:id
//	@request
//	    @headers
//	        Authorization: Bearer token.
//	    @path
//	        id - The user id.
//	    @query
//	        fields = Comma separated field list.
//	    @body application/json
//	        { "name": "..." }
//	@response
//	    @body
//	        { "id": 1 }
//
// Method tags are matched case-insensitively; every other tag is case-sensitive.
package endpoint

import (
	"strings"

	"grimm.is/uridoc/internal/tree"
)

// Method is a canonical upper-case HTTP method.
type Method string

const (
	MethodOptions Method = "OPTIONS"
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// Methods lists every method tag the grammar accepts.
var Methods = []Method{
	MethodOptions,
	MethodGet,
	MethodHead,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodTrace,
	MethodConnect,
}

// ParseMethod matches a tag against Methods, ignoring case.
func ParseMethod(tag string) (Method, bool) {
	upper := Method(strings.ToUpper(tag))
	for _, m := range Methods {
		if m == upper {
			return m, true
		}
	}
	return "", false
}

// Parameter is one declared key/value line.
type Parameter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ParameterTable is the ordered list declared under @headers, @path or @query.
type ParameterTable []Parameter

// DefaultMIMEType is used when @body names no type.
const DefaultMIMEType = "application/json"

// Body is the verbatim text declared under @body.
type Body struct {
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	Content  string `json:"content" yaml:"content"`
}

// Message is a request or response section.
// A nil table or body means the tag was not present.
type Message struct {
	Headers ParameterTable `json:"headers,omitempty" yaml:"headers,omitempty"`
	Path    ParameterTable `json:"path,omitempty" yaml:"path,omitempty"`
	Query   ParameterTable `json:"query,omitempty" yaml:"query,omitempty"`
	Body    *Body          `json:"body,omitempty" yaml:"body,omitempty"`
}

// Endpoint is the documentation of one HTTP endpoint.
type Endpoint struct {
	Description string        `json:"description" yaml:"description"`
	Method      Method        `json:"method,omitempty" yaml:"method,omitempty"`
	URI         string        `json:"uri" yaml:"uri"`
	Request     *Message      `json:"request,omitempty" yaml:"request,omitempty"`
	Response    *Message      `json:"response,omitempty" yaml:"response,omitempty"`
	Source      tree.Location `json:"source" yaml:"source"`
}

// Title returns "METHOD uri", or just the uri when no method was declared.
func (e *Endpoint) Title() string {
	if e.Method == "" {
		return e.URI
	}
	return string(e.Method) + " " + e.URI
}
