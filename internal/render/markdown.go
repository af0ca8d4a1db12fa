// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"io"
	"strings"

	"grimm.is/uridoc/internal/endpoint"
)

// Markdown returns the fragment for one endpoint. Fragments start with a "---" rule
// so a document is their plain concatenation.
func Markdown(ep *endpoint.Endpoint) string {
	var sb strings.Builder

	sb.WriteString("\n---\n")
	sb.WriteString(fmt.Sprintf("# %s\n\n", ep.Title()))

	if ep.Description != "" {
		// Markdown joins single newlines; keep the author's line breaks.
		sb.WriteString(strings.ReplaceAll(ep.Description, "\n", "\n\n"))
		sb.WriteString("\n\n")
	}

	if ep.Request != nil {
		sb.WriteString("## REQUEST ⮚\n\n")
		writeMessage(&sb, ep.Request)
	}
	if ep.Response != nil {
		sb.WriteString("## RESPONSE ⮘\n\n")
		writeMessage(&sb, ep.Response)
	}

	return sb.String()
}

func renderMarkdown(w io.Writer, eps []*endpoint.Endpoint, _ Options) error {
	for _, ep := range eps {
		if _, err := io.WriteString(w, Markdown(ep)); err != nil {
			return err
		}
	}
	return nil
}

func writeMessage(sb *strings.Builder, msg *endpoint.Message) {
	if msg.Headers != nil {
		writeTable(sb, "HEADERS", msg.Headers)
	}
	if msg.Path != nil {
		writeTable(sb, "PATH", msg.Path)
	}
	if msg.Query != nil {
		writeTable(sb, "QUERY", msg.Query)
	}
	if msg.Body != nil {
		writeBody(sb, msg.Body)
	}
}

func writeTable(sb *strings.Builder, title string, table endpoint.ParameterTable) {
	sb.WriteString(fmt.Sprintf("### %s ⮷\n\n", title))
	sb.WriteString("Name | Description\n")
	sb.WriteString("---- | -----------\n")
	for _, p := range table {
		sb.WriteString(fmt.Sprintf("%s | %s\n", escapeCell(p.Key), escapeCell(p.Value)))
	}
	sb.WriteString("\n")
}

func writeBody(sb *strings.Builder, body *endpoint.Body) {
	fence := "```"
	for strings.Contains(body.Content, fence) {
		fence += "`"
	}
	sb.WriteString("### BODY ⮷\n\n")
	sb.WriteString(fence + FenceLanguage(body.MIMEType) + "\n")
	if body.Content != "" {
		sb.WriteString(body.Content + "\n")
	}
	sb.WriteString(fence + "\n\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var fenceLanguages = map[string]string{
	"application/json":       "json",
	"application/javascript": "javascript",
	"text/javascript":        "javascript",
	"application/xml":        "xml",
	"text/xml":               "xml",
	"text/html":              "html",
	"application/yaml":       "yaml",
	"application/x-yaml":     "yaml",
	"text/yaml":              "yaml",
	"text/csv":               "csv",
	"text/plain":             "text",
	"application/graphql":    "graphql",
	"application/x-sh":       "sh",
	"text/x-shellscript":     "sh",
}

// FenceLanguage maps a MIME type to a fenced code block language. Parameters are
// ignored and structured syntax suffixes (+json, +xml, +yaml) are honoured. Unknown
// types map to "".
func FenceLanguage(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i != -1 {
		mt = strings.TrimSpace(mt[:i])
	}
	if lang, ok := fenceLanguages[mt]; ok {
		return lang
	}
	for _, suffix := range []string{"json", "xml", "yaml"} {
		if strings.HasSuffix(mt, "+"+suffix) {
			return suffix
		}
	}
	return ""
}
