// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bndr/gotabulate"

	"grimm.is/uridoc/internal/endpoint"
)

var tableHeaders = []string{"Method", "URI", "Summary", "Request", "Response", "Source"}

// Table renders a one-row-per-endpoint overview grid for terminals.
func Table(eps []*endpoint.Endpoint) string {
	if len(eps) == 0 {
		return "No endpoints documented.\n"
	}

	rows := make([][]string, 0, len(eps))
	for _, ep := range eps {
		summary, _, _ := strings.Cut(ep.Description, "\n")
		rows = append(rows, []string{
			string(ep.Method),
			ep.URI,
			summary,
			messageSummary(ep.Request),
			messageSummary(ep.Response),
			fmt.Sprintf("%s:%d", ep.Source.File, ep.Source.Line),
		})
	}

	t := gotabulate.Create(rows)
	t.SetHeaders(tableHeaders)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return t.Render("grid")
}

func renderTable(w io.Writer, eps []*endpoint.Endpoint, _ Options) error {
	_, err := io.WriteString(w, Table(eps))
	return err
}

// messageSummary lists the parts a message declares, e.g. "headers(2) body:application/json".
func messageSummary(msg *endpoint.Message) string {
	if msg == nil {
		return "-"
	}
	var parts []string
	for _, part := range []struct {
		name  string
		table endpoint.ParameterTable
	}{
		{"headers", msg.Headers},
		{"path", msg.Path},
		{"query", msg.Query},
	} {
		if part.table != nil {
			parts = append(parts, fmt.Sprintf("%s(%d)", part.name, len(part.table)))
		}
	}
	if msg.Body != nil {
		parts = append(parts, "body:"+msg.Body.MIMEType)
	}
	return strings.Join(parts, " ")
}
