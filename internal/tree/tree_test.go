// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/uridoc/internal/errors"
)

func linesOf(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Location: Location{File: "test.js", Line: i + 1}, Text: text}
	}
	return lines
}

func TestBuildNestedStructure(t *testing.T) {
	root, err := Build(linesOf(
		"this is content1",
		"@tag1 this is content2",
		"    @tag2 this is child content1",
		"    this is child content2",
		"this is content3",
	))
	require.NoError(t, err)

	assert.Equal(t, "", root.Indentation)
	require.Len(t, root.Nodes, 3)

	first := root.Nodes[0]
	assert.Equal(t, "", first.Tag)
	assert.Equal(t, "this is content1", first.Content)
	assert.Nil(t, first.Children)

	second := root.Nodes[1]
	assert.Equal(t, "tag1", second.Tag)
	assert.Equal(t, "this is content2", second.Content)
	require.NotNil(t, second.Children)
	assert.Equal(t, "    ", second.Children.Indentation)
	require.Len(t, second.Children.Nodes, 2)
	assert.Equal(t, "tag2", second.Children.Nodes[0].Tag)
	assert.Equal(t, "this is child content1", second.Children.Nodes[0].Content)
	assert.Equal(t, "", second.Children.Nodes[1].Tag)
	assert.Equal(t, "this is child content2", second.Children.Nodes[1].Content)
	assert.Equal(t, 4, second.Children.Nodes[1].Line)

	assert.Equal(t, "this is content3", root.Nodes[2].Content)
	assert.Equal(t, Location{File: "test.js", Line: 5}, root.Nodes[2].Location)
}

func TestBuildRootIndentationFromFirstLine(t *testing.T) {
	root, err := Build(linesOf(
		"  @get /users",
		"  @response",
		"      @body",
		"          {}",
	))
	require.NoError(t, err)

	assert.Equal(t, "  ", root.Indentation)
	require.Len(t, root.Nodes, 2)
	assert.Equal(t, "get", root.Nodes[0].Tag)
	assert.Equal(t, "/users", root.Nodes[0].Content)

	body := root.Nodes[1].Children.Nodes[0]
	assert.Equal(t, "body", body.Tag)
	assert.Equal(t, "          ", body.Children.Indentation)
	assert.Equal(t, "{}", body.Children.Nodes[0].Content)
}

func TestBuildDedentsSeveralLevels(t *testing.T) {
	root, err := Build(linesOf(
		"@request",
		"    @body",
		"        {",
		"            \"a\": 1",
		"        }",
		"@response",
		"    @body text/plain",
	))
	require.NoError(t, err)
	require.Len(t, root.Nodes, 2)

	body := root.Nodes[0].Children.Nodes[0]
	require.Len(t, body.Children.Nodes, 2)
	assert.Equal(t, "{", body.Children.Nodes[0].Content)
	assert.Equal(t, "\"a\": 1", body.Children.Nodes[0].Children.Nodes[0].Content)
	assert.Equal(t, "}", body.Children.Nodes[1].Content)

	resp := root.Nodes[1]
	assert.Equal(t, "response", resp.Tag)
	assert.Equal(t, "text/plain", resp.Children.Nodes[0].Content)
}

func TestBuildWrongIndentation(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		line  int
	}{
		{
			name:  "below root",
			lines: linesOf("    @get /x", "  description"),
			line:  2,
		},
		{
			name:  "between levels",
			lines: linesOf("@request", "    @headers", "        a: b", "  @body"),
			line:  4,
		},
		{
			name:  "tab against spaces",
			lines: linesOf("@request", "    @headers", "\t@body"),
			line:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(tt.lines)
			require.Error(t, err)
			assert.Nil(t, root)
			assert.Equal(t, errors.KindWrongIndentation, errors.GetKind(err))

			file, line := errors.Location(err)
			assert.Equal(t, "test.js", file)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestBuildSkipsBlankLines(t *testing.T) {
	root, err := Build(linesOf("@get /a", "   ", "text"))
	require.NoError(t, err)
	require.Len(t, root.Nodes, 2)
	assert.Nil(t, root.Nodes[0].Children)
}

func TestBuildEmpty(t *testing.T) {
	root, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, root.Nodes)
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		in      string
		tag     string
		content string
	}{
		{"@get /users/:id", "get", "/users/:id"},
		{"@request", "request", ""},
		{"@body\ttext/plain", "body", "text/plain"},
		{"@body   application/xml  ", "body", "application/xml"},
		{"plain text", "", "plain text"},
		{"mail me@example.com", "", "mail me@example.com"},
		{"@", "", "@"},
		{"@ not a tag", "", "@ not a tag"},
		{"@headers\r", "headers", ""},
	}

	for _, tt := range tests {
		tag, content := SplitTag(tt.in)
		assert.Equal(t, tt.tag, tag, "tag of %q", tt.in)
		assert.Equal(t, tt.content, content, "content of %q", tt.in)
	}
}

func TestChildIndentationExtendsParent(t *testing.T) {
	root, err := Build(linesOf(
		"\t@request",
		"\t\t@headers",
		"\t\t\tA: 1",
		"\t\t@query",
		"\t\t  page = 1",
		"\tdone",
	))
	require.NoError(t, err)

	var walk func(b *Block)
	walk = func(b *Block) {
		for _, n := range b.Nodes {
			if n.Children != nil {
				assert.True(t, strings.HasPrefix(n.Children.Indentation, b.Indentation))
				assert.NotEqual(t, b.Indentation, n.Children.Indentation)
				walk(n.Children)
			}
		}
	}
	walk(root)

	query := root.Nodes[0].Children.Nodes[1]
	assert.Equal(t, "\t\t  ", query.Children.Indentation)
	assert.Equal(t, "page = 1", query.Children.Nodes[0].Content)
}
