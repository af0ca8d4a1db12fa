// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package endpoint

import (
	"sort"
	"strings"

	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/tree"
)

// Separators between key and value per table tag.
const (
	HeadersSeparator = ':'
	PathSeparator    = '-'
	QuerySeparator   = '='
)

type partBuilder func(m *Message, node *tree.Node, opts Options) error

// messageParts maps each tag allowed inside @request/@response to its builder.
var messageParts = map[string]partBuilder{
	"headers": func(m *Message, node *tree.Node, opts Options) (err error) {
		m.Headers, err = buildTable(node, HeadersSeparator, opts)
		return err
	},
	"path": func(m *Message, node *tree.Node, opts Options) (err error) {
		m.Path, err = buildTable(node, PathSeparator, opts)
		return err
	},
	"query": func(m *Message, node *tree.Node, opts Options) (err error) {
		m.Query, err = buildTable(node, QuerySeparator, opts)
		return err
	},
	"body": func(m *Message, node *tree.Node, opts Options) error {
		m.Body = buildBody(node, opts)
		return nil
	},
}

var messagePartTags = []string{"headers", "path", "query", "body"}

func buildMessage(node *tree.Node, opts Options) (*Message, error) {
	if !node.HasChildren() {
		return nil, missingContent(node)
	}

	msg := &Message{}
	for _, part := range node.Children.Nodes {
		build, ok := messageParts[part.Tag]
		if !ok {
			return nil, unsupportedTag(part, messagePartTags)
		}
		if err := build(msg, part, opts); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// buildTable splits every line below node at the first sep. Lines nested below a
// parameter line continue its value.
func buildTable(node *tree.Node, sep byte, opts Options) (ParameterTable, error) {
	if !node.HasChildren() {
		return nil, missingContent(node)
	}

	table := make(ParameterTable, 0, len(node.Children.Nodes))
	for _, line := range node.Children.Nodes {
		idx := strings.IndexByte(line.Text, sep)
		if idx == -1 {
			err := errors.At(errors.KindMalformedKeyValue, line.File, line.Line,
				"Wrong format at %q, expected %q between key and value", line.Text, string(sep))
			err = errors.Attr(err, errors.AttrTag, node.Tag)
			return nil, errors.Attr(err, errors.AttrText, line.Text)
		}

		value := strings.TrimSpace(line.Text[idx+1:])
		if line.Children != nil {
			continuation := strings.Fields(Flatten(line.Children, line.Children.Indentation))
			value = strings.TrimSpace(value + " " + strings.Join(continuation, " "))
		}

		table = append(table, Parameter{
			Key:   strings.TrimSpace(line.Text[:idx]),
			Value: value,
		})
	}

	if opts.TableOrder == OrderKey {
		sort.SliceStable(table, func(i, j int) bool {
			return table[i].Key < table[j].Key
		})
	}
	return table, nil
}

func buildBody(node *tree.Node, opts Options) *Body {
	body := &Body{MIMEType: node.Content}
	if body.MIMEType == "" {
		body.MIMEType = opts.mimeType()
	}
	if node.Children != nil {
		body.Content = trimBlankLines(Flatten(node.Children, node.Children.Indentation))
	}
	return body
}

func missingContent(node *tree.Node) error {
	err := errors.At(errors.KindMissingContent, node.File, node.Line,
		"Didn't find any content below tag @%s", node.Tag)
	return errors.Attr(err, errors.AttrTag, node.Tag)
}
