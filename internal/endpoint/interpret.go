// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package endpoint

import (
	"strings"

	"github.com/agext/levenshtein"

	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/tree"
)

const (
	tagRequest  = "request"
	tagResponse = "response"
)

// Parse builds the tree for one comment and interprets it.
func Parse(lines []tree.Line, opts Options) (*Endpoint, error) {
	root, err := tree.Build(lines)
	if err != nil {
		return nil, err
	}
	return Interpret(root, opts)
}

// Interpret walks the top level of root and builds an Endpoint. On failure no partial
// Endpoint is returned.
func Interpret(root *tree.Block, opts Options) (*Endpoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ep := &Endpoint{}
	var description strings.Builder

	for i, node := range root.Nodes {
		if i == 0 {
			ep.Source = node.Location
		}

		if node.Tag == "" {
			description.WriteString(node.Text)
			description.WriteByte('\n')
			if node.Children != nil {
				description.WriteString(Flatten(node.Children, node.Children.Indentation))
			}
			continue
		}

		if method, ok := ParseMethod(node.Tag); ok {
			if ep.Method != "" && opts.DuplicateMethod == DuplicateError {
				err := errors.At(errors.KindDuplicateMethod, node.File, node.Line,
					"Method already declared as %s, found @%s", ep.Method, node.Tag)
				return nil, errors.Attr(err, errors.AttrTag, node.Tag)
			}
			if node.Content == "" {
				err := errors.At(errors.KindMissingURI, node.File, node.Line,
					"There should be a uri after @%s", node.Tag)
				return nil, errors.Attr(err, errors.AttrTag, node.Tag)
			}
			ep.Method = method
			ep.URI = node.Content
			continue
		}

		switch node.Tag {
		case tagRequest, tagResponse:
			msg, err := buildMessage(node, opts)
			if err != nil {
				return nil, err
			}
			if node.Tag == tagRequest {
				ep.Request = msg
			} else {
				ep.Response = msg
			}
		default:
			return nil, unsupportedTag(node, topLevelTags())
		}
	}

	ep.Description = trimBlankLines(description.String())
	return ep, nil
}

func topLevelTags() []string {
	tags := make([]string, 0, len(Methods)+2)
	for _, m := range Methods {
		tags = append(tags, strings.ToLower(string(m)))
	}
	return append(tags, tagRequest, tagResponse)
}

// unsupportedTag reports node's tag, suggesting the closest allowed tag when one is
// within editing distance.
func unsupportedTag(node *tree.Node, allowed []string) error {
	var err error
	if node.Tag == "" {
		err = errors.At(errors.KindUnsupportedTag, node.File, node.Line,
			"Expected one of @%s, found untagged line %q", strings.Join(allowed, ", @"), node.Text)
	} else {
		err = errors.At(errors.KindUnsupportedTag, node.File, node.Line, "Unsupported tag %q", node.Tag)
		if suggestion := suggestTag(node.Tag, allowed); suggestion != "" {
			err = errors.Attr(err, errors.AttrSuggestion, "@"+suggestion)
		}
	}
	err = errors.Attr(err, errors.AttrTag, node.Tag)
	return errors.Attr(err, errors.AttrText, node.Text)
}

func suggestTag(given string, allowed []string) string {
	given = strings.ToLower(given)
	best, bestDist := "", 3
	for _, candidate := range allowed {
		if dist := levenshtein.Distance(given, candidate, nil); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

// trimBlankLines drops whitespace-only lines from both ends of s and the final newline.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
