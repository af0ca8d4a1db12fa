// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package tree turns the lines of one documentation comment into a tree of tagged nodes.
//
// Nesting is decided purely by literal indentation prefixes: a line belongs to the
// innermost open block whose indentation string it starts with. Tabs and spaces are
// never normalised, so "\t" and "    " are different levels.
//
//	this is content1
//	@tag1 this is content2
//	    @tag2 this is child content1
//	    this is child content2
//	this is content3
//
// yields a root block with three nodes, the second of which owns a children block
// (indentation "    ") holding two nodes.
package tree

import (
	"strings"

	"grimm.is/uridoc/internal/errors"
)

// TagPrefix marks the first token of a line as a tag.
const TagPrefix = '@'

// Location identifies a physical source line.
type Location struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
}

// Line is one non-blank physical line of a comment.
type Line struct {
	Location
	Text string
}

// Node is one line of the tree.
type Node struct {
	Tag      string // without the '@'; empty when the line has no tag
	Content  string // the line minus indentation and tag
	Text     string // the line minus indentation, tag kept
	Children *Block // nil unless deeper lines follow
	Location
}

// HasChildren reports whether any lines are nested below the node.
func (n *Node) HasChildren() bool {
	return n.Children != nil && len(n.Children.Nodes) > 0
}

// Block is a run of nodes sharing one indentation string.
type Block struct {
	Indentation string
	Nodes       []*Node
}

// Build converts lines into a root block whose indentation is the first line's
// leading whitespace. It fails with KindWrongIndentation when a line dedents below the
// root or lands between two open levels.
func Build(lines []Line) (*Block, error) {
	lines = nonBlank(lines)
	if len(lines) == 0 {
		return &Block{}, nil
	}

	root := &Block{Indentation: Indentation(lines[0].Text)}
	stack := []*Block{root}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		top := stack[len(stack)-1]

		if !strings.HasPrefix(line.Text, top.Indentation) {
			if len(stack) == 1 {
				return nil, wrongIndentation(line, "line is indented less than the comment's first line")
			}
			// Dedent: close the block and retry this line against its parent.
			stack = stack[:len(stack)-1]
			i--
			continue
		}

		if Indentation(line.Text[len(top.Indentation):]) != "" {
			if len(top.Nodes) == 0 {
				return nil, wrongIndentation(line, "nested line has no parent line")
			}
			parent := top.Nodes[len(top.Nodes)-1]
			if parent.Children != nil {
				return nil, wrongIndentation(line, "indentation does not match any enclosing level")
			}
			child := &Block{Indentation: Indentation(line.Text)}
			parent.Children = child
			stack = append(stack, child)
			top = child
		}

		text := strings.TrimRight(line.Text[len(top.Indentation):], " \t\r")
		tag, content := SplitTag(text)
		top.Nodes = append(top.Nodes, &Node{
			Tag:      tag,
			Content:  content,
			Text:     text,
			Location: line.Location,
		})
	}

	return root, nil
}

// Indentation returns the leading run of spaces and tabs of s.
func Indentation(s string) string {
	end := 0
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[:end]
}

// SplitTag separates a leading "@tag" token from the rest of s. The token must be
// followed by whitespace or the end of the line and name at least one character.
// s is expected to carry no indentation of its own.
func SplitTag(s string) (tag, content string) {
	s = strings.TrimRight(s, " \t\r")
	if len(s) < 2 || s[0] != TagPrefix {
		return "", s
	}

	end := strings.IndexAny(s, " \t")
	if end == -1 {
		return s[1:], ""
	}
	if end == 1 {
		// a lone "@" followed by text is prose
		return "", s
	}
	return s[1:end], strings.TrimLeft(s[end:], " \t")
}

func nonBlank(lines []Line) []Line {
	out := lines[:0:0]
	for _, l := range lines {
		if strings.TrimSpace(l.Text) != "" {
			out = append(out, l)
		}
	}
	return out
}

func wrongIndentation(line Line, reason string) error {
	err := errors.At(errors.KindWrongIndentation, line.File, line.Line, "Wrong indentation (%s)", reason)
	return errors.Attr(err, errors.AttrText, line.Text)
}
