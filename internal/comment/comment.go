// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package comment isolates documentation comments from source text.
//
// A documentation comment is a block comment, or a run of line comments, that contains
// a line consisting only of the sentinel tag (default "@uri"). The sentinel line, blank
// lines and the comment delimiters are dropped; every remaining line keeps its file
// path and 1-based line number.
package comment

import (
	"path/filepath"
	"strings"

	"grimm.is/uridoc/internal/tree"
)

// DefaultSentinel marks a comment as endpoint documentation.
const DefaultSentinel = "@uri"

// Style describes the comment syntax of a source language.
type Style struct {
	Line       string // line comment marker, e.g. "//"
	BlockStart string // e.g. "/*"; empty when the language has no block comments
	BlockEnd   string
}

var (
	// StyleC covers C-family languages, JavaScript, Go, Java and friends.
	StyleC = Style{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
	// StyleHash covers Python, Ruby, shell and similar.
	StyleHash = Style{Line: "#"}
)

var hashExtensions = map[string]bool{
	".py":   true,
	".rb":   true,
	".sh":   true,
	".bash": true,
	".pl":   true,
	".r":    true,
	".yaml": true,
	".yml":  true,
	".tf":   true,
}

// StyleFor picks the comment style from the file extension. Unknown extensions get
// StyleC.
func StyleFor(path string) Style {
	if hashExtensions[strings.ToLower(filepath.Ext(path))] {
		return StyleHash
	}
	return StyleC
}

// Comment is one documentation comment.
type Comment struct {
	File  string
	Lines []tree.Line
}

// Extractor finds documentation comments.
type Extractor struct {
	Sentinel string
}

// NewExtractor returns an Extractor for sentinel, or DefaultSentinel when empty.
func NewExtractor(sentinel string) *Extractor {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Extractor{Sentinel: sentinel}
}

// Extract returns the documentation comments of src in source order, using the style
// implied by file's extension.
func (x *Extractor) Extract(file string, src []byte) []Comment {
	return x.ExtractStyle(file, src, StyleFor(file))
}

// ExtractStyle is Extract with an explicit comment style.
func (x *Extractor) ExtractStyle(file string, src []byte, style Style) []Comment {
	lines := strings.Split(string(src), "\n")

	var (
		comments []Comment
		current  []tree.Line
		inBlock  bool
		inRun    bool
		gutter   = true
	)

	flush := func() {
		if c, ok := x.finish(file, current, gutter); ok {
			comments = append(comments, c)
		}
		current, inBlock, inRun, gutter = nil, false, false, true
	}

	add := func(number int, text string) {
		current = append(current, tree.Line{
			Location: tree.Location{File: file, Line: number},
			Text:     text,
		})
	}

	for i, raw := range lines {
		number := i + 1
		raw = strings.TrimRight(raw, "\r")
		if number == 1 && strings.HasPrefix(raw, "#!") {
			continue // interpreter line
		}
		trimmed := strings.TrimLeft(raw, " \t")

		if inBlock {
			text, closed := raw, false
			if idx := strings.Index(raw, style.BlockEnd); idx != -1 {
				text, closed = raw[:idx], true
			}
			if strings.TrimSpace(text) != "" {
				if !hasGutter(text) {
					gutter = false
				}
				add(number, text)
			}
			if closed {
				flush()
			}
			continue
		}

		if inRun {
			if style.Line != "" && strings.HasPrefix(trimmed, style.Line) {
				add(number, lineCommentText(trimmed, style.Line))
				continue
			}
			flush()
		}

		switch {
		case style.BlockStart != "" && strings.HasPrefix(trimmed, style.BlockStart):
			rest := strings.TrimLeft(trimmed[len(style.BlockStart):], "*!")
			if idx := strings.Index(rest, style.BlockEnd); idx != -1 {
				// single-line block comment
				if text := strings.TrimSpace(rest[:idx]); text != "" {
					add(number, text)
				}
				gutter = false
				flush()
				continue
			}
			inBlock = true
			if text := strings.TrimSpace(rest); text != "" {
				add(number, text)
			}
		case style.Line != "" && strings.HasPrefix(trimmed, style.Line):
			inRun = true
			gutter = false
			add(number, lineCommentText(trimmed, style.Line))
		}
	}

	// An unterminated block or a run at end of file still counts.
	if inBlock || inRun {
		flush()
	}
	return comments
}

// finish drops the sentinel and blank lines, strips a "*" gutter shared by every line,
// and reports whether the comment is documentation.
func (x *Extractor) finish(file string, lines []tree.Line, gutter bool) (Comment, bool) {
	found := false
	out := make([]tree.Line, 0, len(lines))
	for _, l := range lines {
		text := l.Text
		if gutter {
			text = stripGutter(text)
		}
		if strings.TrimSpace(text) == x.Sentinel {
			found = true
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		l.Text = text
		out = append(out, l)
	}
	if !found || len(out) == 0 {
		return Comment{}, false
	}
	return Comment{File: file, Lines: out}, true
}

// lineCommentText removes the marker and one following space.
func lineCommentText(trimmed, marker string) string {
	text := strings.TrimLeft(trimmed[len(marker):], marker[len(marker)-1:])
	return strings.TrimPrefix(text, " ")
}

func hasGutter(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t"), "*")
}

// stripGutter removes leading whitespace, the "*" and one following space or tab.
func stripGutter(text string) string {
	text = strings.TrimLeft(text, " \t")
	text = strings.TrimPrefix(text, "*")
	if strings.HasPrefix(text, " ") || strings.HasPrefix(text, "\t") {
		text = text[1:]
	}
	return text
}
