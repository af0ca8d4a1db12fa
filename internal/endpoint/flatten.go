// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package endpoint

import (
	"strings"

	"grimm.is/uridoc/internal/tree"
)

// Flatten writes block and everything nested below it back out as text, one line per
// node. Each line is prefixed with its block's indentation minus base, so text nested
// at any depth keeps its indentation relative to base.
//
// Lines are written from Node.Text, not Node.Content, so an '@' word at the start of a
// line stays in the output. Bodies are free text ("@media screen {", "@echo off") and
// dropping the first token would corrupt them; parameter tables and description
// children follow the same rule so every line reads back as written.
func Flatten(block *tree.Block, base string) string {
	var sb strings.Builder
	flattenInto(&sb, block, base)
	return sb.String()
}

func flattenInto(sb *strings.Builder, block *tree.Block, base string) {
	prefix := strings.TrimPrefix(block.Indentation, base)
	for _, node := range block.Nodes {
		sb.WriteString(prefix)
		sb.WriteString(node.Text)
		sb.WriteByte('\n')
		if node.Children != nil {
			flattenInto(sb, node.Children, base)
		}
	}
}
