// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package endpoint

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/uridoc/internal/tree"
)

func TestFlattenFixedBase(t *testing.T) {
	block := &tree.Block{
		Indentation: "  ",
		Nodes: []*tree.Node{
			{Text: "a", Children: &tree.Block{
				Indentation: "    ",
				Nodes: []*tree.Node{
					{Text: "b", Children: &tree.Block{
						Indentation: "      ",
						Nodes:       []*tree.Node{{Text: "c"}},
					}},
				},
			}},
			{Text: "d"},
		},
	}

	assert.Equal(t, "a\n  b\n    c\nd\n", Flatten(block, "  "))
	assert.Equal(t, "  a\n    b\n      c\n  d\n", Flatten(block, ""))
}

// Flattening a body and splitting it on newlines gives back every source line with the
// body's base indentation removed, whatever the nesting depth.
func TestFlattenRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	units := []string{"  ", "    ", "\t"}

	for iter := 0; iter < 200; iter++ {
		unit := units[rng.Intn(len(units))]
		base := "    "
		depth := 0

		var want []string
		lines := []string{"@body"}
		n := 1 + rng.Intn(12)
		for i := 0; i < n; i++ {
			if i > 0 {
				switch rng.Intn(3) {
				case 0:
					depth++
				case 1:
					if depth > 0 {
						depth -= rng.Intn(depth + 1)
					}
				}
			}
			text := fmt.Sprintf("line%d {x: %d}", i, rng.Intn(100))
			rel := strings.Repeat(unit, depth)
			want = append(want, rel+text)
			lines = append(lines, base+rel+text)
		}

		src := make([]tree.Line, len(lines))
		for i, l := range lines {
			src[i] = tree.Line{Location: tree.Location{Line: i + 1}, Text: l}
		}
		root, err := tree.Build(src)
		require.NoError(t, err, "lines: %q", lines)

		body := buildBody(root.Nodes[0], DefaultOptions())
		assert.Equal(t, want, strings.Split(body.Content, "\n"), "lines: %q", lines)
	}
}

func TestTrimBlankLines(t *testing.T) {
	assert.Equal(t, "  a\n\nb", trimBlankLines("\n \n  a\n\nb\n\t\n"))
	assert.Equal(t, "", trimBlankLines("\n\n"))
}
