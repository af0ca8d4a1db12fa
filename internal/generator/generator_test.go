// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/uridoc/internal/config"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/render"
	"grimm.is/uridoc/internal/testutil"
)

const usersJS = `/**
 * @uri
 * Get a user.
 * @get /users/:id
 * @request
 *     @path
 *         id - User id.
 */
function a() {}

/*
@uri
@post /users
@request
    @headers
        broken line without colon
*/
function b() {}
`

const ordersGo = `package api

// @uri
// @get /orders
func list() {}
`

func sourceTree(t *testing.T) string {
	return testutil.WriteTree(t, map[string]string{
		"api/users.js":  usersJS,
		"api/orders.go": ordersGo,
		"README.md":     "/*\n@uri\n@get /ignored\n*/\n",
	})
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	cfg.Extensions = []string{".js", ".go"}
	return cfg
}

func TestRunKeepGoing(t *testing.T) {
	root := sourceTree(t)
	gen, err := New(testConfig(root), testutil.QuietLogger())
	require.NoError(t, err)

	res, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 3, res.Comments)

	require.Len(t, res.Endpoints, 2)
	assert.Equal(t, "GET /orders", res.Endpoints[0].Title())
	assert.Equal(t, filepath.Join(root, "api", "orders.go"), res.Endpoints[0].Source.File)
	assert.Equal(t, 4, res.Endpoints[0].Source.Line)
	assert.Equal(t, "GET /users/:id", res.Endpoints[1].Title())
	assert.Equal(t, "Get a user.", res.Endpoints[1].Description)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, filepath.Join(root, "api", "users.js"), d.File)
	assert.Equal(t, 16, d.Line)
	assert.Equal(t, errors.KindMalformedKeyValue, d.Kind)

	assert.Equal(t, "2 endpoint(s) from 3 comment(s) in 2 file(s), 1 diagnostic(s)", res.Summary())
}

func TestRunAbortsWithoutKeepGoing(t *testing.T) {
	cfg := testConfig(sourceTree(t))
	cfg.KeepGoing = false

	gen, err := New(cfg, testutil.QuietLogger())
	require.NoError(t, err)

	res, err := gen.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, errors.KindMalformedKeyValue, errors.GetKind(err))

	_, line := errors.Location(err)
	assert.Equal(t, 16, line)
}

func TestRunDeterministicAcrossJobCounts(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"e.js", "a.js", "c/d.js", "b.js", "c/a.js"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		src := "/*\n@uri\n@get /" + name + "\n*/\n\n/*\n@uri\n@delete /" + name + "\n*/\n"
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}

	var outputs []string
	for _, jobs := range []int{1, 3, 16} {
		cfg := testConfig(root)
		cfg.Jobs = jobs
		gen, err := New(cfg, testutil.QuietLogger())
		require.NoError(t, err)

		res, err := gen.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Endpoints, 10)

		out, err := Render(res, render.FormatMarkdown, render.Options{})
		require.NoError(t, err)
		outputs = append(outputs, string(out))
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])

	first := strings.Index(outputs[0], "# GET /a.js")
	second := strings.Index(outputs[0], "# DELETE /a.js")
	third := strings.Index(outputs[0], "# GET /b.js")
	assert.True(t, first < second && second < third, outputs[0])
}

func TestRunCancelled(t *testing.T) {
	gen, err := New(testConfig(sourceTree(t)), testutil.QuietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Jobs = 0
	_, err := New(cfg, testutil.QuietLogger())
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestProcessFileUsesParserOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.TableOrder = string(endpoint.OrderKey)
	cfg.Sentinel = "@api"
	gen, err := New(cfg, testutil.QuietLogger())
	require.NoError(t, err)

	src := "/*\n@api\n@get /x\n@request\n    @query\n        z = last\n        a = first\n*/\n/*\n@uri\n@get /y\n*/"
	eps, diags := gen.ProcessFile("x.js", []byte(src))
	assert.Empty(t, diags)
	require.Len(t, eps, 1)
	assert.Equal(t, "a", eps[0].Request.Query[0].Key)
}

func TestProcessFileReportsCommentLine(t *testing.T) {
	gen, err := New(config.Default(), testutil.QuietLogger())
	require.NoError(t, err)

	// The tree error carries its own line; interpretation errors do too.
	src := "x\n/*\n@uri\n@get /a\n    @request\n  @response\n*/"
	_, diags := gen.ProcessFile("x.js", []byte(src))
	require.Len(t, diags, 1)
	assert.Equal(t, errors.KindWrongIndentation, diags[0].Kind)
	assert.Equal(t, 6, diags[0].Line)
	assert.Equal(t, "x.js", diags[0].File)
}

func TestRenderNilResult(t *testing.T) {
	_, err := Render(nil, render.FormatJSON, render.Options{})
	require.Error(t, err)
}
