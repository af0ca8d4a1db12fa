// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the uridoc HCL configuration file.
//
//	required_version = ">= 1.0"
//	root       = "."
//	output     = "API.md"
//	format     = "markdown"
//	extensions = [".js", ".ts"]
//	exclude    = ["vendor/**"]
//
//	parser {
//	  table_order      = "declaration"
//	  duplicate_method = "last"
//	}
//
//	openapi {
//	  title   = "Users API"
//	  version = env.API_VERSION
//	}
//
// Attributes left out keep their Default values. The process environment is
// available to expressions as the "env" object.
package config

import (
	"grimm.is/uridoc/internal/comment"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/render"
)

// DefaultJobs bounds concurrent file reads when the config does not.
const DefaultJobs = 8

// DefaultExtensions lists the source extensions scanned by default.
var DefaultExtensions = []string{
	".js", ".mjs", ".cjs", ".ts", ".jsx", ".tsx",
	".go", ".java", ".kt", ".scala", ".c", ".h", ".cc", ".cpp", ".cs", ".swift", ".php", ".rs",
	".py", ".rb", ".sh",
}

// Config is the top-level configuration.
type Config struct {
	RequiredVersion string   `hcl:"required_version,optional" json:"required_version,omitempty"`
	Root            string   `hcl:"root,optional" json:"root"`
	Output          string   `hcl:"output,optional" json:"output,omitempty"` // empty writes to stdout
	Format          string   `hcl:"format,optional" json:"format"`
	Sentinel        string   `hcl:"sentinel,optional" json:"sentinel"`
	Extensions      []string `hcl:"extensions,optional" json:"extensions"`
	Exclude         []string `hcl:"exclude,optional" json:"exclude,omitempty"`
	Gitignore       bool     `hcl:"gitignore,optional" json:"gitignore"`
	Jobs            int      `hcl:"jobs,optional" json:"jobs"`
	KeepGoing       bool     `hcl:"keep_going,optional" json:"keep_going"`

	Parser  *ParserConfig  `hcl:"parser,block" json:"parser"`
	OpenAPI *OpenAPIConfig `hcl:"openapi,block" json:"openapi"`
}

// ParserConfig tunes comment interpretation.
type ParserConfig struct {
	TableOrder      string `hcl:"table_order,optional" json:"table_order"`
	DuplicateMethod string `hcl:"duplicate_method,optional" json:"duplicate_method"`
	DefaultMIMEType string `hcl:"default_mime_type,optional" json:"default_mime_type"`
}

// OpenAPIConfig fills the info object of OpenAPI output.
type OpenAPIConfig struct {
	Title   string `hcl:"title,optional" json:"title,omitempty"`
	Version string `hcl:"version,optional" json:"version,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Root:       ".",
		Format:     string(render.FormatMarkdown),
		Sentinel:   comment.DefaultSentinel,
		Extensions: append([]string(nil), DefaultExtensions...),
		Gitignore:  true,
		Jobs:       DefaultJobs,
		KeepGoing:  true,
		Parser:     defaultParser(),
		OpenAPI:    &OpenAPIConfig{},
	}
}

func defaultParser() *ParserConfig {
	opts := endpoint.DefaultOptions()
	return &ParserConfig{
		TableOrder:      string(opts.TableOrder),
		DuplicateMethod: string(opts.DuplicateMethod),
		DefaultMIMEType: opts.DefaultMIMEType,
	}
}

// fillDefaults restores defaults for blocks and attributes decoding left empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Sentinel == "" {
		c.Sentinel = d.Sentinel
	}
	if c.Extensions == nil {
		c.Extensions = d.Extensions
	}
	if c.Parser == nil {
		c.Parser = d.Parser
	}
	if c.Parser.TableOrder == "" {
		c.Parser.TableOrder = d.Parser.TableOrder
	}
	if c.Parser.DuplicateMethod == "" {
		c.Parser.DuplicateMethod = d.Parser.DuplicateMethod
	}
	if c.Parser.DefaultMIMEType == "" {
		c.Parser.DefaultMIMEType = d.Parser.DefaultMIMEType
	}
	if c.OpenAPI == nil {
		c.OpenAPI = d.OpenAPI
	}
}

// EndpointOptions converts the parser block.
func (c *Config) EndpointOptions() endpoint.Options {
	p := c.Parser
	if p == nil {
		p = defaultParser()
	}
	return endpoint.Options{
		TableOrder:      endpoint.TableOrder(p.TableOrder),
		DuplicateMethod: endpoint.DuplicateMethodPolicy(p.DuplicateMethod),
		DefaultMIMEType: p.DefaultMIMEType,
	}
}

// RenderOptions converts the openapi block.
func (c *Config) RenderOptions() render.Options {
	if c.OpenAPI == nil {
		return render.Options{}
	}
	return render.Options{Title: c.OpenAPI.Title, Version: c.OpenAPI.Version}
}
