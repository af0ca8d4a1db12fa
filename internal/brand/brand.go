// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package brand holds the product identity, embedded from brand.json, and the
// build-time version stamp.
package brand

import (
	_ "embed"
	"encoding/json"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name            string `json:"name"`
	BinaryName      string `json:"binaryName"`
	Description     string `json:"description"`
	Repository      string `json:"repository"`
	ConfigFileName  string `json:"configFileName"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	Copyright       string `json:"copyright"`
	License         string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	BinaryName = b.BinaryName
	Description = b.Description
	ConfigFileName = b.ConfigFileName
	ConfigEnvPrefix = b.ConfigEnvPrefix
}

var (
	Name            string
	BinaryName      string
	Description     string
	ConfigFileName  string
	ConfigEnvPrefix string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// VersionString returns "name version (commit, built time)".
func VersionString() string {
	return Name + " " + Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
