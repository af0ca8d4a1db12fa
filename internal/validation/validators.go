// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package validation holds field validators shared by configuration and flags.
package validation

import (
	"mime"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"grimm.is/uridoc/internal/errors"
)

var (
	// A tag is "@" followed by a name without whitespace.
	tagRegex = regexp.MustCompile(`^@[^\s@]+$`)

	// A file extension: dot, then letters, digits, dash, underscore, plus.
	extensionRegex = regexp.MustCompile(`^\.[a-zA-Z0-9_+-]+$`)
)

// ValidateTag validates a comment tag such as the "@uri" sentinel.
func ValidateTag(tag string) error {
	if tag == "" {
		return errors.New(errors.KindValidation, "tag cannot be empty")
	}
	if !tagRegex.MatchString(tag) {
		return errors.Errorf(errors.KindValidation, "invalid tag: %q (must be @ followed by a name, e.g. \"@uri\")", tag)
	}
	return nil
}

// ValidateExtension validates a file extension such as ".js".
func ValidateExtension(ext string) error {
	if !extensionRegex.MatchString(ext) {
		return errors.Errorf(errors.KindValidation, "invalid extension: %q (must look like \".js\")", ext)
	}
	return nil
}

// ValidateMediaType validates a MIME type such as "application/json".
func ValidateMediaType(mt string) error {
	mediaType, _, err := mime.ParseMediaType(mt)
	if err != nil || !strings.Contains(mediaType, "/") {
		return errors.Errorf(errors.KindValidation, "invalid media type: %q", mt)
	}
	return nil
}

// ValidateGlob checks that a slash-separated path glob compiles.
func ValidateGlob(pattern string) error {
	if _, err := glob.Compile(strings.Trim(pattern, "/"), '/'); err != nil {
		return errors.Wrapf(err, errors.KindValidation, "invalid glob %q", pattern)
	}
	return nil
}

// ValidateAllowlist checks if a value is in an allowed list
func ValidateAllowlist(value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Errorf(errors.KindValidation, "%q is not one of: %s", value, strings.Join(allowed, ", "))
}
