// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"

	"grimm.is/uridoc/internal/brand"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/render"
	"grimm.is/uridoc/internal/validation"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) add(field, format string, args ...any) {
	*e = append(*e, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every field and reports all problems at once as a KindValidation
// error wrapping ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.RequiredVersion != "" {
		if err := checkRequiredVersion(c.RequiredVersion, brand.Version); err != nil {
			errs.add("required_version", "%v", err)
		}
	}

	if err := validation.ValidateAllowlist(c.Format, render.Formats()); err != nil {
		errs.add("format", "%v", err)
	}

	if err := validation.ValidateTag(c.Sentinel); err != nil {
		errs.add("sentinel", "%v", err)
	}

	for i, ext := range c.Extensions {
		if err := validation.ValidateExtension(ext); err != nil {
			errs.add(fmt.Sprintf("extensions[%d]", i), "%v", err)
		}
	}

	for i, pattern := range c.Exclude {
		if err := validation.ValidateGlob(pattern); err != nil {
			errs.add(fmt.Sprintf("exclude[%d]", i), "%v", err)
		}
	}

	if c.Jobs < 1 {
		errs.add("jobs", "must be at least 1, got %d", c.Jobs)
	}

	if p := c.Parser; p != nil {
		orders := []string{string(endpoint.OrderDeclaration), string(endpoint.OrderKey)}
		if err := validation.ValidateAllowlist(p.TableOrder, orders); err != nil {
			errs.add("parser.table_order", "%v", err)
		}
		policies := []string{string(endpoint.DuplicateLastWins), string(endpoint.DuplicateError)}
		if err := validation.ValidateAllowlist(p.DuplicateMethod, policies); err != nil {
			errs.add("parser.duplicate_method", "%v", err)
		}
		if err := validation.ValidateMediaType(p.DefaultMIMEType); err != nil {
			errs.add("parser.default_mime_type", "%v", err)
		}
	}

	if len(errs) > 0 {
		return errors.Wrap(errs, errors.KindValidation, "invalid configuration")
	}
	return nil
}

// checkRequiredVersion fails when current does not satisfy constraint. Development
// builds, whose version does not parse, satisfy every constraint.
func checkRequiredVersion(constraint, current string) error {
	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return nil
	}
	if !constraints.Check(v) {
		return fmt.Errorf("%s %s does not satisfy %q", brand.Name, current, constraint)
	}
	return nil
}
