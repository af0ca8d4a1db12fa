// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package endpoint

import (
	"grimm.is/uridoc/internal/errors"
)

// TableOrder selects how parameter tables are ordered.
type TableOrder string

const (
	// OrderDeclaration keeps parameters in the order they were written.
	OrderDeclaration TableOrder = "declaration"
	// OrderKey sorts parameters by key, keeping declaration order between equal keys.
	OrderKey TableOrder = "key"
)

// DuplicateMethodPolicy selects what happens when a comment declares two method tags.
type DuplicateMethodPolicy string

const (
	// DuplicateLastWins keeps the last method tag.
	DuplicateLastWins DuplicateMethodPolicy = "last"
	// DuplicateError rejects the comment with KindDuplicateMethod.
	DuplicateError DuplicateMethodPolicy = "error"
)

// Options tunes interpretation.
type Options struct {
	TableOrder      TableOrder
	DuplicateMethod DuplicateMethodPolicy
	DefaultMIMEType string
}

// DefaultOptions returns declaration order, last-wins methods and JSON bodies.
func DefaultOptions() Options {
	return Options{
		TableOrder:      OrderDeclaration,
		DuplicateMethod: DuplicateLastWins,
		DefaultMIMEType: DefaultMIMEType,
	}
}

// Validate checks that every option holds a known value.
func (o Options) Validate() error {
	switch o.TableOrder {
	case OrderDeclaration, OrderKey, "":
	default:
		return errors.Errorf(errors.KindValidation, "unknown table order %q (want %q or %q)", o.TableOrder, OrderDeclaration, OrderKey)
	}
	switch o.DuplicateMethod {
	case DuplicateLastWins, DuplicateError, "":
	default:
		return errors.Errorf(errors.KindValidation, "unknown duplicate method policy %q (want %q or %q)", o.DuplicateMethod, DuplicateLastWins, DuplicateError)
	}
	return nil
}

func (o Options) mimeType() string {
	if o.DefaultMIMEType == "" {
		return DefaultMIMEType
	}
	return o.DefaultMIMEType
}
