// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"io/fs"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindValidation, "invalid input")
	if err.Error() != "invalid input" {
		t.Errorf("expected 'invalid input', got '%s'", err.Error())
	}

	wrapped := Wrap(err, KindInternal, "failed to validate")
	if wrapped.Error() != "failed to validate: invalid input" {
		t.Errorf("expected 'failed to validate: invalid input', got '%s'", wrapped.Error())
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindMissingContent, "nothing below @request")
	if GetKind(err) != KindMissingContent {
		t.Errorf("expected KindMissingContent, got %v", GetKind(err))
	}

	wrapped := Wrap(fs.ErrNotExist, KindIO, "failed to read")
	if GetKind(wrapped) != KindIO {
		t.Errorf("expected KindIO, got %v", GetKind(wrapped))
	}
	if !Is(wrapped, fs.ErrNotExist) {
		t.Error("expected wrapped IO error to keep its cause")
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", GetKind(errors.New("std error")))
	}
}

func TestAt(t *testing.T) {
	err := At(KindUnsupportedTag, "src/app.js", 12, "Unsupported tag %q", "foo")
	if err.Error() != `Unsupported tag "foo" in src/app.js at line 12` {
		t.Errorf("unexpected message: %s", err.Error())
	}

	file, line := Location(err)
	if file != "src/app.js" || line != 12 {
		t.Errorf("expected src/app.js:12, got %s:%d", file, line)
	}

	noFile := At(KindMissingURI, "", 3, "There should be a uri after the method")
	if noFile.Error() != "There should be a uri after the method at line 3" {
		t.Errorf("unexpected message: %s", noFile.Error())
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindMalformedKeyValue, "wrong format")
	err = Attr(err, AttrTag, "query")
	err = Attr(err, AttrText, "page 1")

	attrs := GetAttributes(err)
	if attrs[AttrTag] != "query" {
		t.Errorf("expected query, got %v", attrs[AttrTag])
	}
	if attrs[AttrText] != "page 1" {
		t.Errorf("expected 'page 1', got %v", attrs[AttrText])
	}

	wrapped := Wrap(err, KindInternal, "failed")
	wrapped = Attr(wrapped, "operation", "interpret")

	allAttrs := GetAttributes(wrapped)
	if allAttrs[AttrTag] != "query" || allAttrs["operation"] != "interpret" {
		t.Errorf("missing attributes: %v", allAttrs)
	}
}

func TestKindIsParse(t *testing.T) {
	for _, k := range []Kind{KindWrongIndentation, KindMissingContent, KindMalformedKeyValue, KindMissingURI, KindUnsupportedTag, KindDuplicateMethod} {
		if !k.IsParse() {
			t.Errorf("expected %s to be a parse kind", k)
		}
	}
	for _, k := range []Kind{KindUnknown, KindInternal, KindValidation, KindIO} {
		if k.IsParse() {
			t.Errorf("expected %s not to be a parse kind", k)
		}
	}
}
