// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grimm.is/uridoc/internal/errors"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"tag", ValidateTag("@uri"), false},
		{"tag without @", ValidateTag("uri"), true},
		{"bare @", ValidateTag("@"), true},
		{"tag with space", ValidateTag("@u ri"), true},
		{"empty tag", ValidateTag(""), true},
		{"extension", ValidateExtension(".tsx"), false},
		{"extension without dot", ValidateExtension("js"), true},
		{"blank extension", ValidateExtension(" "), true},
		{"media type", ValidateMediaType("application/problem+json; charset=utf-8"), false},
		{"media type without subtype", ValidateMediaType("json"), true},
		{"glob", ValidateGlob("vendor/**"), false},
		{"broken glob", ValidateGlob("[oops"), true},
		{"allowlist", ValidateAllowlist("key", []string{"declaration", "key"}), false},
		{"not allowed", ValidateAllowlist("random", []string{"declaration", "key"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				assert.NoError(t, tt.err)
				return
			}
			assert.Error(t, tt.err)
			assert.Equal(t, errors.KindValidation, errors.GetKind(tt.err))
		})
	}
}
