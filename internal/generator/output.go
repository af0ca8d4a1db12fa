// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generator

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/uridoc/internal/errors"
)

// Write replaces path with data, creating parent directories. The data goes to a
// temporary file in the same directory first so readers never see a partial file.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, errors.KindIO, "failed to write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to write %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to set mode on %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to replace %s", path)
	}
	return nil
}

// Check compares data with the current content of path. A missing or different file
// is a KindValidation error; for a different file the error message carries a unified
// diff from the file on disk to data.
func Check(path string, data []byte) error {
	current, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Errorf(errors.KindValidation, "%s does not exist", path)
		}
		return errors.Wrapf(err, errors.KindIO, "failed to read %s", path)
	}
	if bytes.Equal(current, data) {
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(data)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to diff output")
	}
	return errors.Attr(
		errors.Errorf(errors.KindValidation, "%s is out of date:\n%s", path, text),
		errors.AttrDiff, text,
	)
}
