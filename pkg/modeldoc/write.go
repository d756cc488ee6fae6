package modeldoc

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/palm-dbt/pkg/consts"
)

type (
	// Confirmer is asked before an existing file is overwritten.
	Confirmer interface {
		Confirm(prompt string) (bool, error)
	}

	// ConfirmFunc adapts a function to the Confirmer interface.
	ConfirmFunc func(prompt string) (bool, error)
)

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// WriteSchema writes schema to path, creating parent directories as needed. When path already
// exists confirm decides whether it is replaced; declining leaves the file untouched and
// returns false without an error.
func WriteSchema(path string, schema *Schema, confirm Confirmer) (bool, error) {
	return writeFile(path, confirm, schema.Encode)
}

// WriteMarkdown renders the documentation block for in to path using the same overwrite rules
// as WriteSchema.
func WriteMarkdown(path string, in MarkdownInput, confirm Confirmer) (bool, error) {
	return writeFile(path, confirm, func(w io.Writer) error {
		return RenderMarkdown(w, in)
	})
}

func writeFile(path string, confirm Confirmer, render func(io.Writer) error) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		if confirm == nil {
			return false, errors.Errorf("%s already exists", path)
		}

		ok, err := confirm.Confirm(filepath.Base(path) + " already exists. Do you want to overwrite it?")
		if err != nil {
			return false, errors.Wrap(err, "failed to confirm overwrite")
		}

		if !ok {
			return false, nil
		}
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to stat %s", path)
	}

	// render fully before opening the destination
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), consts.ModeDir); err != nil {
		return false, errors.Wrapf(err, "failed to create directory %s", filepath.Dir(path))
	}

	if err := os.WriteFile(path, buf.Bytes(), consts.ModeFile); err != nil {
		return false, errors.Wrapf(err, "failed to write file %s", path)
	}

	return true, nil
}
