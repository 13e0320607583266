package resolver

import (
	"interfacer/internal/core/errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the probe order within one directory: contract
// source first, then the precompiled JSON interface.
var DefaultExtensions = []string{".vy", ".json"}

// Locator picks the concrete interface file for a bare module name.
type Locator struct {
	Extensions []string
}

// Locate uses DefaultExtensions.
func Locate(dirs []string, name string) (string, error) {
	return Locator{Extensions: DefaultExtensions}.Locate(dirs, name)
}

// Locate returns the first regular file named name+ext, trying every
// extension in one directory before moving to the next. Directory order
// therefore outranks extension preference.
func (l Locator) Locate(dirs []string, name string) (string, error) {
	exts := l.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	for _, dir := range dirs {
		for _, ext := range exts {
			candidate := filepath.Join(dir, name+ext)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
	}

	err := errors.Newf(errors.CodeModuleNotFound, "module %q not found", name)
	err = errors.AddContext(err, errors.CtxModule, name)
	return "", errors.AddContext(err, "searched", strings.Join(dirs, string(os.PathListSeparator)))
}
