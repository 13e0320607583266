package app

import (
	"interfacer/internal/core/app/helpers"
	"interfacer/internal/core/errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandEntries turns the given files and directories into the list of
// contract sources to compile. Files are taken as given. Directories are
// walked for files with the source extension, filtered by the batch include
// and exclude patterns, which match against the path relative to the walked
// directory or the bare file name. Excluded directory names are not entered.
func (a *App) ExpandEntries(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	sourceExt := strings.ToLower(a.Config.Extensions.Source)
	for _, root := range helpers.UniqueScanRoots(paths) {
		info, err := os.Stat(root)
		if err != nil {
			code := errors.CodeInternal
			if os.IsNotExist(err) {
				code = errors.CodeModuleNotFound
			}
			return nil, errors.AddContext(errors.Wrap(err, code, "stat entry"), errors.CtxPath, root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			if d.IsDir() {
				if helpers.MatchAny(a.excludeGlobs, rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.ToLower(filepath.Ext(path)) != sourceExt {
				return nil
			}
			if len(a.includeGlobs) > 0 && !helpers.MatchAny(a.includeGlobs, rel) {
				return nil
			}
			if helpers.MatchAny(a.excludeGlobs, rel) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "walk entries"), errors.CtxPath, root)
		}
	}

	sort.Strings(files)
	a.logger.Debug("entries expanded", "inputs", len(paths), "files", len(files))
	return files, nil
}
