package resolver

import (
	"interfacer/internal/core/errors"
	"interfacer/internal/shared/util"
	"os"
	"path/filepath"
)

// SearchPlan is the ordered list of directories to probe for Name.
type SearchPlan struct {
	Dirs []string
	Name string
}

// PathResolver turns module paths into search plans bounded by a project
// root.
type PathResolver struct {
	root           string
	interfaceRoots []string
}

// NewPathResolver canonicalizes root, which must be an existing directory.
// Relative interface roots are taken from root.
func NewPathResolver(root string, interfaceRoots []string) (*PathResolver, error) {
	canonical, err := util.CanonicalPath(root)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize root"), errors.CtxPath, root)
	}
	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		err := errors.New(errors.CodeModuleNotFound, "project root does not exist")
		return nil, errors.AddContext(err, errors.CtxPath, root)
	}

	r := &PathResolver{root: canonical}
	for _, dir := range interfaceRoots {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(canonical, dir)
		}
		c, err := util.CanonicalPath(dir)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize interface root"), errors.CtxPath, dir)
		}
		r.interfaceRoots = append(r.interfaceRoots, c)
	}
	return r, nil
}

func (r *PathResolver) Root() string { return r.root }

// Resolve computes the candidate directories for mp imported from a file in
// importerDir.
//
// Absolute imports search importerDir, the root and each interface root, in
// that order, each followed by the path's leading segments. Relative imports
// produce exactly one directory, which must lie inside the root; leaving it
// reports MODULE_NOT_FOUND with reason=outside_root, the same error a
// missing file gives.
func (r *PathResolver) Resolve(importerDir string, mp ModulePath) (SearchPlan, error) {
	if err := mp.Validate(); err != nil {
		return SearchPlan{}, err
	}
	importerDir, err := util.CanonicalPath(importerDir)
	if err != nil {
		return SearchPlan{}, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize importer directory"), errors.CtxPath, importerDir)
	}

	if !mp.IsRelative() {
		bases := make([]string, 0, 2+len(r.interfaceRoots))
		bases = append(bases, importerDir, r.root)
		bases = append(bases, r.interfaceRoots...)
		return SearchPlan{Dirs: dedupe(join(bases, mp.Dirs())), Name: mp.Name()}, nil
	}

	dir := importerDir
	for i := 1; i < mp.Level; i++ {
		dir = filepath.Dir(dir)
	}
	dir = filepath.Join(append([]string{dir}, mp.Dirs()...)...)

	canonical, err := util.CanonicalPath(dir)
	if err != nil {
		return SearchPlan{}, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "canonicalize import directory"), errors.CtxPath, dir)
	}
	if !util.IsWithin(canonical, r.root) {
		err := errors.Newf(errors.CodeModuleNotFound, "module %q not found", mp.String())
		err = errors.AddContext(err, errors.CtxModule, mp.String())
		return SearchPlan{}, errors.AddContext(err, errors.CtxReason, errors.ReasonOutsideRoot)
	}
	return SearchPlan{Dirs: []string{canonical}, Name: mp.Name()}, nil
}

func join(bases, segs []string) []string {
	out := make([]string, len(bases))
	for i, base := range bases {
		out[i] = filepath.Join(append([]string{base}, segs...)...)
	}
	return out
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
