package iface

import (
	"fmt"
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/parser"
	"sync"
)

// UnitState tracks how far the compilation of one entry file has progressed.
type UnitState int

const (
	UnitNotStarted UnitState = iota
	UnitExtractingSignatures
	UnitResolved
)

func (s UnitState) String() string {
	switch s {
	case UnitNotStarted:
		return "not_started"
	case UnitExtractingSignatures:
		return "extracting_signatures"
	case UnitResolved:
		return "resolved"
	default:
		return fmt.Sprintf("UnitState(%d)", int(s))
	}
}

// Unit is the compilation state of one entry file. While its imports are
// being resolved, an import that lands on the unit's own file is answered
// from the already parsed File instead of the disk.
type Unit struct {
	path string
	file *parser.File

	mu    sync.Mutex
	state UnitState
	desc  *Descriptor
}

// NewUnit expects path to be canonical.
func NewUnit(path string, file *parser.File) *Unit {
	return &Unit{path: path, file: file}
}

func (u *Unit) Path() string       { return u.path }
func (u *Unit) File() *parser.File { return u.file }

func (u *Unit) State() UnitState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Begin moves the unit into UnitExtractingSignatures.
func (u *Unit) Begin() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != UnitNotStarted {
		return errors.AddContext(
			errors.Newf(errors.CodeInternal, "unit already %s", u.state),
			errors.CtxPath, u.path,
		)
	}
	u.state = UnitExtractingSignatures
	return nil
}

// Finish records the unit's own descriptor and moves it into UnitResolved.
func (u *Unit) Finish(cache *Cache) (*Descriptor, error) {
	desc, err := u.signatures(cache)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.state = UnitResolved
	u.mu.Unlock()
	return desc, nil
}

// Descriptor returns the unit's own descriptor once it has been built.
func (u *Unit) Descriptor() *Descriptor {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.desc
}

// signatures builds the unit's descriptor from the parsed file, at most once.
// It goes through the cache so that other importers of the same file share
// the instance.
func (u *Unit) signatures(cache *Cache) (*Descriptor, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == UnitNotStarted {
		return nil, errors.AddContext(
			errors.New(errors.CodeInternal, "unit signatures requested before extraction started"),
			errors.CtxPath, u.path,
		)
	}
	if u.desc != nil {
		return u.desc, nil
	}

	desc, err := cache.Get(u.path, func() (*Descriptor, error) {
		return FromFile(u.path, u.file), nil
	})
	if err != nil {
		return nil, err
	}
	u.desc = desc
	return desc, nil
}
