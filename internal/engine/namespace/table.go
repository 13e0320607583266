package namespace

import (
	"fmt"
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/iface"
	"interfacer/internal/engine/parser"
)

// Entry is one alias binding of a compiled file.
type Entry struct {
	Alias      string
	Target     string // canonical path of the interface source
	Descriptor *iface.Descriptor
	Location   parser.Location
}

// Table maps the aliases declared by one compiled file to interface
// descriptors. Each file gets its own table; descriptors are shared
// read-only between tables. A Table is not safe for concurrent use.
type Table struct {
	owner   string
	order   []string
	entries map[string]Entry
}

func New(owner string) *Table {
	return &Table{owner: owner, entries: make(map[string]Entry)}
}

func (t *Table) Owner() string { return t.owner }
func (t *Table) Len() int      { return len(t.order) }

// Bind registers alias. Binding an alias twice in the same table fails with
// DUPLICATE_ALIAS, even when both bindings name the same target.
func (t *Table) Bind(alias, target string, desc *iface.Descriptor, loc parser.Location) error {
	if alias == "" {
		return errors.AddContext(errors.New(errors.CodeValidationError, "empty alias"), errors.CtxPath, t.owner)
	}
	if prev, ok := t.entries[alias]; ok {
		err := errors.Newf(errors.CodeDuplicateAlias, "alias %q is already bound", alias)
		err = errors.AddContext(err, errors.CtxAlias, alias)
		return errors.AddContext(err, "previous", fmt.Sprintf("%d:%d", prev.Location.Line, prev.Location.Column))
	}
	t.entries[alias] = Entry{Alias: alias, Target: target, Descriptor: desc, Location: loc}
	t.order = append(t.order, alias)
	return nil
}

// Lookup returns the descriptor bound to alias or fails with UNRESOLVED_NAME.
func (t *Table) Lookup(alias string) (*iface.Descriptor, error) {
	e, ok := t.entries[alias]
	if !ok {
		err := errors.Newf(errors.CodeUnresolvedName, "name %q is not bound", alias)
		err = errors.AddContext(err, errors.CtxAlias, alias)
		return nil, errors.AddContext(err, errors.CtxPath, t.owner)
	}
	return e.Descriptor, nil
}

// Aliases lists bound aliases in bind order.
func (t *Table) Aliases() []string {
	return append([]string(nil), t.order...)
}

// Entries returns the bindings in bind order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, alias := range t.order {
		out = append(out, t.entries[alias])
	}
	return out
}
