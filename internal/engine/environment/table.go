// Package environment implements the script-authored environment table: a
// process-scoped mapping from key to either a single string or an ordered
// list of strings, with a shell-style ${NAME} expansion over arbitrary
// text.
package environment

import (
	"regexp"
	"strings"
	"sync"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Table is the environment table consumed by recipes. The zero value is not
// usable; construct with New.
type Table struct {
	mu      sync.RWMutex
	entries map[string]domain.EnvSlot
}

// New creates an empty Table.
func New() *Table {
	return &Table{entries: make(map[string]domain.EnvSlot)}
}

// NewFrom creates a Table pre-populated from a snapshot, e.g. one restored
// from the cache store.
func NewFrom(entries map[string]domain.EnvSlot) *Table {
	t := New()
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// LoadSnapshot discards every entry currently in the table and replaces
// them with entries, matching the cache store's load_env contract: any
// in-memory table is discarded first.
func (t *Table) LoadSnapshot(entries map[string]domain.EnvSlot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]domain.EnvSlot, len(entries))
	for k, v := range entries {
		t.entries[k] = v
	}
}

// Reset discards every entry, leaving the table empty.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]domain.EnvSlot)
}

// Snapshot returns a shallow copy of the table's entries, suitable for
// persistence.
func (t *Table) Snapshot() map[string]domain.EnvSlot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]domain.EnvSlot, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Put sets key to a scalar string value, overwriting any existing value of
// either kind.
func (t *Table) Put(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = domain.StringSlot(value)
}

// Get returns the scalar string value for key. It fails with ErrEnv if key
// is unset or holds a list.
func (t *Table) Get(key string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	slot, ok := t.entries[key]
	if !ok {
		return "", zerr.Wrap(domain.ErrEnv, "key '"+key+"' is not set")
	}
	if slot.Kind != domain.EnvKindString {
		return "", zerr.Wrap(domain.ErrEnv, "key '"+key+"' is a list, not a string")
	}
	return slot.Str, nil
}

// Delete removes key unconditionally, regardless of its kind.
func (t *Table) Delete(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// ListAppend appends value to the list stored under key, creating an empty
// list first if key is unset. Fails with ErrEnv if key holds a string.
func (t *Table) ListAppend(key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.entries[key]
	if !ok {
		t.entries[key] = domain.ListSlot(value)
		return nil
	}
	if slot.Kind != domain.EnvKindList {
		return zerr.Wrap(domain.ErrEnv, "key '"+key+"' is a string, not a list")
	}
	slot.List = append(slot.List, value)
	t.entries[key] = slot
	return nil
}

// ListPrepend prepends value to the list stored under key, creating an
// empty list first if key is unset. Fails with ErrEnv if key holds a
// string.
func (t *Table) ListPrepend(key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.entries[key]
	if !ok {
		t.entries[key] = domain.ListSlot(value)
		return nil
	}
	if slot.Kind != domain.EnvKindList {
		return zerr.Wrap(domain.ErrEnv, "key '"+key+"' is a string, not a list")
	}
	slot.List = append([]string{value}, slot.List...)
	t.entries[key] = slot
	return nil
}

// ListGet returns the list stored under key. Fails with ErrEnv if key is
// unset or holds a string.
func (t *Table) ListGet(key string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	slot, ok := t.entries[key]
	if !ok {
		return nil, zerr.Wrap(domain.ErrEnv, "key '"+key+"' is not set")
	}
	if slot.Kind != domain.EnvKindList {
		return nil, zerr.Wrap(domain.ErrEnv, "key '"+key+"' is a string, not a list")
	}
	return append([]string(nil), slot.List...), nil
}

// ListDelete removes every element of the list under key matching pattern,
// treated as a regular expression; elements equal to pattern also match
// when pattern is not a valid regular expression, so plain string deletes
// keep working. Fails with ErrEnv if key holds a string.
func (t *Table) ListDelete(key, pattern string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.entries[key]
	if !ok {
		return nil
	}
	if slot.Kind != domain.EnvKindList {
		return zerr.Wrap(domain.ErrEnv, "key '"+key+"' is a string, not a list")
	}

	re, reErr := regexp.Compile(pattern)
	kept := make([]string, 0, len(slot.List))
	for _, item := range slot.List {
		matched := item == pattern
		if reErr == nil {
			matched = matched || re.MatchString(item)
		}
		if !matched {
			kept = append(kept, item)
		}
	}
	slot.List = kept
	t.entries[key] = slot
	return nil
}

var expansionPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Reduce expands every ${NAME} occurrence in text where NAME names a table
// entry, replacing it with the entry's value — list values are joined by a
// single space. Expansion runs once, left to right, and is not recursive:
// a value that itself contains "${...}" is inserted verbatim.
func (t *Table) Reduce(text string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return expansionPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		slot, ok := t.entries[name]
		if !ok {
			return match
		}
		if slot.Kind == domain.EnvKindList {
			return strings.Join(slot.List, " ")
		}
		return slot.Str
	})
}
