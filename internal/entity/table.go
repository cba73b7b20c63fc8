package entity

import "sort"

// Table maps IDs of one kind to the single shared object for that ID.
// A Table is not safe for concurrent mutation; builds are single-writer.
type Table[T any] struct {
	kind  Kind
	items map[string]*T
	empty func(h Header) *T
}

// NewTable creates a table for kind. empty must return the kind's canonical
// empty value carrying only the given header.
func NewTable[T any](kind Kind, empty func(h Header) *T) *Table[T] {
	return &Table[T]{
		kind:  kind,
		items: make(map[string]*T),
		empty: empty,
	}
}

func (t *Table[T]) Kind() Kind { return t.kind }

func (t *Table[T]) Len() int { return len(t.items) }

// Get returns the entity stored under id.
func (t *Table[T]) Get(id string) (*T, bool) {
	e, ok := t.items[id]
	return e, ok
}

// Ref resolves a reference to id made from file. An existing entity is shared,
// never copied; a missing one is created as an empty placeholder and inserted
// so that every later reference and the eventual definition land on the same
// object. The placeholder records file until a definition replaces it.
func (t *Table[T]) Ref(id, file string) *T {
	if e, ok := t.items[id]; ok {
		return e
	}
	e := t.empty(Header{ID: id, SourceFile: file})
	t.items[id] = e
	return e
}

// Insert stores e under id. Callers check Get first; an existing entry is
// never replaced.
func (t *Table[T]) Insert(id string, e *T) bool {
	if _, ok := t.items[id]; ok {
		return false
	}
	t.items[id] = e
	return true
}

// IDs returns all IDs in lexical order.
func (t *Table[T]) IDs() []string {
	ids := make([]string, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each visits entities in ID order.
func (t *Table[T]) Each(fn func(id string, e *T)) {
	for _, id := range t.IDs() {
		fn(id, t.items[id])
	}
}

// Sweep returns a NoDefinitionFoundError for the first entity (in ID order)
// that isEmpty reports as an unfilled placeholder.
func (t *Table[T]) Sweep(isEmpty func(*T) bool, file func(*T) string) error {
	for _, id := range t.IDs() {
		e := t.items[id]
		if isEmpty(e) {
			return &NoDefinitionFoundError{Kind: t.kind, ID: id, File: file(e)}
		}
	}
	return nil
}
