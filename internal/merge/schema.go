// Package merge reconciles two definitions of the same entity.
//
// Each kind describes itself with a Schema: an ordered table of fields, each
// knowing how to render its value as a string and how to copy it from one
// entity to another. One generic routine diffs two entities through that table,
// hands the differing fields to a Policy, and copies the adopted fields into
// the existing entity in place, so every holder of a pointer to it sees the
// result.
package merge

import (
	"sort"

	"github.com/maraichr/cdm/internal/entity"
)

// Field describes one mergeable field of T. Format must return "" for the
// canonical empty value and must render references by ID only.
type Field[T any] struct {
	Name   string
	Format func(*T) string
	Adopt  func(dst, src *T)
}

// Schema is the declarative description of one kind.
type Schema[T any] struct {
	Kind   entity.Kind
	Head   func(*T) *entity.Header
	Fields []Field[T]
	// Refs lists outgoing references; nil for kinds without any.
	Refs func(*T) []entity.Ref
}

// Diff returns the fields whose formatted values differ, in table order.
func (s *Schema[T]) Diff(self, other *T) []FieldDiff {
	var diff []FieldDiff
	for _, f := range s.Fields {
		a, b := f.Format(self), f.Format(other)
		if a != b {
			diff = append(diff, FieldDiff{Field: f.Name, Self: a, Other: b})
		}
	}
	return diff
}

// IsPlaceholder reports whether e is partial-empty: every field apart from
// ID and provenance holds the canonical empty value.
func (s *Schema[T]) IsPlaceholder(e *T) bool {
	for _, f := range s.Fields {
		if f.Format(e) != "" {
			return false
		}
	}
	return true
}

// Fill copies every field and the provenance of other into the placeholder self.
func (s *Schema[T]) Fill(self, other *T) error {
	sh, oh := s.Head(self), s.Head(other)
	if sh.ID != oh.ID {
		return s.mismatch(sh, oh)
	}
	for _, f := range s.Fields {
		f.Adopt(self, other)
	}
	sh.SourceFile = oh.SourceFile
	return nil
}

// Merge reconciles other into self. Only differing fields reach the policy;
// an empty diff returns without calling it. Fields the policy adopts are
// copied into self in place.
func (s *Schema[T]) Merge(self, other *T, decide Policy) error {
	sh, oh := s.Head(self), s.Head(other)
	if sh.ID != oh.ID {
		return s.mismatch(sh, oh)
	}

	diff := s.Diff(self, other)
	if len(diff) == 0 {
		return nil
	}

	decisions := decide(Conflict{
		Kind:      s.Kind,
		ID:        sh.ID,
		SelfFile:  sh.SourceFile,
		OtherFile: oh.SourceFile,
		Diff:      diff,
	})
	for _, d := range diff {
		if _, ok := decisions[d.Field]; !ok {
			return &UndecidedFieldError{Kind: s.Kind, ID: sh.ID, Field: d.Field}
		}
	}

	adopt := make(map[string]bool, len(diff))
	for _, d := range diff {
		adopt[d.Field] = decisions[d.Field]
	}
	for _, f := range s.Fields {
		if adopt[f.Name] {
			f.Adopt(self, other)
		}
	}
	return nil
}

// Upsert applies a freshly translated record to its table: a new ID is
// inserted, a placeholder is filled, an existing definition is merged.
func (s *Schema[T]) Upsert(t *entity.Table[T], rec *T, decide Policy) error {
	id := s.Head(rec).ID
	existing, ok := t.Get(id)
	if !ok {
		t.Insert(id, rec)
		return nil
	}
	if existing == rec {
		return nil
	}
	if s.IsPlaceholder(existing) {
		return s.Fill(existing, rec)
	}
	return s.Merge(existing, rec, decide)
}

// Sweep fails with NoDefinitionFound for the first placeholder left in t.
func (s *Schema[T]) Sweep(t *entity.Table[T]) error {
	return t.Sweep(s.IsPlaceholder, func(e *T) string { return s.Head(e).SourceFile })
}

// Values returns the non-empty formatted fields of e in table order.
func (s *Schema[T]) Values(e *T) []FieldValue {
	var out []FieldValue
	for _, f := range s.Fields {
		if v := f.Format(e); v != "" {
			out = append(out, FieldValue{Field: f.Name, Value: v})
		}
	}
	return out
}

func (s *Schema[T]) mismatch(self, other *entity.Header) error {
	return &entity.DataMergeError{
		Kind:      s.Kind,
		SelfID:    self.ID,
		OtherID:   other.ID,
		SelfFile:  self.SourceFile,
		OtherFile: other.SourceFile,
	}
}

// FieldValue is one rendered field.
type FieldValue struct {
	Field string
	Value string
}

// UpsertAll translates every raw record of one file table in ID order and
// upserts each result into table.
func UpsertAll[R, T any](
	s *Schema[T],
	table *entity.Table[T],
	raw map[string]R,
	translate func(id string, rec R) (*T, error),
	decide Policy,
) error {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec, err := translate(id, raw[id])
		if err != nil {
			return err
		}
		if err := s.Upsert(table, rec, decide); err != nil {
			return err
		}
	}
	return nil
}
