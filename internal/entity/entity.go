// Package entity holds the pieces shared by the Library and Project graphs:
// kinds, per-kind tables with the placeholder rule, and resolver errors.
package entity

// Entity is implemented by every Library and Project entity.
type Entity interface {
	EntityKind() Kind
	EntityID() string
	SourcePath() string
}

// Header carries the identity and provenance every entity embeds.
// Neither field takes part in diffs or in the partial-empty check.
type Header struct {
	ID         string
	SourceFile string
}

func (h *Header) EntityID() string   { return h.ID }
func (h *Header) SourcePath() string { return h.SourceFile }

// Ref is an outgoing reference from one entity field to another entity.
type Ref struct {
	Field string
	Kind  Kind
	ID    string
}
