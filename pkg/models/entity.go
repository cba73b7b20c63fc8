package models

// EntityView is the read-only rendering of one Library or Project entity
// handed to downstream consumers (API, graph export, renderers).
type EntityView struct {
	Kind       string      `json:"kind"`
	ID         string      `json:"id"`
	SourceFile string      `json:"source_file"`
	Fields     []Field     `json:"fields,omitempty"`
	References []Reference `json:"references,omitempty"`
}

// Field is one populated attribute rendered as text.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Reference is an outgoing link from a field of one entity to another entity.
type Reference struct {
	Field string `json:"field"`
	Kind  string `json:"kind"`
	ID    string `json:"id"`
}

// Value returns the rendered value of the named field, or "".
func (v EntityView) Value(name string) string {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}
