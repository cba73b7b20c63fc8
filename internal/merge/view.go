package merge

import (
	"github.com/maraichr/cdm/pkg/models"
)

// View renders e for read-only consumers.
func (s *Schema[T]) View(e *T) models.EntityView {
	h := s.Head(e)
	v := models.EntityView{
		Kind:       string(s.Kind),
		ID:         h.ID,
		SourceFile: h.SourceFile,
	}
	for _, fv := range s.Values(e) {
		v.Fields = append(v.Fields, models.Field{Name: fv.Field, Value: fv.Value})
	}
	if s.Refs != nil {
		for _, r := range s.Refs(e) {
			v.References = append(v.References, models.Reference{Field: r.Field, Kind: string(r.Kind), ID: r.ID})
		}
	}
	return v
}
