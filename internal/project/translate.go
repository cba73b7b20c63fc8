package project

import (
	"fmt"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
	"github.com/maraichr/cdm/internal/records"
)

type translator struct {
	lib  *library.Library
	prj  *Project
	file string
}

func (t *translator) header(id string) entity.Header {
	return entity.Header{ID: id, SourceFile: t.file}
}

func (t *translator) invalid(kind entity.Kind, id, format string, args ...any) error {
	return &entity.DefinitionProcessingError{
		Kind:    kind,
		ID:      id,
		File:    t.file,
		Message: fmt.Sprintf(format, args...),
	}
}

func (t *translator) missing(kind entity.Kind, ref string, container entity.Kind, id string) error {
	return &entity.NoContainedDefinitionFoundError{
		ContainedKind: kind,
		ContainedID:   ref,
		ContainerKind: container,
		ContainerID:   id,
		File:          t.file,
	}
}

// lookup resolves a library reference without creating placeholders.
func lookup[T any](t *translator, table *entity.Table[T], ref string, container entity.Kind, id string) (*T, error) {
	if ref == "" {
		return nil, t.invalid(container, id, "no %s given", table.Kind())
	}
	e, ok := table.Get(ref)
	if !ok {
		return nil, t.missing(table.Kind(), ref, container, id)
	}
	return e, nil
}

func (t *translator) location(id string, r records.Location) (*Location, error) {
	typ, err := lookup(t, t.lib.LocationTypes, r.LocationType, entity.KindLocation, id)
	if err != nil {
		return nil, err
	}
	return &Location{
		Header:           t.header(id),
		Type:             typ,
		Identifier:       r.Identifier,
		Description:      r.Description,
		PhysicalLocation: r.PhysicalLocation,
	}, nil
}

func (t *translator) pathway(id string, r records.Pathway) (*Pathway, error) {
	typ, err := lookup(t, t.lib.PathwayTypes, r.PathwayType, entity.KindPathway, id)
	if err != nil {
		return nil, err
	}
	return &Pathway{
		Header:      t.header(id),
		Type:        typ,
		Identifier:  r.Identifier,
		Description: r.Description,
		Length:      r.Length,
	}, nil
}

func (t *translator) equipment(id string, r records.Equipment) (*Equipment, error) {
	typ, err := lookup(t, t.lib.EquipmentTypes, r.EquipmentType, entity.KindEquipment, id)
	if err != nil {
		return nil, err
	}
	e := &Equipment{
		Header:      t.header(id),
		Type:        typ,
		Identifier:  r.Identifier,
		Description: r.Description,
		SubLocation: r.SubLocation,
	}
	if r.Location != "" {
		e.Location = t.prj.Locations.Ref(r.Location, t.file)
	}
	return e, nil
}

func (t *translator) wireCable(id string, r records.WireCable) (*WireCable, error) {
	set := 0
	for _, s := range []string{r.Wire, r.Cable, r.TermCable} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, t.invalid(entity.KindWireCable, id,
			"exactly one of wire, cable or term_cable must be set, found %d", set)
	}

	typ, err := t.deployable(r, id)
	if err != nil {
		return nil, err
	}

	e := &WireCable{
		Header:      t.header(id),
		Type:        typ,
		Identifier:  r.Identifier,
		Description: r.Description,
		Length:      r.Length,
	}
	if r.Pathway != "" {
		e.Pathway = t.prj.Pathways.Ref(r.Pathway, t.file)
	}
	return e, nil
}

// deployable resolves the single type selector of a wire cable record.
func (t *translator) deployable(r records.WireCable, id string) (library.Deployable, error) {
	switch {
	case r.Wire != "":
		w, err := lookup(t, t.lib.WireTypes, r.Wire, entity.KindWireCable, id)
		if err != nil {
			return nil, err
		}
		return w, nil
	case r.Cable != "":
		c, err := lookup(t, t.lib.CableTypes, r.Cable, entity.KindWireCable, id)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		tc, err := lookup(t, t.lib.TermCableTypes, r.TermCable, entity.KindWireCable, id)
		if err != nil {
			return nil, err
		}
		return tc, nil
	}
}
