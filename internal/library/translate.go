package library

import (
	"fmt"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/records"
)

// translator turns raw records into entities, resolving every reference
// through the library's tables so that forward references become placeholders.
type translator struct {
	lib  *Library
	file string
}

func (t *translator) invalid(kind entity.Kind, id, format string, args ...any) error {
	return &entity.DefinitionProcessingError{
		Kind:    kind,
		ID:      id,
		File:    t.file,
		Message: fmt.Sprintf(format, args...),
	}
}

func catalog(c records.Catalog) Catalog {
	return Catalog{
		Manufacturer:           c.Manufacturer,
		Model:                  c.Model,
		PartNumber:             c.PartNumber,
		ManufacturerPartNumber: c.ManufacturerPartNumber,
		SupplierPartNumber:     c.SupplierPartNumber,
		Description:            c.Description,
	}
}

func (t *translator) header(id string) entity.Header {
	return entity.Header{ID: id, SourceFile: t.file}
}

func (t *translator) wireType(id string, r records.WireType) (*WireType, error) {
	return &WireType{
		Header:                  t.header(id),
		Catalog:                 catalog(r.Catalog),
		Conductor:               r.Conductor,
		Stranded:                r.Stranded,
		NumStrands:              r.NumStrands,
		StrandCrossSection:      r.StrandCrossSection,
		CrossSection:            r.CrossSection,
		ConductorDiameter:       r.ConductorDiameter,
		OverallDiameter:         r.OverallDiameter,
		Insulated:               r.Insulated,
		InsulationMaterial:      r.InsulationMaterial,
		InsulationVoltageRating: r.InsulationVoltageRating,
		InsulationTempRating:    r.InsulationTempRating,
		InsulationThickness:     r.InsulationThickness,
		Color:                   r.Color,
		SecondaryColor:          r.SecondaryColor,
	}, nil
}

func (t *translator) cableType(id string, r records.CableType) (*CableType, error) {
	e := &CableType{
		Header:   t.header(id),
		Catalog:  catalog(r.Catalog),
		Height:   r.Height,
		Width:    r.Width,
		Diameter: r.Diameter,
	}

	if r.CrossSection != "" {
		cs, ok := parseCrossSection(r.CrossSection)
		if !ok {
			return nil, t.invalid(entity.KindCableType, id,
				"unknown cross_section %q (want circular, oval or siamese)", r.CrossSection)
		}
		e.CrossSection = cs
	}

	if len(r.Cores) > 0 {
		e.Cores = make(map[string]Conductor, len(r.Cores))
		for _, name := range sortedKeys(r.Cores) {
			core := r.Cores[name]
			if core.Type == "" {
				return nil, t.invalid(entity.KindCableType, id, "core %q has no type", name)
			}
			if core.IsWire {
				e.Cores[name] = t.lib.WireTypes.Ref(core.Type, t.file)
			} else {
				e.Cores[name] = t.lib.CableTypes.Ref(core.Type, t.file)
			}
		}
	}

	for i, l := range r.Layers {
		lt, ok := parseLayerType(l.LayerType)
		if !ok {
			return nil, t.invalid(entity.KindCableType, id,
				"insulation layer %d: unknown layer_type %q (want insulation, semiconductor or shield)", i, l.LayerType)
		}
		e.Layers = append(e.Layers, CableLayer{
			Type:      lt,
			Material:  l.Material,
			Thickness: l.Thickness,
			Rating:    l.Rating,
			Color:     l.Color,
		})
	}
	return e, nil
}

func (t *translator) termCableType(id string, r records.TermCableType) (*TermCableType, error) {
	e := &TermCableType{
		Header:        t.header(id),
		Catalog:       catalog(r.Catalog),
		NominalLength: r.NominalLength,
		ActualLength:  r.ActualLength,
	}

	switch {
	case r.Wire != "" && r.Cable != "":
		return nil, t.invalid(entity.KindTermCableType, id, "both wire %q and cable %q are set", r.Wire, r.Cable)
	case r.Wire != "":
		e.Conductor = t.lib.WireTypes.Ref(r.Wire, t.file)
	case r.Cable != "":
		e.Conductor = t.lib.CableTypes.Ref(r.Cable, t.file)
	default:
		return nil, t.invalid(entity.KindTermCableType, id, "one of wire or cable must be set")
	}

	var err error
	if e.End1, err = t.terminations(id, "end1", r.End1); err != nil {
		return nil, err
	}
	if e.End2, err = t.terminations(id, "end2", r.End2); err != nil {
		return nil, err
	}
	return e, nil
}

func (t *translator) terminations(id, end string, raw []records.Termination) ([]Termination, error) {
	var out []Termination
	for i, r := range raw {
		if r.Connector == "" {
			return nil, t.invalid(entity.KindTermCableType, id, "%s[%d] has no connector", end, i)
		}
		out = append(out, Termination{
			Core:      r.Core,
			Connector: t.lib.ConnectorTypes.Ref(r.Connector, t.file),
			Pinout:    r.Pinout,
		})
	}
	return out, nil
}

func (t *translator) connectorType(id string, r records.ConnectorType) (*ConnectorType, error) {
	e := &ConnectorType{
		Header:      t.header(id),
		Catalog:     catalog(r.Catalog),
		MountType:   r.MountType,
		PanelCutout: r.PanelCutout,
		Gender:      r.Gender,
		Height:      r.Height,
		Width:       r.Width,
		Depth:       r.Depth,
		Diameter:    r.Diameter,
	}
	for _, p := range r.Pins {
		e.Pins = append(e.Pins, ConnectorPin{ID: p.ID, Label: p.Label, SignalType: p.SignalType, Color: p.Color})
	}
	return e, nil
}

func (t *translator) equipmentType(id string, r records.EquipmentType) (*EquipmentType, error) {
	e := &EquipmentType{
		Header:   t.header(id),
		Catalog:  catalog(r.Catalog),
		Mount:    r.Mount,
		Category: r.Category,
	}
	if len(r.Faces) == 0 {
		return e, nil
	}
	e.Faces = make(map[string]EquipFace, len(r.Faces))
	for _, name := range sortedKeys(r.Faces) {
		var face EquipFace
		for i, c := range r.Faces[name].Connectors {
			if c.Connector == "" {
				return nil, t.invalid(entity.KindEquipmentType, id, "face %q connector %d has no connector type", name, i)
			}
			face.Connectors = append(face.Connectors, EquipConnector{
				Connector: t.lib.ConnectorTypes.Ref(c.Connector, t.file),
				Direction: c.Direction,
				X:         c.X,
				Y:         c.Y,
			})
		}
		e.Faces[name] = face
	}
	return e, nil
}

func (t *translator) locationType(id string, r records.LocationType) (*LocationType, error) {
	return &LocationType{
		Header:       t.header(id),
		Catalog:      catalog(r.Catalog),
		Material:     r.Material,
		Height:       r.Height,
		Width:        r.Width,
		Depth:        r.Depth,
		UsableWidth:  r.UsableWidth,
		UsableHeight: r.UsableHeight,
		UsableDepth:  r.UsableDepth,
	}, nil
}

func (t *translator) pathwayType(id string, r records.PathwayType) (*PathwayType, error) {
	return &PathwayType{
		Header:           t.header(id),
		Catalog:          catalog(r.Catalog),
		Material:         r.Material,
		Size:             r.Size,
		TrayType:         r.TrayType,
		Height:           r.Height,
		Width:            r.Width,
		CrossSectionArea: r.CrossSectionArea,
	}, nil
}

func parseCrossSection(s string) (CrossSection, bool) {
	switch cs := CrossSection(s); cs {
	case CrossSectionCircular, CrossSectionOval, CrossSectionSiamese:
		return cs, true
	}
	return "", false
}

func parseLayerType(s string) (LayerType, bool) {
	switch lt := LayerType(s); lt {
	case LayerInsulation, LayerSemiconductor, LayerShield:
		return lt, true
	}
	return "", false
}
