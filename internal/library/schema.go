package library

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/merge"
)

func catalogFields[T any](get func(*T) *Catalog) []merge.Field[T] {
	return []merge.Field[T]{
		merge.String("manufacturer", func(e *T) *string { return &get(e).Manufacturer }),
		merge.String("model", func(e *T) *string { return &get(e).Model }),
		merge.String("part_number", func(e *T) *string { return &get(e).PartNumber }),
		merge.String("manufacturer_part_number", func(e *T) *string { return &get(e).ManufacturerPartNumber }),
		merge.String("supplier_part_number", func(e *T) *string { return &get(e).SupplierPartNumber }),
		merge.String("description", func(e *T) *string { return &get(e).Description }),
	}
}

func connectorID(c *ConnectorType) string { return c.ID }

var wireTypeSchema = &merge.Schema[WireType]{
	Kind: entity.KindWireType,
	Head: func(e *WireType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *WireType) *Catalog { return &e.Catalog }),
		merge.String("conductor", func(e *WireType) *string { return &e.Conductor }),
		merge.Bool("stranded", func(e *WireType) **bool { return &e.Stranded }),
		merge.Uint("num_strands", func(e *WireType) **uint32 { return &e.NumStrands }),
		merge.Float("strand_cross_sect_area", func(e *WireType) **float64 { return &e.StrandCrossSection }),
		merge.Float("conductor_cross_sect_area", func(e *WireType) **float64 { return &e.CrossSection }),
		merge.Float("conductor_diameter", func(e *WireType) **float64 { return &e.ConductorDiameter }),
		merge.Float("overall_diameter", func(e *WireType) **float64 { return &e.OverallDiameter }),
		merge.Bool("insulated", func(e *WireType) **bool { return &e.Insulated }),
		merge.String("insulation_material", func(e *WireType) *string { return &e.InsulationMaterial }),
		merge.String("insulation_volt_rating", func(e *WireType) *string { return &e.InsulationVoltageRating }),
		merge.String("insulation_temp_rating", func(e *WireType) *string { return &e.InsulationTempRating }),
		merge.Float("insulation_thickness", func(e *WireType) **float64 { return &e.InsulationThickness }),
		merge.String("color", func(e *WireType) *string { return &e.Color }),
		merge.String("secondary_color", func(e *WireType) *string { return &e.SecondaryColor }),
	),
}

var cableTypeSchema = &merge.Schema[CableType]{
	Kind: entity.KindCableType,
	Head: func(e *CableType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *CableType) *Catalog { return &e.Catalog }),
		merge.Custom("cross_section", func(e *CableType) *CrossSection { return &e.CrossSection },
			func(v CrossSection) string { return string(v) }),
		merge.Float("height", func(e *CableType) **float64 { return &e.Height }),
		merge.Float("width", func(e *CableType) **float64 { return &e.Width }),
		merge.Float("diameter", func(e *CableType) **float64 { return &e.Diameter }),
		merge.Custom("cable_cores", func(e *CableType) *map[string]Conductor { return &e.Cores }, formatCores),
		merge.Custom("insulation_layers", func(e *CableType) *[]CableLayer { return &e.Layers }, formatLayers),
	),
	Refs: func(e *CableType) []entity.Ref {
		var refs []entity.Ref
		for _, name := range sortedKeys(e.Cores) {
			c := e.Cores[name]
			refs = append(refs, entity.Ref{Field: "cable_cores." + name, Kind: c.EntityKind(), ID: c.EntityID()})
		}
		return refs
	},
}

var termCableTypeSchema = &merge.Schema[TermCableType]{
	Kind: entity.KindTermCableType,
	Head: func(e *TermCableType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *TermCableType) *Catalog { return &e.Catalog }),
		merge.Custom("conductor", func(e *TermCableType) *Conductor { return &e.Conductor }, ConductorRef),
		merge.Float("nominal_length", func(e *TermCableType) **float64 { return &e.NominalLength }),
		merge.Float("actual_length", func(e *TermCableType) **float64 { return &e.ActualLength }),
		merge.Custom("end1", func(e *TermCableType) *[]Termination { return &e.End1 }, formatTerminations),
		merge.Custom("end2", func(e *TermCableType) *[]Termination { return &e.End2 }, formatTerminations),
	),
	Refs: func(e *TermCableType) []entity.Ref {
		var refs []entity.Ref
		if e.Conductor != nil {
			refs = append(refs, entity.Ref{Field: "conductor", Kind: e.Conductor.EntityKind(), ID: e.Conductor.EntityID()})
		}
		for i, t := range e.End1 {
			refs = append(refs, entity.Ref{Field: fmt.Sprintf("end1[%d]", i), Kind: entity.KindConnectorType, ID: t.Connector.ID})
		}
		for i, t := range e.End2 {
			refs = append(refs, entity.Ref{Field: fmt.Sprintf("end2[%d]", i), Kind: entity.KindConnectorType, ID: t.Connector.ID})
		}
		return refs
	},
}

var connectorTypeSchema = &merge.Schema[ConnectorType]{
	Kind: entity.KindConnectorType,
	Head: func(e *ConnectorType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *ConnectorType) *Catalog { return &e.Catalog }),
		merge.String("mount_type", func(e *ConnectorType) *string { return &e.MountType }),
		merge.String("panel_cutout", func(e *ConnectorType) *string { return &e.PanelCutout }),
		merge.String("gender", func(e *ConnectorType) *string { return &e.Gender }),
		merge.Float("height", func(e *ConnectorType) **float64 { return &e.Height }),
		merge.Float("width", func(e *ConnectorType) **float64 { return &e.Width }),
		merge.Float("depth", func(e *ConnectorType) **float64 { return &e.Depth }),
		merge.Float("diameter", func(e *ConnectorType) **float64 { return &e.Diameter }),
		merge.Custom("pins", func(e *ConnectorType) *[]ConnectorPin { return &e.Pins }, formatPins),
	),
}

var equipmentTypeSchema = &merge.Schema[EquipmentType]{
	Kind: entity.KindEquipmentType,
	Head: func(e *EquipmentType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *EquipmentType) *Catalog { return &e.Catalog }),
		merge.String("mount", func(e *EquipmentType) *string { return &e.Mount }),
		merge.String("equip_type", func(e *EquipmentType) *string { return &e.Category }),
		merge.Custom("faces", func(e *EquipmentType) *map[string]EquipFace { return &e.Faces }, formatFaces),
	),
	Refs: func(e *EquipmentType) []entity.Ref {
		var refs []entity.Ref
		for _, name := range sortedKeys(e.Faces) {
			for i, c := range e.Faces[name].Connectors {
				refs = append(refs, entity.Ref{
					Field: fmt.Sprintf("faces.%s[%d]", name, i),
					Kind:  entity.KindConnectorType,
					ID:    c.Connector.ID,
				})
			}
		}
		return refs
	},
}

var locationTypeSchema = &merge.Schema[LocationType]{
	Kind: entity.KindLocationType,
	Head: func(e *LocationType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *LocationType) *Catalog { return &e.Catalog }),
		merge.String("material", func(e *LocationType) *string { return &e.Material }),
		merge.Float("height", func(e *LocationType) **float64 { return &e.Height }),
		merge.Float("width", func(e *LocationType) **float64 { return &e.Width }),
		merge.Float("depth", func(e *LocationType) **float64 { return &e.Depth }),
		merge.Float("usable_width", func(e *LocationType) **float64 { return &e.UsableWidth }),
		merge.Float("usable_height", func(e *LocationType) **float64 { return &e.UsableHeight }),
		merge.Float("usable_depth", func(e *LocationType) **float64 { return &e.UsableDepth }),
	),
}

var pathwayTypeSchema = &merge.Schema[PathwayType]{
	Kind: entity.KindPathwayType,
	Head: func(e *PathwayType) *entity.Header { return &e.Header },
	Fields: append(catalogFields(func(e *PathwayType) *Catalog { return &e.Catalog }),
		merge.String("material", func(e *PathwayType) *string { return &e.Material }),
		merge.String("size", func(e *PathwayType) *string { return &e.Size }),
		merge.String("tray_type", func(e *PathwayType) *string { return &e.TrayType }),
		merge.Float("height", func(e *PathwayType) **float64 { return &e.Height }),
		merge.Float("width", func(e *PathwayType) **float64 { return &e.Width }),
		merge.Float("cross_sect_area", func(e *PathwayType) **float64 { return &e.CrossSectionArea }),
	),
}

func formatCores(cores map[string]Conductor) string {
	parts := make([]string, 0, len(cores))
	for _, name := range sortedKeys(cores) {
		parts = append(parts, name+"="+ConductorRef(cores[name]))
	}
	return strings.Join(parts, ", ")
}

func formatLayers(layers []CableLayer) string {
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = fmt.Sprintf("%s(material=%s thickness=%s rating=%s color=%s)",
			l.Type, l.Material, merge.FormatOpt(l.Thickness), l.Rating, l.Color)
	}
	return strings.Join(parts, "; ")
}

func formatTerminations(ts []Termination) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%s(core=%s pinout={%s})", connectorID(t.Connector), t.Core, merge.FormatStringMap(t.Pinout))
	}
	return strings.Join(parts, "; ")
}

func formatPins(pins []ConnectorPin) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = fmt.Sprintf("%s(label=%s signal=%s color=%s)", p.ID, p.Label, p.SignalType, p.Color)
	}
	return strings.Join(parts, "; ")
}

func formatFaces(faces map[string]EquipFace) string {
	parts := make([]string, 0, len(faces))
	for _, name := range sortedKeys(faces) {
		conns := make([]string, len(faces[name].Connectors))
		for i, c := range faces[name].Connectors {
			conns[i] = fmt.Sprintf("%s(direction=%s x=%s y=%s)",
				connectorID(c.Connector), c.Direction, merge.FormatOpt(c.X), merge.FormatOpt(c.Y))
		}
		parts = append(parts, name+"=["+strings.Join(conns, "; ")+"]")
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
