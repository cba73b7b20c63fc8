package project

import (
	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
	"github.com/maraichr/cdm/internal/merge"
)

var locationSchema = &merge.Schema[Location]{
	Kind: entity.KindLocation,
	Head: func(e *Location) *entity.Header { return &e.Header },
	Fields: []merge.Field[Location]{
		merge.Ref("location_type", func(e *Location) **library.LocationType { return &e.Type },
			func(t *library.LocationType) string { return t.ID }),
		merge.String("identifier", func(e *Location) *string { return &e.Identifier }),
		merge.String("description", func(e *Location) *string { return &e.Description }),
		merge.String("physical_location", func(e *Location) *string { return &e.PhysicalLocation }),
	},
	Refs: func(e *Location) []entity.Ref {
		if e.Type == nil {
			return nil
		}
		return []entity.Ref{{Field: "location_type", Kind: entity.KindLocationType, ID: e.Type.ID}}
	},
}

var pathwaySchema = &merge.Schema[Pathway]{
	Kind: entity.KindPathway,
	Head: func(e *Pathway) *entity.Header { return &e.Header },
	Fields: []merge.Field[Pathway]{
		merge.Ref("pathway_type", func(e *Pathway) **library.PathwayType { return &e.Type },
			func(t *library.PathwayType) string { return t.ID }),
		merge.String("identifier", func(e *Pathway) *string { return &e.Identifier }),
		merge.String("description", func(e *Pathway) *string { return &e.Description }),
		merge.Float("length", func(e *Pathway) **float64 { return &e.Length }),
	},
	Refs: func(e *Pathway) []entity.Ref {
		if e.Type == nil {
			return nil
		}
		return []entity.Ref{{Field: "pathway_type", Kind: entity.KindPathwayType, ID: e.Type.ID}}
	},
}

var equipmentSchema = &merge.Schema[Equipment]{
	Kind: entity.KindEquipment,
	Head: func(e *Equipment) *entity.Header { return &e.Header },
	Fields: []merge.Field[Equipment]{
		merge.Ref("equipment_type", func(e *Equipment) **library.EquipmentType { return &e.Type },
			func(t *library.EquipmentType) string { return t.ID }),
		merge.String("identifier", func(e *Equipment) *string { return &e.Identifier }),
		merge.String("description", func(e *Equipment) *string { return &e.Description }),
		merge.Ref("location", func(e *Equipment) **Location { return &e.Location },
			func(l *Location) string { return l.ID }),
		merge.String("sub_location", func(e *Equipment) *string { return &e.SubLocation }),
	},
	Refs: func(e *Equipment) []entity.Ref {
		var refs []entity.Ref
		if e.Type != nil {
			refs = append(refs, entity.Ref{Field: "equipment_type", Kind: entity.KindEquipmentType, ID: e.Type.ID})
		}
		if e.Location != nil {
			refs = append(refs, entity.Ref{Field: "location", Kind: entity.KindLocation, ID: e.Location.ID})
		}
		return refs
	},
}

var wireCableSchema = &merge.Schema[WireCable]{
	Kind: entity.KindWireCable,
	Head: func(e *WireCable) *entity.Header { return &e.Header },
	Fields: []merge.Field[WireCable]{
		merge.Custom("type", func(e *WireCable) *library.Deployable { return &e.Type }, library.DeployableRef),
		merge.String("identifier", func(e *WireCable) *string { return &e.Identifier }),
		merge.String("description", func(e *WireCable) *string { return &e.Description }),
		merge.Float("length", func(e *WireCable) **float64 { return &e.Length }),
		merge.Ref("pathway", func(e *WireCable) **Pathway { return &e.Pathway },
			func(p *Pathway) string { return p.ID }),
	},
	Refs: func(e *WireCable) []entity.Ref {
		var refs []entity.Ref
		if e.Type != nil {
			refs = append(refs, entity.Ref{Field: "type", Kind: e.Type.EntityKind(), ID: e.Type.EntityID()})
		}
		if e.Pathway != nil {
			refs = append(refs, entity.Ref{Field: "pathway", Kind: entity.KindPathway, ID: e.Pathway.ID})
		}
		return refs
	},
}
