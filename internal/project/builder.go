package project

import (
	"fmt"
	"log/slog"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/pkg/models"
)

// Project is the resolved instance graph.
type Project struct {
	Locations  *entity.Table[Location]
	Pathways   *entity.Table[Pathway]
	Equipment  *entity.Table[Equipment]
	WireCables *entity.Table[WireCable]
}

func New() *Project {
	return &Project{
		Locations: entity.NewTable(entity.KindLocation, func(h entity.Header) *Location {
			return &Location{Header: h}
		}),
		Pathways: entity.NewTable(entity.KindPathway, func(h entity.Header) *Pathway {
			return &Pathway{Header: h}
		}),
		Equipment: entity.NewTable(entity.KindEquipment, func(h entity.Header) *Equipment {
			return &Equipment{Header: h}
		}),
		WireCables: entity.NewTable(entity.KindWireCable, func(h entity.Header) *WireCable {
			return &WireCable{Header: h}
		}),
	}
}

// Verify fails with NoDefinitionFound for the first instance still left as a
// placeholder, checking kinds in build order.
func (p *Project) Verify() error {
	if err := locationSchema.Sweep(p.Locations); err != nil {
		return err
	}
	if err := pathwaySchema.Sweep(p.Pathways); err != nil {
		return err
	}
	if err := equipmentSchema.Sweep(p.Equipment); err != nil {
		return err
	}
	return wireCableSchema.Sweep(p.WireCables)
}

func (p *Project) Counts() map[entity.Kind]int {
	return map[entity.Kind]int{
		entity.KindLocation:  p.Locations.Len(),
		entity.KindPathway:   p.Pathways.Len(),
		entity.KindEquipment: p.Equipment.Len(),
		entity.KindWireCable: p.WireCables.Len(),
	}
}

// Views renders every instance of kind in ID order.
func (p *Project) Views(kind entity.Kind) ([]models.EntityView, bool) {
	switch kind {
	case entity.KindLocation:
		return viewAll(locationSchema, p.Locations), true
	case entity.KindPathway:
		return viewAll(pathwaySchema, p.Pathways), true
	case entity.KindEquipment:
		return viewAll(equipmentSchema, p.Equipment), true
	case entity.KindWireCable:
		return viewAll(wireCableSchema, p.WireCables), true
	}
	return nil, false
}

func (p *Project) View(kind entity.Kind, id string) (models.EntityView, bool) {
	var (
		v  models.EntityView
		ok bool
	)
	switch kind {
	case entity.KindLocation:
		var e *Location
		if e, ok = p.Locations.Get(id); ok {
			v = locationSchema.View(e)
		}
	case entity.KindPathway:
		var e *Pathway
		if e, ok = p.Pathways.Get(id); ok {
			v = pathwaySchema.View(e)
		}
	case entity.KindEquipment:
		var e *Equipment
		if e, ok = p.Equipment.Get(id); ok {
			v = equipmentSchema.View(e)
		}
	case entity.KindWireCable:
		var e *WireCable
		if e, ok = p.WireCables.Get(id); ok {
			v = wireCableSchema.View(e)
		}
	}
	return v, ok
}

func viewAll[T any](s *merge.Schema[T], t *entity.Table[T]) []models.EntityView {
	out := make([]models.EntityView, 0, t.Len())
	t.Each(func(_ string, e *T) { out = append(out, s.View(e)) })
	return out
}

// Builder builds a Project against an already verified Library.
type Builder struct {
	policy merge.Policy
	logger *slog.Logger
}

func NewBuilder(policy merge.Policy, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = merge.KeepFirst(logger)
	}
	return &Builder{policy: policy, logger: logger}
}

// Build processes files in order. Library references are looked up strictly;
// instance-to-instance references may point forward and are swept at the end.
func (b *Builder) Build(files []records.FileBag, lib *library.Library) (*Project, error) {
	if lib == nil || !lib.Verified() {
		return nil, fmt.Errorf("build project: %w", library.ErrNotVerified)
	}

	prj := New()
	for i := range files {
		f := &files[i]
		t := &translator{lib: lib, prj: prj, file: f.Path}
		if err := merge.UpsertAll(locationSchema, prj.Locations, f.Locations, t.location, b.policy); err != nil {
			return nil, err
		}
		if err := merge.UpsertAll(pathwaySchema, prj.Pathways, f.Pathways, t.pathway, b.policy); err != nil {
			return nil, err
		}
		if err := merge.UpsertAll(equipmentSchema, prj.Equipment, f.Equipment, t.equipment, b.policy); err != nil {
			return nil, err
		}
		if err := merge.UpsertAll(wireCableSchema, prj.WireCables, f.WireCables, t.wireCable, b.policy); err != nil {
			return nil, err
		}
	}

	if err := prj.Verify(); err != nil {
		return nil, err
	}

	counts := prj.Counts()
	b.logger.Info("project built",
		slog.Int("files", len(files)),
		slog.Int("locations", counts[entity.KindLocation]),
		slog.Int("pathways", counts[entity.KindPathway]),
		slog.Int("equipment", counts[entity.KindEquipment]),
		slog.Int("wire_cables", counts[entity.KindWireCable]))
	return prj, nil
}
