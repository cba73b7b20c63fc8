package library

import (
	"errors"
	"log/slog"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/pkg/models"
)

// ErrNotVerified is returned when a library that has not passed Verify is
// handed to a consumer that needs a closed catalog.
var ErrNotVerified = errors.New("library has not been verified")

// Library is the resolved type catalog: one table per kind.
type Library struct {
	WireTypes      *entity.Table[WireType]
	CableTypes     *entity.Table[CableType]
	TermCableTypes *entity.Table[TermCableType]
	ConnectorTypes *entity.Table[ConnectorType]
	EquipmentTypes *entity.Table[EquipmentType]
	LocationTypes  *entity.Table[LocationType]
	PathwayTypes   *entity.Table[PathwayType]

	verified bool
}

// New returns an empty library.
func New() *Library {
	return &Library{
		WireTypes: entity.NewTable(entity.KindWireType, func(h entity.Header) *WireType {
			return &WireType{Header: h}
		}),
		CableTypes: entity.NewTable(entity.KindCableType, func(h entity.Header) *CableType {
			return &CableType{Header: h}
		}),
		TermCableTypes: entity.NewTable(entity.KindTermCableType, func(h entity.Header) *TermCableType {
			return &TermCableType{Header: h}
		}),
		ConnectorTypes: entity.NewTable(entity.KindConnectorType, func(h entity.Header) *ConnectorType {
			return &ConnectorType{Header: h}
		}),
		EquipmentTypes: entity.NewTable(entity.KindEquipmentType, func(h entity.Header) *EquipmentType {
			return &EquipmentType{Header: h}
		}),
		LocationTypes: entity.NewTable(entity.KindLocationType, func(h entity.Header) *LocationType {
			return &LocationType{Header: h}
		}),
		PathwayTypes: entity.NewTable(entity.KindPathwayType, func(h entity.Header) *PathwayType {
			return &PathwayType{Header: h}
		}),
	}
}

// Verify runs the partial-empty sweep over every table, in build order, and
// marks the library closed on success.
func (l *Library) Verify() error {
	if err := wireTypeSchema.Sweep(l.WireTypes); err != nil {
		return err
	}
	if err := cableTypeSchema.Sweep(l.CableTypes); err != nil {
		return err
	}
	if err := termCableTypeSchema.Sweep(l.TermCableTypes); err != nil {
		return err
	}
	if err := connectorTypeSchema.Sweep(l.ConnectorTypes); err != nil {
		return err
	}
	if err := equipmentTypeSchema.Sweep(l.EquipmentTypes); err != nil {
		return err
	}
	if err := locationTypeSchema.Sweep(l.LocationTypes); err != nil {
		return err
	}
	if err := pathwayTypeSchema.Sweep(l.PathwayTypes); err != nil {
		return err
	}
	l.verified = true
	return nil
}

// Verified reports whether Verify has succeeded.
func (l *Library) Verified() bool { return l.verified }

// Counts returns the number of entities per kind.
func (l *Library) Counts() map[entity.Kind]int {
	return map[entity.Kind]int{
		entity.KindWireType:      l.WireTypes.Len(),
		entity.KindCableType:     l.CableTypes.Len(),
		entity.KindTermCableType: l.TermCableTypes.Len(),
		entity.KindConnectorType: l.ConnectorTypes.Len(),
		entity.KindEquipmentType: l.EquipmentTypes.Len(),
		entity.KindLocationType:  l.LocationTypes.Len(),
		entity.KindPathwayType:   l.PathwayTypes.Len(),
	}
}

// Views renders every entity of kind in ID order. ok is false for a kind
// that is not a library kind.
func (l *Library) Views(kind entity.Kind) (views []models.EntityView, ok bool) {
	switch kind {
	case entity.KindWireType:
		return viewAll(wireTypeSchema, l.WireTypes), true
	case entity.KindCableType:
		return viewAll(cableTypeSchema, l.CableTypes), true
	case entity.KindTermCableType:
		return viewAll(termCableTypeSchema, l.TermCableTypes), true
	case entity.KindConnectorType:
		return viewAll(connectorTypeSchema, l.ConnectorTypes), true
	case entity.KindEquipmentType:
		return viewAll(equipmentTypeSchema, l.EquipmentTypes), true
	case entity.KindLocationType:
		return viewAll(locationTypeSchema, l.LocationTypes), true
	case entity.KindPathwayType:
		return viewAll(pathwayTypeSchema, l.PathwayTypes), true
	}
	return nil, false
}

// View renders a single entity.
func (l *Library) View(kind entity.Kind, id string) (models.EntityView, bool) {
	switch kind {
	case entity.KindWireType:
		return viewOne(wireTypeSchema, l.WireTypes, id)
	case entity.KindCableType:
		return viewOne(cableTypeSchema, l.CableTypes, id)
	case entity.KindTermCableType:
		return viewOne(termCableTypeSchema, l.TermCableTypes, id)
	case entity.KindConnectorType:
		return viewOne(connectorTypeSchema, l.ConnectorTypes, id)
	case entity.KindEquipmentType:
		return viewOne(equipmentTypeSchema, l.EquipmentTypes, id)
	case entity.KindLocationType:
		return viewOne(locationTypeSchema, l.LocationTypes, id)
	case entity.KindPathwayType:
		return viewOne(pathwayTypeSchema, l.PathwayTypes, id)
	}
	return models.EntityView{}, false
}

func viewAll[T any](s *merge.Schema[T], t *entity.Table[T]) []models.EntityView {
	views := make([]models.EntityView, 0, t.Len())
	t.Each(func(_ string, e *T) {
		views = append(views, s.View(e))
	})
	return views
}

func viewOne[T any](s *merge.Schema[T], t *entity.Table[T], id string) (models.EntityView, bool) {
	e, ok := t.Get(id)
	if !ok {
		return models.EntityView{}, false
	}
	return s.View(e), true
}

// Builder builds a Library from an ordered FileBag sequence.
type Builder struct {
	policy merge.Policy
	logger *slog.Logger
}

// NewBuilder returns a builder that settles conflicting definitions with
// policy. A nil policy keeps the first definition.
func NewBuilder(policy merge.Policy, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = merge.KeepFirst(logger)
	}
	return &Builder{policy: policy, logger: logger}
}

// Build processes files in order and returns a verified library. Any error
// aborts the build; no partial library is returned.
func (b *Builder) Build(files []records.FileBag) (*Library, error) {
	lib := New()
	for i := range files {
		f := &files[i]
		if err := b.apply(lib, f); err != nil {
			return nil, err
		}
		b.logger.Debug("library file applied", slog.String("file", f.Path))
	}

	if err := lib.Verify(); err != nil {
		return nil, err
	}

	counts := lib.Counts()
	b.logger.Info("library built",
		slog.Int("files", len(files)),
		slog.Int("wire_types", counts[entity.KindWireType]),
		slog.Int("cable_types", counts[entity.KindCableType]),
		slog.Int("term_cable_types", counts[entity.KindTermCableType]),
		slog.Int("connector_types", counts[entity.KindConnectorType]),
		slog.Int("equipment_types", counts[entity.KindEquipmentType]),
		slog.Int("location_types", counts[entity.KindLocationType]),
		slog.Int("pathway_types", counts[entity.KindPathwayType]))
	return lib, nil
}

func (b *Builder) apply(lib *Library, f *records.FileBag) error {
	t := &translator{lib: lib, file: f.Path}
	if err := merge.UpsertAll(wireTypeSchema, lib.WireTypes, f.WireTypes, t.wireType, b.policy); err != nil {
		return err
	}
	if err := merge.UpsertAll(cableTypeSchema, lib.CableTypes, f.CableTypes, t.cableType, b.policy); err != nil {
		return err
	}
	if err := merge.UpsertAll(termCableTypeSchema, lib.TermCableTypes, f.TermCableTypes, t.termCableType, b.policy); err != nil {
		return err
	}
	if err := merge.UpsertAll(connectorTypeSchema, lib.ConnectorTypes, f.ConnectorTypes, t.connectorType, b.policy); err != nil {
		return err
	}
	if err := merge.UpsertAll(equipmentTypeSchema, lib.EquipmentTypes, f.EquipmentTypes, t.equipmentType, b.policy); err != nil {
		return err
	}
	if err := merge.UpsertAll(locationTypeSchema, lib.LocationTypes, f.LocationTypes, t.locationType, b.policy); err != nil {
		return err
	}
	return merge.UpsertAll(pathwayTypeSchema, lib.PathwayTypes, f.PathwayTypes, t.pathwayType, b.policy)
}
