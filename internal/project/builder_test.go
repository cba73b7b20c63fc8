package project

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
)

const catalogDoc = `
wire_type:
  W1: {conductor: copper, color: red}
cable_type:
  C1:
    cross_section: circular
    cable_cores:
      a: {type: W1, is_wire: true}
term_cable_type:
  T1: {cable: C1, nominal_length: 5}
location_type:
  RACK: {manufacturer: Rittal, height: 2000}
pathway_type:
  TRAY: {tray_type: ladder}
equipment_type:
  MIXER: {mount: rack}
`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bag(t *testing.T, path, doc string) records.FileBag {
	t.Helper()
	b, err := records.NewYAMLDecoder(true).Decode(records.FileInput{Path: path, Content: []byte(doc)})
	require.NoError(t, err)
	return *b
}

func testLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.NewBuilder(nil, discard()).Build([]records.FileBag{bag(t, "lib.yaml", catalogDoc)})
	require.NoError(t, err)
	return lib
}

func TestBuild_ResolvesLibraryAndInstances(t *testing.T) {
	lib := testLibrary(t)
	files := []records.FileBag{
		bag(t, "cables.yaml", `
wire_cable:
  WC1: {cable: C1, identifier: "W-001", pathway: P1, length: 12.5}
  WC2: {term_cable: T1, pathway: P1}
  WC3: {wire: W1}
equipment:
  EQ1: {equipment_type: MIXER, location: LOC1, sub_location: U12}
`),
		bag(t, "site.yaml", `
location:
  LOC1: {location_type: RACK, identifier: "R1"}
pathway:
  P1: {pathway_type: TRAY, length: 30}
`),
	}

	prj, err := NewBuilder(nil, discard()).Build(files, lib)
	require.NoError(t, err)

	p1, ok := prj.Pathways.Get("P1")
	require.True(t, ok)
	wc1, _ := prj.WireCables.Get("WC1")
	wc2, _ := prj.WireCables.Get("WC2")
	assert.Same(t, p1, wc1.Pathway)
	assert.Same(t, p1, wc2.Pathway)
	assert.Equal(t, "site.yaml", p1.SourceFile)

	c1, _ := lib.CableTypes.Get("C1")
	assert.Same(t, c1, wc1.Type)

	t1, _ := lib.TermCableTypes.Get("T1")
	assert.Same(t, t1, wc2.Type)

	wc3, _ := prj.WireCables.Get("WC3")
	w1, _ := lib.WireTypes.Get("W1")
	assert.Same(t, w1, wc3.Type)

	eq1, _ := prj.Equipment.Get("EQ1")
	loc1, _ := prj.Locations.Get("LOC1")
	assert.Same(t, loc1, eq1.Location)
	assert.Equal(t, "Rittal", eq1.Location.Type.Manufacturer)

	view, ok := prj.View(entity.KindWireCable, "WC2")
	require.True(t, ok)
	assert.Equal(t, "term_cable:T1", view.Value("type"))
	assert.Equal(t, "P1", view.Value("pathway"))
}

func TestBuild_MissingLibraryEntry(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		name          string
		doc           string
		containedKind entity.Kind
		containedID   string
		containerKind entity.Kind
	}{
		{"location type", "location:\n  L1: {location_type: SHELF}\n", entity.KindLocationType, "SHELF", entity.KindLocation},
		{"pathway type", "pathway:\n  P1: {pathway_type: DUCT}\n", entity.KindPathwayType, "DUCT", entity.KindPathway},
		{"equipment type", "equipment:\n  E1: {equipment_type: AMP}\n", entity.KindEquipmentType, "AMP", entity.KindEquipment},
		{"wire", "wire_cable:\n  X: {wire: W9}\n", entity.KindWireType, "W9", entity.KindWireCable},
		{"cable", "wire_cable:\n  X: {cable: C9}\n", entity.KindCableType, "C9", entity.KindWireCable},
		{"term cable", "wire_cable:\n  X: {term_cable: T9}\n", entity.KindTermCableType, "T9", entity.KindWireCable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(nil, discard()).Build([]records.FileBag{bag(t, "p.yaml", tt.doc)}, lib)

			var nc *entity.NoContainedDefinitionFoundError
			require.ErrorAs(t, err, &nc)
			assert.Equal(t, tt.containedKind, nc.ContainedKind)
			assert.Equal(t, tt.containedID, nc.ContainedID)
			assert.Equal(t, tt.containerKind, nc.ContainerKind)
			assert.Equal(t, "p.yaml", nc.File)
		})
	}

	// Strict lookups never leave placeholders behind in the library.
	_, ok := lib.WireTypes.Get("W9")
	assert.False(t, ok)
}

func TestBuild_WireCableSelector(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"none", "wire_cable:\n  X: {identifier: lonely}\n"},
		{"wire and cable", "wire_cable:\n  X: {wire: W1, cable: C1}\n"},
		{"all three", "wire_cable:\n  X: {wire: W1, cable: C1, term_cable: T1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(nil, discard()).Build([]records.FileBag{bag(t, "p.yaml", tt.doc)}, lib)

			var dp *entity.DefinitionProcessingError
			require.ErrorAs(t, err, &dp)
			assert.Equal(t, entity.KindWireCable, dp.Kind)
			assert.Equal(t, "X", dp.ID)
		})
	}
}

func TestBuild_MissingTypeField(t *testing.T) {
	_, err := NewBuilder(nil, discard()).Build(
		[]records.FileBag{bag(t, "p.yaml", "location:\n  L1: {identifier: R1}\n")}, testLibrary(t))
	assert.ErrorIs(t, err, entity.ErrDefinitionProcessing)
}

func TestBuild_UndefinedInstanceReference(t *testing.T) {
	_, err := NewBuilder(nil, discard()).Build(
		[]records.FileBag{bag(t, "p.yaml", "wire_cable:\n  WC1: {wire: W1, pathway: NOWHERE}\n")}, testLibrary(t))

	var nd *entity.NoDefinitionFoundError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, entity.KindPathway, nd.Kind)
	assert.Equal(t, "NOWHERE", nd.ID)
	assert.Equal(t, "p.yaml", nd.File)
}

func TestBuild_RequiresVerifiedLibrary(t *testing.T) {
	_, err := NewBuilder(nil, discard()).Build(nil, nil)
	assert.ErrorIs(t, err, library.ErrNotVerified)

	_, err = NewBuilder(nil, discard()).Build(nil, library.New())
	assert.ErrorIs(t, err, library.ErrNotVerified)
}

func TestBuild_MergeInstances(t *testing.T) {
	lib := testLibrary(t)
	files := []records.FileBag{
		bag(t, "a.yaml", "pathway:\n  P1: {pathway_type: TRAY, length: 10, description: main}\n"),
		bag(t, "b.yaml", "pathway:\n  P1: {pathway_type: TRAY, length: 12, description: main}\n"),
	}

	var diffs []merge.FieldDiff
	policy := merge.Counting(merge.AdoptNewest(), func(c merge.Conflict) { diffs = append(diffs, c.Diff...) })

	prj, err := NewBuilder(policy, discard()).Build(files, lib)
	require.NoError(t, err)

	p1, _ := prj.Pathways.Get("P1")
	require.NotNil(t, p1.Length)
	assert.Equal(t, 12.0, *p1.Length)
	assert.Equal(t, []merge.FieldDiff{{Field: "length", Self: "10", Other: "12"}}, diffs)
}

func TestBuild_EmptyInput(t *testing.T) {
	prj, err := NewBuilder(nil, discard()).Build(nil, testLibrary(t))
	require.NoError(t, err)
	for _, kind := range entity.ProjectKinds {
		views, ok := prj.Views(kind)
		require.True(t, ok)
		assert.Empty(t, views)
	}
}
