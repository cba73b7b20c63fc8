package merge

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/maraichr/cdm/internal/entity"
)

type part struct {
	entity.Header
	Maker  string
	Length *float64
	Count  *uint32
	Shield *bool
	Next   *part
	Tags   map[string]string
}

var partSchema = &Schema[part]{
	Kind: entity.KindLocationType,
	Head: func(p *part) *entity.Header { return &p.Header },
	Fields: []Field[part]{
		String("maker", func(p *part) *string { return &p.Maker }),
		Float("length", func(p *part) **float64 { return &p.Length }),
		Uint("count", func(p *part) **uint32 { return &p.Count }),
		Bool("shield", func(p *part) **bool { return &p.Shield }),
		Ref("next", func(p *part) **part { return &p.Next }, func(n *part) string { return n.ID }),
		Custom("tags", func(p *part) *map[string]string { return &p.Tags }, FormatStringMap),
	},
}

func ptr[V any](v V) *V { return &v }

func newPart(id, file, maker string) *part {
	return &part{Header: entity.Header{ID: id, SourceFile: file}, Maker: maker}
}

func never(t *testing.T) Policy {
	return func(c Conflict) map[string]bool {
		t.Fatalf("policy called for %s %q", c.Kind, c.ID)
		return nil
	}
}

func TestDiff_OrderAndRendering(t *testing.T) {
	a := newPart("P", "a.yaml", "acme")
	a.Length = ptr(1.5)
	a.Tags = map[string]string{"b": "2", "a": "1"}

	b := newPart("P", "b.yaml", "acme")
	b.Length = ptr(2.0)
	b.Shield = ptr(true)
	b.Next = &part{Header: entity.Header{ID: "Q"}}
	b.Tags = map[string]string{"a": "1", "b": "2"}

	got := partSchema.Diff(a, b)
	want := []FieldDiff{
		{Field: "length", Self: "1.5", Other: "2"},
		{Field: "shield", Self: "", Other: "true"},
		{Field: "next", Self: "", Other: "Q"},
	}
	if len(got) != len(want) {
		t.Fatalf("Diff = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Diff[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMerge_IdenticalSkipsPolicy(t *testing.T) {
	a := newPart("P", "a.yaml", "acme")
	a.Count = ptr(uint32(3))
	b := newPart("P", "b.yaml", "acme")
	b.Count = ptr(uint32(3))

	if err := partSchema.Merge(a, b, never(t)); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if a.SourceFile != "a.yaml" || *a.Count != 3 {
		t.Errorf("entity changed: %+v", a)
	}
}

func TestMerge_AdoptsSelectedFields(t *testing.T) {
	a := newPart("P", "a.yaml", "acme")
	a.Length = ptr(1.0)
	b := newPart("P", "b.yaml", "globex")
	b.Length = ptr(9.0)

	policy := func(c Conflict) map[string]bool {
		if c.SelfFile != "a.yaml" || c.OtherFile != "b.yaml" {
			t.Errorf("conflict files = %s, %s", c.SelfFile, c.OtherFile)
		}
		return map[string]bool{"maker": true, "length": false}
	}
	if err := partSchema.Merge(a, b, policy); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if a.Maker != "globex" || *a.Length != 1.0 {
		t.Errorf("merged = %+v", a)
	}

	// Adopted optional values are copies, not aliases of the other record.
	b.Length = ptr(5.0)
	if *a.Length != 1.0 {
		t.Error("self aliases other")
	}
}

func TestMerge_UndecidedField(t *testing.T) {
	a := newPart("P", "a.yaml", "acme")
	b := newPart("P", "b.yaml", "globex")

	err := partSchema.Merge(a, b, func(Conflict) map[string]bool { return nil })
	var ue *UndecidedFieldError
	if !errors.As(err, &ue) || ue.Field != "maker" {
		t.Fatalf("err = %v, want undecided maker", err)
	}
	if a.Maker != "acme" {
		t.Error("self modified despite contract violation")
	}
}

func TestMerge_IDMismatch(t *testing.T) {
	err := partSchema.Merge(newPart("P", "a.yaml", "x"), newPart("Q", "b.yaml", "y"), never(t))
	var dm *entity.DataMergeError
	if !errors.As(err, &dm) {
		t.Fatalf("err = %v, want DataMergeError", err)
	}
	if dm.SelfID != "P" || dm.OtherID != "Q" || dm.OtherFile != "b.yaml" {
		t.Errorf("error = %+v", dm)
	}

	if err := partSchema.Fill(newPart("P", "", ""), newPart("Q", "b.yaml", "y")); !errors.Is(err, entity.ErrDataMerge) {
		t.Errorf("Fill err = %v", err)
	}
}

// Adopting B then C, where each changes a different field, ends in the same
// state as adopting both changes at once.
func TestMerge_Determinism(t *testing.T) {
	base := func() *part {
		p := newPart("P", "a.yaml", "acme")
		p.Length = ptr(1.0)
		return p
	}
	b := newPart("P", "b.yaml", "globex")
	b.Length = ptr(1.0)
	c := newPart("P", "c.yaml", "globex")
	c.Length = ptr(2.0)
	union := newPart("P", "u.yaml", "globex")
	union.Length = ptr(2.0)

	seq := base()
	for _, o := range []*part{b, c} {
		if err := partSchema.Merge(seq, o, AdoptNewest()); err != nil {
			t.Fatal(err)
		}
	}
	once := base()
	if err := partSchema.Merge(once, union, AdoptNewest()); err != nil {
		t.Fatal(err)
	}

	if d := partSchema.Diff(seq, once); len(d) != 0 {
		t.Errorf("sequential and combined merges differ: %+v", d)
	}
	if seq.SourceFile != "a.yaml" {
		t.Errorf("provenance changed to %s", seq.SourceFile)
	}
}

func TestUpsert_InsertFillMerge(t *testing.T) {
	tbl := entity.NewTable(entity.KindLocationType, func(h entity.Header) *part {
		return &part{Header: h}
	})

	ref := tbl.Ref("P", "user.yaml")
	if !partSchema.IsPlaceholder(ref) {
		t.Fatal("fresh reference should be a placeholder")
	}
	if err := partSchema.Sweep(tbl); !errors.Is(err, entity.ErrNoDefinitionFound) {
		t.Fatalf("sweep err = %v", err)
	}

	if err := partSchema.Upsert(tbl, newPart("P", "def.yaml", "acme"), never(t)); err != nil {
		t.Fatal(err)
	}
	if ref.Maker != "acme" || ref.SourceFile != "def.yaml" {
		t.Errorf("placeholder not filled in place: %+v", ref)
	}

	if err := partSchema.Upsert(tbl, newPart("P", "again.yaml", "globex"), AdoptNewest()); err != nil {
		t.Fatal(err)
	}
	if ref.Maker != "globex" || ref.SourceFile != "def.yaml" {
		t.Errorf("merge = %+v", ref)
	}

	if err := partSchema.Upsert(tbl, newPart("R", "r.yaml", "initech"), never(t)); err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 || partSchema.Sweep(tbl) != nil {
		t.Errorf("table = %v", tbl.IDs())
	}
}

func TestUpsertAll_SortedOrder(t *testing.T) {
	tbl := entity.NewTable(entity.KindLocationType, func(h entity.Header) *part {
		return &part{Header: h}
	})
	var order []string
	raw := map[string]string{"z": "3", "a": "1", "m": "2"}

	err := UpsertAll(partSchema, tbl, raw, func(id, maker string) (*part, error) {
		order = append(order, id)
		return newPart(id, "f.yaml", maker), nil
	}, never(t))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(order, ",") != "a,m,z" {
		t.Errorf("order = %v", order)
	}
}

func TestKeepFirst_LogsEveryField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got := KeepFirst(logger)(Conflict{
		Kind: entity.KindWireType,
		ID:   "W1",
		Diff: []FieldDiff{{Field: "color", Self: "red", Other: "blue"}, {Field: "model", Other: "x"}},
	})
	if len(got) != 2 || got["color"] || got["model"] {
		t.Errorf("decisions = %v", got)
	}
	if n := strings.Count(buf.String(), "conflicting definition ignored"); n != 2 {
		t.Errorf("logged %d warnings, want 2", n)
	}
}

func TestByName(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, name := range []string{"", "keep-first", "adopt-newest"} {
		if p, err := ByName(name, logger); err != nil || p == nil {
			t.Errorf("ByName(%q) = %v", name, err)
		}
	}
	if _, err := ByName("coin-flip", logger); err == nil {
		t.Error("unknown policy accepted")
	}
}

func TestPrompt(t *testing.T) {
	in := strings.NewReader("y\nno\n")
	var out bytes.Buffer

	got := Prompt(in, &out)(Conflict{
		Kind:      entity.KindCableType,
		ID:        "C1",
		SelfFile:  "a.yaml",
		OtherFile: "b.yaml",
		Diff: []FieldDiff{
			{Field: "height", Self: "4", Other: "5"},
			{Field: "width", Self: "", Other: "6"},
			{Field: "model", Self: "m1", Other: "m2"},
		},
	})

	want := map[string]bool{"height": true, "width": false, "model": false}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != 3 {
		t.Errorf("decisions = %v", got)
	}
	if !strings.Contains(out.String(), `CableType "C1" is defined more than once`) ||
		!strings.Contains(out.String(), "(none)") {
		t.Errorf("prompt output:\n%s", out.String())
	}
}
