package entity

import (
	"errors"
	"testing"
)

type thing struct {
	Header
	Name string
}

func newThings() *Table[thing] {
	return NewTable(KindWireType, func(h Header) *thing {
		return &thing{Header: h}
	})
}

func TestTable_RefCreatesOnePlaceholder(t *testing.T) {
	tbl := newThings()

	a := tbl.Ref("W1", "a.yaml")
	b := tbl.Ref("W1", "a.yaml")
	if a != b {
		t.Fatal("Ref returned two objects for one id")
	}
	if a.ID != "W1" || a.Name != "" || a.SourceFile != "a.yaml" {
		t.Errorf("placeholder = %+v", a)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tbl.Len())
	}

	// A later fill is seen through every earlier reference.
	a.Name = "filled"
	if got, _ := tbl.Get("W1"); got.Name != "filled" || b.Name != "filled" {
		t.Errorf("fill not shared: %+v", got)
	}
}

func TestTable_InsertNeverReplaces(t *testing.T) {
	tbl := newThings()
	first := &thing{Header: Header{ID: "X"}, Name: "first"}

	if !tbl.Insert("X", first) {
		t.Fatal("first insert rejected")
	}
	if tbl.Insert("X", &thing{Header: Header{ID: "X"}, Name: "second"}) {
		t.Fatal("second insert accepted")
	}
	if got, _ := tbl.Get("X"); got != first {
		t.Error("entry replaced")
	}
}

func TestTable_IDsSorted(t *testing.T) {
	tbl := newThings()
	for _, id := range []string{"c", "a", "b"} {
		tbl.Ref(id, "")
	}

	var visited []string
	tbl.Each(func(id string, _ *thing) { visited = append(visited, id) })

	want := []string{"a", "b", "c"}
	for i, id := range tbl.IDs() {
		if id != want[i] || visited[i] != want[i] {
			t.Fatalf("IDs = %v, Each = %v, want %v", tbl.IDs(), visited, want)
		}
	}
}

func TestTable_Sweep(t *testing.T) {
	tbl := newThings()
	tbl.Insert("A", &thing{Header: Header{ID: "A", SourceFile: "a.yaml"}, Name: "ok"})
	tbl.Ref("B", "b.yaml")
	tbl.Ref("C", "c.yaml")

	isEmpty := func(e *thing) bool { return e.Name == "" }
	file := func(e *thing) string { return e.SourceFile }

	err := tbl.Sweep(isEmpty, file)
	var nd *NoDefinitionFoundError
	if !errors.As(err, &nd) {
		t.Fatalf("err = %v, want NoDefinitionFoundError", err)
	}
	if nd.Kind != KindWireType || nd.ID != "B" {
		t.Errorf("got %s %q, want first missing id B", nd.Kind, nd.ID)
	}
	if nd.File != "b.yaml" {
		t.Errorf("File = %q, want the referencing file b.yaml", nd.File)
	}
	if !errors.Is(err, ErrNoDefinitionFound) {
		t.Error("sentinel not matched")
	}

	b, _ := tbl.Get("B")
	c, _ := tbl.Get("C")
	b.Name, c.Name = "x", "y"
	if err := tbl.Sweep(isEmpty, file); err != nil {
		t.Errorf("sweep after fill: %v", err)
	}
}
