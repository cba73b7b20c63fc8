package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
)

func decode(t *testing.T, path, doc string) records.FileBag {
	t.Helper()
	b, err := records.NewYAMLDecoder(false).Decode(records.FileInput{Path: path, Content: []byte(doc)})
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return *b
}

func testEngine(reg prometheus.Registerer, policy merge.Policy) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var m *Metrics
	if reg != nil {
		m = NewMetrics(reg)
	}
	return NewEngine(policy, logger, m)
}

func TestResolve_LibraryThenProject(t *testing.T) {
	// The project file comes first; library kinds are still built before any
	// instance is read.
	bags := []records.FileBag{
		decode(t, "project.yaml", "wire_cable:\n  WC1: {wire: W1, identifier: A1}\n"),
		decode(t, "library.yaml", "wire_type:\n  W1: {color: blue}\n"),
	}

	res, err := testEngine(nil, nil).Resolve(context.Background(), bags)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	wc, ok := res.Project.WireCables.Get("WC1")
	if !ok {
		t.Fatal("WC1 missing from project")
	}
	w1, _ := res.Library.WireTypes.Get("W1")
	if wc.Type != w1 {
		t.Errorf("WC1 type = %v, want shared W1", wc.Type)
	}

	sum := res.Summary()
	if sum.Counts["wire_type"] != 1 || sum.Counts["wire_cable"] != 1 {
		t.Errorf("counts = %v", sum.Counts)
	}
	if len(sum.Files) != 2 || sum.Files[0] != "project.yaml" {
		t.Errorf("files = %v", sum.Files)
	}
	if res.RunID.String() == "" || res.BuiltAt.IsZero() {
		t.Error("run metadata not set")
	}
}

func TestResolve_ErrorsAreWrapped(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{"library", "cable_type:\n  C1:\n    cable_cores:\n      a: {type: W1, is_wire: true}\n", entity.ErrNoDefinitionFound},
		{"project", "location:\n  L1: {location_type: NOPE}\n", entity.ErrNoContainedDefinitionFound},
		{"vocabulary", "cable_type:\n  C1: {cross_section: hexagonal}\n", entity.ErrDefinitionProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testEngine(nil, nil).Resolve(context.Background(), []records.FileBag{decode(t, "x.yaml", tt.doc)})
			if !errors.Is(err, tt.target) {
				t.Fatalf("err = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testEngine(nil, nil).Resolve(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResolve_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := testEngine(reg, merge.AdoptNewest())

	bags := []records.FileBag{
		decode(t, "a.yaml", "wire_type:\n  W1: {color: red}\n"),
		decode(t, "b.yaml", "wire_type:\n  W1: {color: blue}\n"),
	}
	if _, err := e.Resolve(context.Background(), bags); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := e.Resolve(context.Background(), []records.FileBag{decode(t, "bad.yaml", "term_cable_type:\n  T1: {}\n")}); err == nil {
		t.Fatal("expected failure")
	}

	m := e.metrics
	if got := testutil.ToFloat64(m.builds.WithLabelValues("success")); got != 1 {
		t.Errorf("success builds = %v", got)
	}
	if got := testutil.ToFloat64(m.builds.WithLabelValues("definition_processing")); got != 1 {
		t.Errorf("failed builds = %v", got)
	}
	if got := testutil.ToFloat64(m.conflicts.WithLabelValues("wire_type")); got != 1 {
		t.Errorf("conflicts = %v", got)
	}
	if got := testutil.ToFloat64(m.entities.WithLabelValues("wire_type")); got != 1 {
		t.Errorf("entities = %v", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("wrap: %w", &entity.NoDefinitionFoundError{Kind: entity.KindWireType, ID: "W1"}), "no_definition_found"},
		{&entity.DataMergeError{}, "data_merge"},
		{&merge.UndecidedFieldError{}, "undecided_field"},
		{context.DeadlineExceeded, "canceled"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	var snap Snapshot
	if snap.Load() != nil {
		t.Fatal("empty snapshot should load nil")
	}

	res, err := testEngine(nil, nil).Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r := snap.Load(); r != nil && r.Library == nil {
				t.Error("published result without library")
			}
		}()
	}
	if prev := snap.Publish(res); prev != nil {
		t.Errorf("previous = %v, want nil", prev)
	}
	wg.Wait()

	if snap.Load() != res {
		t.Error("Load did not return the published result")
	}
}

func TestResult_ViewsOrder(t *testing.T) {
	bags := []records.FileBag{
		decode(t, "p.yaml", "wire_cable:\n  WC1: {wire: W2}\n  WC0: {wire: W1}\n"),
		decode(t, "l.yaml", "wire_type:\n  W2: {color: red}\n  W1: {color: blue}\n"),
	}
	res, err := testEngine(nil, nil).Resolve(context.Background(), bags)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var got []string
	for _, v := range res.Views() {
		got = append(got, v.Kind+"/"+v.ID)
	}
	want := []string{"wire_type/W1", "wire_type/W2", "wire_cable/WC0", "wire_cable/WC1"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Views() = %v, want %v", got, want)
	}
}
