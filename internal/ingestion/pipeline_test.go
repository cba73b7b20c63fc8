package ingestion

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/internal/resolver"
	"github.com/maraichr/cdm/pkg/models"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
}

type fixture struct {
	snapshot *resolver.Snapshot
	pipeline *Pipeline
}

func newFixture(t *testing.T, extra ...Stage) *fixture {
	t.Helper()
	logger := discard()
	registry := records.DefaultRegistry()
	cache, err := records.NewMemoryCache(16)
	require.NoError(t, err)

	snap := &resolver.Snapshot{}
	stages := []Stage{
		NewFetchStage(nil, nil, logger),
		NewDecodeStage(registry, records.NewLoader(registry, cache, logger), nil, logger),
		NewResolveStage(resolver.NewEngine(nil, logger, nil)),
		NewPublishStage(snap, logger),
	}
	stages = append(stages, extra...)
	return &fixture{snapshot: snap, pipeline: NewPipeline(stages, logger)}
}

func TestPipeline_DirectorySource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cdm_config.yaml"), "library_files: [lib]\n")
	writeFile(t, filepath.Join(root, "lib", "catalog.yaml"), "wire_type:\n  W1: {color: red}\n")
	writeFile(t, filepath.Join(root, "site", "cables.yaml"), "wire_cable:\n  WC1: {wire: W1}\n  WC2: {cable: mic-2c-shielded}\n")

	f := newFixture(t)
	rc, err := f.pipeline.Run(context.Background(), Source{Type: SourceDir, Path: root})
	require.NoError(t, err)

	assert.Equal(t, root, rc.WorkDir)
	assert.False(t, rc.Temporary)
	require.NotNil(t, rc.Project)
	assert.False(t, rc.Project.NoDefaultLibraries)

	// Built-in libraries come first, then library_files, then project files.
	require.Greater(t, len(rc.Bags), 2)
	n := len(rc.Bags)
	assert.Equal(t, filepath.Join(root, "site", "cables.yaml"), rc.Bags[n-1].Path)
	assert.Equal(t, filepath.Join(root, "lib", "catalog.yaml"), rc.Bags[n-2].Path)
	assert.Equal(t, []string{
		filepath.Join(root, "lib", "catalog.yaml"),
		filepath.Join(root, "site", "cables.yaml"),
	}, rc.Files)

	published := f.snapshot.Load()
	require.NotNil(t, published)
	assert.Same(t, rc.Result, published)

	wc2, ok := published.Project.WireCables.Get("WC2")
	require.True(t, ok)
	assert.Equal(t, "mic-2c-shielded", wc2.Type.EntityID())
}

func TestPipeline_LibraryInsideProjectAppliedOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cdm_config.yaml"), "library_files: [lib/lib.yaml]\nno_default_libraries: true\n")
	writeFile(t, filepath.Join(root, "lib", "lib.yaml"), "location_type:\n  L1: {manufacturer: LibraryCo}\n")
	writeFile(t, filepath.Join(root, "a.yaml"), "location_type:\n  L1: {manufacturer: ProjectCo}\n")

	calls := 0
	policy := merge.Counting(merge.AdoptNewest(), func(merge.Conflict) { calls++ })

	logger := discard()
	registry := records.DefaultRegistry()
	cache, err := records.NewMemoryCache(16)
	require.NoError(t, err)
	p := NewPipeline([]Stage{
		NewFetchStage(nil, nil, logger),
		NewDecodeStage(registry, records.NewLoader(registry, cache, logger), nil, logger),
		NewResolveStage(resolver.NewEngine(policy, logger, nil)),
	}, logger)

	rc, err := p.Run(context.Background(), Source{Path: root})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "lib", "lib.yaml"),
		filepath.Join(root, "a.yaml"),
	}, rc.Files)

	l1, ok := rc.Result.Library.LocationTypes.Get("L1")
	require.True(t, ok)
	assert.Equal(t, "ProjectCo", l1.Manufacturer)
	assert.Equal(t, 1, calls)
}

func TestPipeline_NoDefaultLibraries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "cdm_config.yaml"), "no_default_libraries: true\n")
	writeFile(t, filepath.Join(root, "src", "cables.yaml"), "wire_cable:\n  WC1: {cable: mic-2c-shielded}\n")

	f := newFixture(t)
	_, err := f.pipeline.Run(context.Background(), Source{Path: root})

	var nc *entity.NoContainedDefinitionFoundError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "mic-2c-shielded", nc.ContainedID)
	assert.Contains(t, err.Error(), "stage resolve failed")
	assert.Nil(t, f.snapshot.Load())
}

func TestPipeline_FailedBuildKeepsPrevious(t *testing.T) {
	root := t.TempDir()
	data := filepath.Join(root, "data.yaml")
	writeFile(t, data, "wire_type:\n  W1: {color: red}\n")

	f := newFixture(t)
	_, err := f.pipeline.Run(context.Background(), Source{Path: root})
	require.NoError(t, err)
	first := f.snapshot.Load()
	require.NotNil(t, first)

	writeFile(t, data, "wire_cable:\n  WC1: {wire: MISSING}\n")
	_, err = f.pipeline.Run(context.Background(), Source{Path: root})
	require.ErrorIs(t, err, entity.ErrNoContainedDefinitionFound)
	assert.Same(t, first, f.snapshot.Load())
}

func TestPipeline_ZipSourceRemovesWorkDir(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "project.zip")
	writeZip(t, archive, map[string]string{
		"src/cables.yaml": "wire_type:\n  W1: {color: red}\n",
	})

	f := newFixture(t)
	rc, err := f.pipeline.Run(context.Background(), Source{Type: SourceZip, Path: archive})
	require.NoError(t, err)

	assert.True(t, rc.Temporary)
	_, statErr := os.Stat(rc.WorkDir)
	assert.True(t, os.IsNotExist(statErr), "work dir should be removed")

	_, ok := f.snapshot.Load().Library.WireTypes.Get("W1")
	assert.True(t, ok)
}

func TestPipeline_StageErrors(t *testing.T) {
	boom := errors.New("boom")
	var ran bool
	p := NewPipeline([]Stage{
		NewFuncStage("first", func(context.Context, *RunContext) error { return boom }),
		NewFuncStage("second", func(context.Context, *RunContext) error { ran = true; return nil }),
	}, discard())

	_, err := p.Run(context.Background(), Source{})
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "stage first failed: boom")
	assert.False(t, ran)
}

func TestPipeline_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixture(t).pipeline.Run(ctx, Source{Path: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchStage_BadSources(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.yaml")
	writeFile(t, file, "")

	tests := []struct {
		name string
		src  Source
	}{
		{"missing path", Source{Type: SourceDir}},
		{"not a directory", Source{Type: SourceDir, Path: file}},
		{"missing dir", Source{Type: SourceDir, Path: filepath.Join(t.TempDir(), "nope")}},
		{"zip without path", Source{Type: SourceZip}},
		{"minio without object", Source{Type: SourceMinIO}},
		{"s3 not configured", Source{Type: SourceS3, Prefix: "p/"}},
		{"unknown type", Source{Type: "ftp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &RunContext{Source: tt.src}
			err := NewFetchStage(nil, nil, discard()).Execute(context.Background(), rc)
			assert.Error(t, err)
			if rc.Temporary {
				os.RemoveAll(rc.WorkDir)
			}
		})
	}
}

type fakeGraph struct {
	calls   []string
	buildID string
	views   []models.EntityView
}

func (g *fakeGraph) EnsureIndexes(context.Context) error {
	g.calls = append(g.calls, "indexes")
	return nil
}

func (g *fakeGraph) ClearBuild(context.Context) error {
	g.calls = append(g.calls, "clear")
	return nil
}

func (g *fakeGraph) Export(_ context.Context, buildID string, views []models.EntityView) error {
	g.calls = append(g.calls, "export")
	g.buildID = buildID
	g.views = views
	return nil
}

func TestGraphStage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cdm_config.yaml"), "no_default_libraries: true\n")
	writeFile(t, filepath.Join(root, "a.yaml"), `
wire_type:
  W1: {color: red}
pathway_type:
  TRAY: {tray_type: ladder}
pathway:
  P1: {pathway_type: TRAY}
wire_cable:
  WC1: {wire: W1, pathway: P1}
`)

	g := &fakeGraph{}
	f := newFixture(t, NewGraphStage(g, discard()))
	rc, err := f.pipeline.Run(context.Background(), Source{Path: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"indexes", "clear", "export"}, g.calls)
	assert.Equal(t, rc.Result.RunID.String(), g.buildID)
	require.Len(t, g.views, 4)

	wc1 := g.views[3]
	assert.Equal(t, "wire_cable", wc1.Kind)
	assert.Equal(t, []models.Reference{
		{Field: "type", Kind: "wire_type", ID: "W1"},
		{Field: "pathway", Kind: "pathway", ID: "P1"},
	}, wc1.References)
}

func TestGraphStage_RequiresResult(t *testing.T) {
	err := NewGraphStage(&fakeGraph{}, discard()).Execute(context.Background(), &RunContext{})
	assert.Error(t, err)
}
