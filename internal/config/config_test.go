package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
	if cfg.Build.OnConflict != "keep-first" || cfg.Build.CacheSize != 512 {
		t.Errorf("build = %+v", cfg.Build)
	}
	if cfg.Valkey.Addr != "" {
		t.Errorf("valkey should be disabled by default, got %q", cfg.Valkey.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CDM_STRICT", "true")
	t.Setenv("CDM_WATCH_DEBOUNCE_MS", "50")
	t.Setenv("CDM_LOG_LEVEL", "debug")
	t.Setenv("MINIO_USE_SSL", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 || !cfg.Build.Strict || cfg.Build.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Build.Debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Build.Debounce)
	}
	if cfg.MinIO.UseSSL {
		t.Error("unparseable bool should fall back to default")
	}
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("CDM_CACHE_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero cache size")
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProject(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantPath    string
		wantNoDef   bool
		wantLibrary []string
		wantErr     bool
	}{
		{
			name: "no config",
		},
		{
			name:        "root config",
			files:       map[string]string{"cdm_config.yaml": "library_files: [libs/a.yaml]\n"},
			wantPath:    "cdm_config.yaml",
			wantLibrary: []string{"libs/a.yaml"},
		},
		{
			name: "src takes precedence",
			files: map[string]string{
				"cdm_config.yaml":     "library_files: [root.yaml]\n",
				"src/cdm_config.yaml": "no_default_libraries: true\nlibrary_files: [src.yaml]\n",
			},
			wantPath:    "src/cdm_config.yaml",
			wantNoDef:   true,
			wantLibrary: []string{"src.yaml"},
		},
		{
			name:    "malformed",
			files:   map[string]string{"cdm_config.yaml": "library_files: {oops: 1}\n"},
			wantErr: true,
		},
		{
			name:    "empty entry",
			files:   map[string]string{"cdm_config.yaml": "library_files: [\"\"]\n"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for rel, content := range tt.files {
				write(t, filepath.Join(root, rel), content)
			}

			p, err := LoadProject(root)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadProject: %v", err)
			}

			wantPath := ""
			if tt.wantPath != "" {
				wantPath = filepath.Join(root, tt.wantPath)
			}
			if p.Path != wantPath {
				t.Errorf("path = %q, want %q", p.Path, wantPath)
			}
			if p.NoDefaultLibraries != tt.wantNoDef {
				t.Errorf("no_default_libraries = %v", p.NoDefaultLibraries)
			}
			if len(p.LibraryFiles) != len(tt.wantLibrary) {
				t.Fatalf("library files = %v", p.LibraryFiles)
			}
			for i, rel := range tt.wantLibrary {
				if want := filepath.Join(root, rel); p.LibraryFiles[i] != want {
					t.Errorf("library_files[%d] = %q, want %q", i, p.LibraryFiles[i], want)
				}
			}
		})
	}
}
