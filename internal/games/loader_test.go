package games

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRegistry_BuiltIn(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		key   string
		appID string
		exe   string
	}{
		{"ets2", ETS2AppID, "eurotrucks2.exe"},
		{"ATS", ATSAppID, "amtrucks.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p, err := r.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if p.AppID != tt.appID || p.Executable != tt.exe {
				t.Errorf("Get(%q) = %+v", tt.key, p)
			}
		})
	}

	if _, err := r.Get("farming"); err == nil {
		t.Error("Get() expected error for unknown game")
	}
}

func TestLoader_Load(t *testing.T) {
	tmpDir := t.TempDir()
	content := `games:
  - key: ets2-beta
    app_id: "227300"
    folder: Euro Truck Simulator 2 Beta
    executable: eurotrucks2.exe
`
	if err := os.WriteFile(filepath.Join(tmpDir, "beta.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("ignored"), 0644)

	registry, err := NewLoader(tmpDir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(registry.Keys(), []string{"ats", "ets2", "ets2-beta"}) {
		t.Errorf("Keys() = %v", registry.Keys())
	}

	p, _ := registry.Get("ets2-beta")
	if p.Name != "Euro Truck Simulator 2 Beta" {
		t.Errorf("Name = %q, want folder as fallback", p.Name)
	}
}

func TestLoader_Load_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yml")
	os.WriteFile(path, []byte("games:\n  - key: x\n"), 0644)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() expected validation error, got nil")
	}
}

func TestLoader_Load_MissingPath(t *testing.T) {
	registry, err := NewLoader(filepath.Join(t.TempDir(), "missing")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(registry.Keys()) != 2 {
		t.Errorf("Keys() = %v, want built-in profiles", registry.Keys())
	}
}
