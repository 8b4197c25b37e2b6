package archive

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

func TestIsArchive(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"mod.scs", true},
		{"mod.zip", true},
		{"MOD.SCS", true},
		{"mod.7z", false},
		{"mod", false},
		{"versions.sii", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArchive(tt.name); got != tt.expected {
				t.Errorf("IsArchive(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestSevenZip_List(t *testing.T) {
	z := NewSevenZip("", t.TempDir(), zap.NewNop())

	var gotArgs []string
	z.SetRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		if binary != DefaultBinary {
			t.Errorf("binary = %q, want %q", binary, DefaultBinary)
		}
		gotArgs = args
		return []byte("listing"), nil
	})

	out, err := z.List(context.Background(), "/mods/a.scs")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if out != "listing" {
		t.Errorf("List() = %q, want %q", out, "listing")
	}
	if strings.Join(gotArgs, " ") != "l -ba /mods/a.scs" {
		t.Errorf("List() args = %q", gotArgs)
	}
}

func TestSevenZip_List_Failure(t *testing.T) {
	z := NewSevenZip("7za", t.TempDir(), zap.NewNop())
	z.SetRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 2")
	})

	_, err := z.List(context.Background(), "/mods/broken.scs")
	if !errors.Is(err, models.ErrToolInvocation) {
		t.Errorf("List() error = %v, want ErrToolInvocation", err)
	}
}

func TestSevenZip_ReadFile(t *testing.T) {
	scratch := t.TempDir()
	z := NewSevenZip("", scratch, zap.NewNop())

	z.SetRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		// args: x <archive> <file> -o<dir> -y
		dir := strings.TrimPrefix(args[3], "-o")
		if !strings.HasPrefix(dir, scratch) {
			t.Errorf("extraction dir %q is outside scratch %q", dir, scratch)
		}
		return nil, os.WriteFile(filepath.Join(dir, args[2]), []byte(`display_name: "X"`), 0644)
	})

	content, err := z.ReadFile(context.Background(), "/mods/a.scs", "manifest.sii")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != `display_name: "X"` {
		t.Errorf("ReadFile() = %q", content)
	}

	// the per-extraction directory is removed afterwards
	entries, _ := os.ReadDir(scratch)
	if len(entries) != 0 {
		t.Errorf("scratch directory still has %d entries", len(entries))
	}
}

func TestSevenZip_ReadFile_NotFound(t *testing.T) {
	z := NewSevenZip("", t.TempDir(), zap.NewNop())
	z.SetRunner(func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return nil, nil
	})

	_, err := z.ReadFile(context.Background(), "/mods/a.scs", "manifest.sii")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}
}
