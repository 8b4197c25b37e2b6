package detector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lRainZz/scs-mod-comp-checker/internal/listing"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

func mod(name string, files ...string) *models.Mod {
	return &models.Mod{Name: name, Files: files}
}

func TestDetect_NoSharedPaths(t *testing.T) {
	mods := []*models.Mod{
		mod("a", "def/a.sii", "def/b.sii"),
		mod("b", "def/c.sii"),
		mod("c"),
	}

	if got := Detect(mods); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no duplicates", got)
	}
}

func TestDetect_Scenario(t *testing.T) {
	mods := []*models.Mod{
		mod("modX", "a/x.txt", "a/shared.txt"),
		mod("modY", "a/shared.txt", "a/y.txt"),
	}

	expected := []models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}
	if got := Detect(mods); !reflect.DeepEqual(got, expected) {
		t.Errorf("Detect() = %+v, want %+v", got, expected)
	}
}

func TestDetect_OwnerCount(t *testing.T) {
	mods := []*models.Mod{
		mod("a", "p/1", "p/2"),
		mod("b", "p/1", "p/2", "p/3"),
		mod("c", "p/1", "p/3"),
		mod("d", "p/4"),
	}

	expected := map[string][]string{
		"p/1": {"a", "b", "c"},
		"p/2": {"a", "b"},
		"p/3": {"b", "c"},
	}

	got := Detect(mods)
	if len(got) != len(expected) {
		t.Fatalf("Detect() returned %d records, want %d", len(got), len(expected))
	}
	for _, dup := range got {
		if !reflect.DeepEqual(dup.Mods, expected[dup.FilePath]) {
			t.Errorf("owners of %s = %v, want %v", dup.FilePath, dup.Mods, expected[dup.FilePath])
		}
	}
	// first-seen path order
	if got[0].FilePath != "p/1" || got[1].FilePath != "p/2" || got[2].FilePath != "p/3" {
		t.Errorf("Detect() order = %v", got)
	}
}

func TestDetect_SameModTwice(t *testing.T) {
	// a file listed twice by one mod is not a conflict
	mods := []*models.Mod{
		mod("a", "p/1", "p/1"),
		mod("b", "p/2"),
	}
	if got := Detect(mods); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no duplicates", got)
	}
}

func TestDetect_SameIdentifier(t *testing.T) {
	// two containers resolving to the same identifier count as one owner
	mods := []*models.Mod{
		mod("same", "p/1"),
		mod("same", "p/1"),
	}
	if got := Detect(mods); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no duplicates", got)
	}
}

func TestDetect_WorkshopIdentifier(t *testing.T) {
	mods := []*models.Mod{
		mod("Trailer Pack", "p/1"),
		{Name: "Trailer Pack", WorkshopID: "123", Files: []string{"p/1"}},
	}

	got := Detect(mods)
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d records, want 1", len(got))
	}
	expected := []string{"Trailer Pack", "Trailer Pack [WORKSHOP MOD - 123]"}
	if !reflect.DeepEqual(got[0].Mods, expected) {
		t.Errorf("owners = %v, want %v", got[0].Mods, expected)
	}
}

func TestDetect_SkipsFailedMods(t *testing.T) {
	mods := []*models.Mod{
		mod("a", "p/1"),
		{Name: "broken", Files: []string{"p/1"}, Err: errors.New("boom")},
	}
	if got := Detect(mods); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no duplicates", got)
	}

	failed := FailedMods(mods)
	if len(failed) != 1 || failed[0].Name != "broken" {
		t.Errorf("FailedMods() = %+v", failed)
	}
}

func TestDetect_CaseAndSeparatorSensitive(t *testing.T) {
	mods := []*models.Mod{
		mod("a", "def/A.sii", `def\b.sii`),
		mod("b", "def/a.sii", "def/b.sii"),
	}
	if got := Detect(mods); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no duplicates", got)
	}
}

func TestDetect_Idempotent(t *testing.T) {
	mods := []*models.Mod{
		mod("a", "p/3", "p/1", "p/2"),
		mod("b", "p/2", "p/3"),
		mod("c", "p/1", "p/2"),
	}

	first := Detect(mods)
	second := Detect(mods)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Detect() not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestDetect_AutomatFiltering(t *testing.T) {
	raw := "2025-01-01 10:00:00 ....A 1 1 automat/gen.txt\n2025-01-01 10:00:00 ....A 1 1 def/a.sii\n"

	build := func(includeAutomat bool) []*models.Mod {
		return []*models.Mod{
			mod("a", listing.Parse(raw, includeAutomat)...),
			mod("b", listing.Parse(raw, includeAutomat)...),
		}
	}

	for _, dup := range Detect(build(false)) {
		if dup.FilePath == "automat/gen.txt" {
			t.Error("automat file reported although excluded")
		}
	}

	found := false
	for _, dup := range Detect(build(true)) {
		if dup.FilePath == "automat/gen.txt" {
			found = true
		}
	}
	if !found {
		t.Error("automat file not reported although included")
	}
}
