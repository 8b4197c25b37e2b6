package report

import (
	"fmt"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

// DefaultFileLimit is the number of files shown per conflict when truncating
const DefaultFileLimit = 3

// BuildConflictReport turns duplicate records into a per-mod conflict view.
// Mods appear in first-seen order across records. For each mod, the other
// owners are grouped in the order they are first encountered, each with the
// shared files in record order. The input is never modified.
func BuildConflictReport(dups []models.Duplicate) models.ConflictReport {
	report := models.ConflictReport{Entries: make([]models.ModConflicts, 0)}

	for _, mod := range conflictedMods(dups) {
		report.Entries = append(report.Entries, models.ModConflicts{
			Mod:       mod,
			Conflicts: conflictsForMod(mod, dups),
		})
	}

	return report
}

// conflictedMods returns the distinct owners of all records in first-seen order
func conflictedMods(dups []models.Duplicate) []string {
	seen := make(map[string]bool)
	var mods []string

	for _, dup := range dups {
		for _, mod := range dup.Mods {
			if seen[mod] {
				continue
			}
			seen[mod] = true
			mods = append(mods, mod)
		}
	}

	return mods
}

// conflictsForMod inverts the records naming mod into other-owner groups
func conflictsForMod(mod string, dups []models.Duplicate) []models.Conflict {
	index := make(map[string]int)
	var conflicts []models.Conflict

	for _, dup := range dups {
		if !containsMod(dup.Mods, mod) {
			continue
		}

		for _, other := range dup.Mods {
			if other == mod {
				continue
			}

			i, ok := index[other]
			if !ok {
				i = len(conflicts)
				index[other] = i
				conflicts = append(conflicts, models.Conflict{Mod: other})
			}
			conflicts[i].Files = append(conflicts[i].Files, dup.FilePath)
		}
	}

	return conflicts
}

func containsMod(mods []string, mod string) bool {
	for _, m := range mods {
		if m == mod {
			return true
		}
	}
	return false
}

// TruncateFiles returns at most limit files followed by an "N more ..."
// marker when files had to be cut. The input slice is not modified.
func TruncateFiles(files []string, limit int) []string {
	if limit <= 0 || len(files) <= limit {
		out := make([]string, len(files))
		copy(out, files)
		return out
	}

	out := make([]string, 0, limit+1)
	out = append(out, files[:limit]...)
	out = append(out, moreMarker(len(files)-limit))
	return out
}

func moreMarker(n int) string {
	return fmt.Sprintf("%d more ...", n)
}
