// Package detector finds file paths installed by more than one mod.
package detector

import "github.com/lRainZz/scs-mod-comp-checker/pkg/models"

// Detect returns one Duplicate per path owned by at least two distinct mods.
// Records appear in the order their path was first seen; owners appear in
// mod order. Failed mods are skipped.
func Detect(mods []*models.Mod) []models.Duplicate {
	owners := make(map[string][]string)
	var order []string

	for _, mod := range mods {
		if mod == nil || mod.Failed() {
			continue
		}
		id := mod.Identifier()

		for _, path := range mod.Files {
			current, seen := owners[path]
			if !seen {
				order = append(order, path)
			}
			if contains(current, id) {
				continue
			}
			owners[path] = append(current, id)
		}
	}

	var duplicates []models.Duplicate
	for _, path := range order {
		ids := owners[path]
		if len(ids) < 2 {
			continue
		}
		duplicates = append(duplicates, models.Duplicate{
			FilePath: path,
			Mods:     ids,
		})
	}
	return duplicates
}

// FailedMods returns the mods carrying an error, in input order
func FailedMods(mods []*models.Mod) []*models.Mod {
	var failed []*models.Mod
	for _, mod := range mods {
		if mod != nil && mod.Failed() {
			failed = append(failed, mod)
		}
	}
	return failed
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
