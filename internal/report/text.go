package report

import (
	"fmt"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

// Hints appended below the conflict tree
const (
	hintAllFiles  = `To see all files that are causing conflicts, use the "-a, --all-conflicting-files" flag`
	hintNamesOnly = `To only see conflicting mods without the files, use the "-m, --mod-names-only" flag`
	noDuplicates  = "No duplicates found"
)

// renderText renders the conflict tree:
//
//	"modName"
//	│
//	└─ conflicts with: "other"
//	   │
//	   └─ because of: file
func (g *Generator) renderText(result *models.AnalysisResult) string {
	var sb strings.Builder

	if len(result.Errors) > 0 {
		sb.WriteString(errorList(result.Errors))
	}
	sb.WriteString("\n\n")

	if !result.HasConflicts() {
		sb.WriteString(noDuplicates)
		sb.WriteString("\n")
		return sb.String()
	}

	for _, entry := range result.Report.Entries {
		fmt.Fprintf(&sb, "\"%s\"\n", entry.Mod)

		for i, conflict := range entry.Conflicts {
			g.writeConflict(&sb, conflict, i == len(entry.Conflicts)-1)
		}

		sb.WriteString("\n")
	}

	if g.config.ModNamesOnly || g.config.TruncateFiles() {
		sb.WriteString("\n" + hintAllFiles)
	}
	if !g.config.ModNamesOnly {
		sb.WriteString("\n" + hintNamesOnly)
	}
	sb.WriteString("\n")

	return sb.String()
}

func (g *Generator) writeConflict(sb *strings.Builder, conflict models.Conflict, last bool) {
	curve, straight := "├", "│"
	if last {
		curve, straight = "└", " "
	}

	fmt.Fprintf(sb, "│\n%s─ conflicts with: \"%s\"\n", curve, conflict.Mod)
	if g.config.ModNamesOnly {
		return
	}
	sb.WriteString(straight + "  │")

	files := conflict.Files
	truncated := false
	if g.config.TruncateFiles() {
		files = TruncateFiles(conflict.Files, DefaultFileLimit)
		truncated = len(conflict.Files) > DefaultFileLimit
	}

	for i, file := range files {
		lastFile := i == len(files)-1

		fileCurve := "├"
		if lastFile {
			fileCurve = "└"
		}

		keyword := "because of:"
		if truncated && lastFile {
			keyword = "and"
		}

		fmt.Fprintf(sb, "\n%s  %s─ %s %s", straight, fileCurve, keyword, file)
	}

	sb.WriteString("\n")
}

// errorList lists the mods that could not be analyzed
func errorList(failures []models.ModFailure) string {
	names := make([]string, 0, len(failures))
	for _, failure := range failures {
		names = append(names, models.ModIdentifier(failure.Name, failure.WorkshopID))
	}
	return "Could not open/analyze the following mod archives:\n  - \"" + strings.Join(names, "\"\n  - \"") + "\""
}
