package report

import (
	"fmt"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

// renderMarkdown generates a Markdown report
func (g *Generator) renderMarkdown(result *models.AnalysisResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# SCS Mod Compatibility Report\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	if result.Version != "" {
		sb.WriteString(fmt.Sprintf("| Checker Version | %s |\n", result.Version))
	}
	if result.Game != "" {
		sb.WriteString(fmt.Sprintf("| Game | %s |\n", result.Game))
	}
	if result.GameVersion != "" {
		sb.WriteString(fmt.Sprintf("| Game Version | %s |\n", result.GameVersion))
	}
	if !result.StartTime.IsZero() {
		sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", result.StartTime.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(result.Duration)))
	}
	sb.WriteString(fmt.Sprintf("| Containers | %d |\n", result.TotalContainers))
	sb.WriteString(fmt.Sprintf("| Analyzed Mods | %d |\n", result.AnalyzedMods))
	sb.WriteString(fmt.Sprintf("| Files | %d |\n", result.TotalFiles))
	sb.WriteString(fmt.Sprintf("| **Conflicting Files** | **%d** |\n", len(result.Duplicates)))
	sb.WriteString("\n")

	if len(result.Errors) > 0 {
		sb.WriteString("## Could Not Analyze\n\n")
		sb.WriteString("| Mod | Kind | Error |\n")
		sb.WriteString("|-----|------|-------|\n")
		for _, failure := range result.Errors {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				escapeCell(models.ModIdentifier(failure.Name, failure.WorkshopID)),
				failure.Kind,
				escapeCell(failure.Error)))
		}
		sb.WriteString("\n")
	}

	if !result.HasConflicts() {
		sb.WriteString("> **" + noDuplicates + "**\n")
		return sb.String()
	}

	sb.WriteString("## Conflicts\n\n")
	for _, entry := range result.Report.Entries {
		sb.WriteString(fmt.Sprintf("### %s\n\n", entry.Mod))

		for _, conflict := range entry.Conflicts {
			sb.WriteString(fmt.Sprintf("- conflicts with **%s**", conflict.Mod))
			if g.config.ModNamesOnly {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(fmt.Sprintf(" (%d files)\n", len(conflict.Files)))

			files := conflict.Files
			if g.config.TruncateFiles() {
				files = TruncateFiles(conflict.Files, DefaultFileLimit)
			}
			for i, file := range files {
				if g.config.TruncateFiles() && len(conflict.Files) > DefaultFileLimit && i == len(files)-1 {
					sb.WriteString(fmt.Sprintf("  - and %s\n", file))
					continue
				}
				sb.WriteString(fmt.Sprintf("  - `%s`\n", file))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// escapeCell keeps table cells on one row
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
