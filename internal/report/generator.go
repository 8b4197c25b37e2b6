package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lRainZz/scs-mod-comp-checker/internal/config"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator renders analysis results in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
	}
}

// Render returns the report for the configured format.
// Unless timing is enabled, identical results render identical bytes.
func (g *Generator) Render(result *models.AnalysisResult) ([]byte, error) {
	if !g.config.ReportTiming {
		result = withoutTiming(result)
	}

	switch g.config.ReportFormat {
	case "", "txt", "text":
		return []byte(g.renderText(result)), nil
	case "json":
		return g.renderJSON(result)
	case "yaml", "yml":
		return g.renderYAML(result)
	case "md", "markdown":
		return []byte(g.renderMarkdown(result)), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", g.config.ReportFormat)
	}
}

// withoutTiming returns a copy of result with the wall clock fields cleared
func withoutTiming(result *models.AnalysisResult) *models.AnalysisResult {
	stable := *result
	stable.StartTime = time.Time{}
	stable.EndTime = time.Time{}
	stable.Duration = 0
	return &stable
}

// Generate writes the report file and returns its absolute path
func (g *Generator) Generate(result *models.AnalysisResult) (string, error) {
	outputFile := g.config.ResolveOutputFile()

	g.logger.Info("Generating report",
		zap.String("format", g.config.ReportFormat),
		zap.String("output", outputFile))

	data, err := g.Render(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", g.config.ReportFormat, err)
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	absPath, err := filepath.Abs(outputFile)
	if err != nil {
		return outputFile, nil
	}
	return absPath, nil
}

// PrintSummary prints a colored run summary
func (g *Generator) PrintSummary(w io.Writer, result *models.AnalysisResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sANALYSIS COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Fprintln(w)

	if result.Game != "" {
		fmt.Fprintf(w, "  %sGame:%s      %s\n", colorGray, colorReset, result.Game)
	}
	if result.GameVersion != "" {
		fmt.Fprintf(w, "  %sVersion:%s   %s\n", colorGray, colorReset, result.GameVersion)
	}
	fmt.Fprintf(w, "  %sMods:%s      %d/%d\n", colorGray, colorReset, result.AnalyzedMods, result.TotalContainers)
	fmt.Fprintf(w, "  %sFiles:%s     %d\n", colorGray, colorReset, result.TotalFiles)
	fmt.Fprintf(w, "  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(result.Duration))
	fmt.Fprintln(w)

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "  %s⚠ Could not analyze %d mod(s):%s\n", colorYellow, len(result.Errors), colorReset)
		for _, failure := range result.Errors {
			fmt.Fprintf(w, "    %s-%s %s %s(%s)%s\n", colorGray, colorReset,
				models.ModIdentifier(failure.Name, failure.WorkshopID), colorGray, failure.Error, colorReset)
		}
		fmt.Fprintln(w)
	}

	if !result.HasConflicts() {
		fmt.Fprintf(w, "  %s%s✓ No duplicates found%s\n", colorBold, colorGreen, colorReset)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %s%s⚠ CONFLICTING FILES: %d%s %sacross %d mods%s\n",
		colorBold, colorRed, len(result.Duplicates), colorReset, colorGray, len(result.Report.Entries), colorReset)
	fmt.Fprintln(w)
}
