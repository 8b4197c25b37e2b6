package report

import (
	"encoding/json"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

// Document is the structured report written by the json and yaml formats
type Document struct {
	models.AnalysisResult `yaml:",inline"`
	DurationText          string `json:"duration_text,omitempty" yaml:"duration_text,omitempty"`
	ConflictingMods       int    `json:"conflicting_mods" yaml:"conflicting_mods"`
}

func newDocument(result *models.AnalysisResult) *Document {
	doc := &Document{
		AnalysisResult:  *result,
		ConflictingMods: len(result.Report.Entries),
	}
	if result.Duration > 0 {
		doc.DurationText = FormatDuration(result.Duration)
	}
	return doc
}

// renderJSON renders the full result, file lists are never truncated
func (g *Generator) renderJSON(result *models.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(newDocument(result), "", "  ")
}
