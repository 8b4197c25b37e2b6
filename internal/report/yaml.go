package report

import (
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"gopkg.in/yaml.v3"
)

// renderYAML renders the same document as renderJSON
func (g *Generator) renderYAML(result *models.AnalysisResult) ([]byte, error) {
	return yaml.Marshal(newDocument(result))
}
