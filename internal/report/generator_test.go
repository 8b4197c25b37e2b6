package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lRainZz/scs-mod-comp-checker/internal/config"
	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newResult(dups []models.Duplicate, failures []models.ModFailure) *models.AnalysisResult {
	return &models.AnalysisResult{
		StartTime:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		Game:       "Euro Truck Simulator 2",
		Duplicates: dups,
		Report:     BuildConflictReport(dups),
		Errors:     failures,
	}
}

func newGenerator(cfg *config.Config) *Generator {
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "text"
	}
	return NewGenerator(cfg, zap.NewNop())
}

func TestRenderText_Tree(t *testing.T) {
	g := newGenerator(&config.Config{})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, nil)

	got := g.renderText(result)

	expected := "\n\n" +
		"\"modX\"\n" +
		"│\n" +
		"└─ conflicts with: \"modY\"\n" +
		"   │\n" +
		"   └─ because of: a/shared.txt\n" +
		"\n" +
		"\"modY\"\n" +
		"│\n" +
		"└─ conflicts with: \"modX\"\n" +
		"   │\n" +
		"   └─ because of: a/shared.txt\n" +
		"\n" +
		"\n" + hintAllFiles +
		"\n" + hintNamesOnly + "\n"

	if got != expected {
		t.Errorf("renderText() =\n%s\nwant\n%s", got, expected)
	}
}

func TestRenderText_SeveralConflicts(t *testing.T) {
	g := newGenerator(&config.Config{})
	result := newResult([]models.Duplicate{
		{FilePath: "def/a.sii", Mods: []string{"A", "B"}},
		{FilePath: "def/b.sii", Mods: []string{"A", "C"}},
	}, nil)

	got := g.renderText(result)

	expected := "\"A\"\n" +
		"│\n" +
		"├─ conflicts with: \"B\"\n" +
		"│  │\n" +
		"│  └─ because of: def/a.sii\n" +
		"│\n" +
		"└─ conflicts with: \"C\"\n" +
		"   │\n" +
		"   └─ because of: def/b.sii\n"

	if !strings.Contains(got, expected) {
		t.Errorf("renderText() missing block\n%s\ngot\n%s", expected, got)
	}
}

func TestRenderText_Truncation(t *testing.T) {
	files := []string{"f/1", "f/2", "f/3", "f/4", "f/5"}
	var dups []models.Duplicate
	for _, f := range files {
		dups = append(dups, models.Duplicate{FilePath: f, Mods: []string{"A", "B"}})
	}

	t.Run("Truncated", func(t *testing.T) {
		got := newGenerator(&config.Config{}).renderText(newResult(dups, nil))

		if strings.Count(got, "because of:") != 6 {
			t.Errorf("expected 3 files per mod, got\n%s", got)
		}
		if strings.Count(got, "└─ and 2 more ...") != 2 {
			t.Errorf("expected size hint per mod, got\n%s", got)
		}
		if strings.Contains(got, "f/4") {
			t.Error("truncated output lists f/4")
		}
	})

	t.Run("All files", func(t *testing.T) {
		got := newGenerator(&config.Config{ShowAllFiles: true}).renderText(newResult(dups, nil))

		if strings.Count(got, "because of:") != 10 {
			t.Errorf("expected 5 files per mod, got\n%s", got)
		}
		if strings.Contains(got, "more ...") {
			t.Error("untruncated output contains size hint")
		}
		if strings.Contains(got, hintAllFiles) {
			t.Error("all files output repeats the -a hint")
		}
	})
}

func TestRenderText_ModNamesOnly(t *testing.T) {
	g := newGenerator(&config.Config{ModNamesOnly: true})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, nil)

	got := g.renderText(result)

	if strings.Contains(got, "because of:") {
		t.Errorf("names only output lists files:\n%s", got)
	}
	if !strings.Contains(got, "└─ conflicts with: \"modY\"\n\n") {
		t.Errorf("names only output malformed:\n%s", got)
	}
	if !strings.Contains(got, hintAllFiles) || strings.Contains(got, hintNamesOnly) {
		t.Errorf("names only hints wrong:\n%s", got)
	}
}

func TestRenderText_Errors(t *testing.T) {
	g := newGenerator(&config.Config{})
	result := newResult(nil, []models.ModFailure{
		{ID: "broken.scs", Name: "broken.scs", Kind: "tool_invocation", Error: "exit status 2"},
		{ID: "123", Name: "123", WorkshopID: "123", Kind: "version_resolution", Error: "no package"},
	})

	got := g.renderText(result)

	expected := "Could not open/analyze the following mod archives:\n" +
		"  - \"broken.scs\"\n" +
		"  - \"123 [WORKSHOP MOD - 123]\"\n\n" +
		noDuplicates + "\n"

	if got != expected {
		t.Errorf("renderText() =\n%q\nwant\n%q", got, expected)
	}
}

func TestRenderJSON(t *testing.T) {
	g := newGenerator(&config.Config{ReportFormat: "json", ReportTiming: true})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, nil)

	data, err := g.Render(result)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc struct {
		Duplicates      []models.Duplicate    `json:"duplicates"`
		Report          models.ConflictReport `json:"report"`
		DurationText    string                `json:"duration_text"`
		ConflictingMods int                   `json:"conflicting_mods"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(doc.Duplicates) != 1 || doc.Duplicates[0].FilePath != "a/shared.txt" {
		t.Errorf("duplicates = %+v", doc.Duplicates)
	}
	if doc.ConflictingMods != 2 {
		t.Errorf("conflicting_mods = %d, want 2", doc.ConflictingMods)
	}
	if doc.DurationText != "1.50s" {
		t.Errorf("duration_text = %q, want 1.50s", doc.DurationText)
	}
}

func TestRenderYAML(t *testing.T) {
	g := newGenerator(&config.Config{ReportFormat: "yaml"})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, nil)

	data, err := g.Render(result)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}

	for _, key := range []string{"duplicates", "report", "errors", "conflicting_mods"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("YAML report missing key %q", key)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	g := newGenerator(&config.Config{ReportFormat: "md"})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, []models.ModFailure{{Name: "bad|name", Kind: "tool_invocation", Error: "boom"}})

	data, err := g.Render(result)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := string(data)

	for _, want := range []string{"## Conflicts", "### modX", "- conflicts with **modY** (1 files)", "`a/shared.txt`", `bad\|name`} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown report missing %q:\n%s", want, got)
		}
	}
}

func TestRender_IdenticalAcrossRuns(t *testing.T) {
	dups := []models.Duplicate{{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}}}
	first := newResult(dups, nil)
	second := newResult(dups, nil)
	second.StartTime = first.StartTime.Add(time.Hour)
	second.EndTime = second.StartTime.Add(3 * time.Second)
	second.Duration = 3 * time.Second

	for _, format := range []string{"text", "json", "yaml", "md"} {
		t.Run(format, func(t *testing.T) {
			g := newGenerator(&config.Config{ReportFormat: format})

			a, err := g.Render(first)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			b, err := g.Render(second)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.Equal(a, b) {
				t.Errorf("reports differ:\n%s\n---\n%s", a, b)
			}
			for _, timing := range []string{"start_time", "duration", "Start Time"} {
				if bytes.Contains(a, []byte(timing)) {
					t.Errorf("report contains %q:\n%s", timing, a)
				}
			}
		})
	}

	if first.Duration != 1500*time.Millisecond {
		t.Error("Render() modified the result")
	}
}

func TestRender_WithTiming(t *testing.T) {
	g := newGenerator(&config.Config{ReportFormat: "md", ReportTiming: true})

	data, err := g.Render(newResult(nil, nil))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"| Start Time | 2024-05-01 12:00:00 |", "| Duration | 1.50s |"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Markdown report missing %q:\n%s", want, data)
		}
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	g := NewGenerator(&config.Config{ReportFormat: "xml"}, zap.NewNop())
	if _, err := g.Render(newResult(nil, nil)); err == nil {
		t.Error("Render() expected error for unknown format")
	}
}

func TestGenerate_WritesFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "result.txt")
	g := newGenerator(&config.Config{OutputFile: output})

	path, err := g.Generate(newResult(nil, nil))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != output {
		t.Errorf("Generate() path = %v, want %v", path, output)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), noDuplicates) {
		t.Errorf("report content = %q", data)
	}
}

func TestPrintSummary(t *testing.T) {
	g := newGenerator(&config.Config{})
	result := newResult([]models.Duplicate{
		{FilePath: "a/shared.txt", Mods: []string{"modX", "modY"}},
	}, []models.ModFailure{{Name: "broken.scs", Error: "exit status 2"}})

	var buf bytes.Buffer
	g.PrintSummary(&buf, result)
	out := buf.String()

	for _, want := range []string{"ANALYSIS COMPLETE", "CONFLICTING FILES: 1", "broken.scs", "exit status 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h2m3.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %v, want %v", tt.d, got, tt.expected)
			}
		})
	}
}
