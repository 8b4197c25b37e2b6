package models

import "time"

// Duplicate is a file path installed by at least two mods
type Duplicate struct {
	FilePath string   `json:"file_path" yaml:"file_path"`
	Mods     []string `json:"mods" yaml:"mods"`
}

// Conflict lists the files a mod shares with one other mod
type Conflict struct {
	Mod   string   `json:"mod" yaml:"mod"`
	Files []string `json:"files" yaml:"files"`
}

// ModConflicts groups all conflicts of one mod
type ModConflicts struct {
	Mod       string     `json:"mod" yaml:"mod"`
	Conflicts []Conflict `json:"conflicts" yaml:"conflicts"`
}

// ConflictReport is the per-mod view of all duplicates
type ConflictReport struct {
	Entries []ModConflicts `json:"entries" yaml:"entries"`
}

// AnalysisResult contains the complete analysis results
type AnalysisResult struct {
	// Summary
	Version     string        `json:"version" yaml:"version"`
	StartTime   time.Time     `json:"start_time,omitzero" yaml:"start_time,omitempty"`
	EndTime     time.Time     `json:"end_time,omitzero" yaml:"end_time,omitempty"`
	Duration    time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	Game        string        `json:"game,omitempty" yaml:"game,omitempty"`
	GameVersion string        `json:"game_version,omitempty" yaml:"game_version,omitempty"`

	TotalContainers int `json:"total_containers" yaml:"total_containers"`
	AnalyzedMods    int `json:"analyzed_mods" yaml:"analyzed_mods"`
	TotalFiles      int `json:"total_files" yaml:"total_files"`

	Duplicates []Duplicate    `json:"duplicates" yaml:"duplicates"`
	Report     ConflictReport `json:"report" yaml:"report"`
	Errors     []ModFailure   `json:"errors" yaml:"errors"`

	// Report path
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// HasConflicts reports whether any duplicate was found
func (r *AnalysisResult) HasConflicts() bool {
	return len(r.Duplicates) > 0
}
