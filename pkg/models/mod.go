package models

import "fmt"

// Origin tells where a container was discovered
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginWorkshop Origin = "workshop"
)

// Container is one candidate mod source handed to the analysis pipeline.
// For workshop mods Path points at the workshop item directory and the actual
// payload (archive or folder) is chosen during materialization.
type Container struct {
	ID         string `json:"id" yaml:"id"`
	Path       string `json:"path" yaml:"path"`
	IsArchive  bool   `json:"is_archive" yaml:"is_archive"`
	WorkshopID string `json:"workshop_id,omitempty" yaml:"workshop_id,omitempty"`
	Origin     Origin `json:"origin" yaml:"origin"`
}

// IsWorkshop reports whether the container came from the Steam workshop
func (c Container) IsWorkshop() bool {
	return c.WorkshopID != "" || c.Origin == OriginWorkshop
}

// VersionBlock is one package_version_info entry of a versions.sii file
type VersionBlock struct {
	PackageName        string
	CompatibleVersions []string
	Universal          bool
}

// Mod is the materialized form of a container.
// When Err is set, Files must be ignored.
type Mod struct {
	Name        string
	WorkshopID  string
	Origin      Origin
	ContainerID string
	PayloadPath string
	IsArchive   bool
	Files       []string
	Err         error
}

// Identifier returns the display identifier used for equality in reports
func (m *Mod) Identifier() string {
	return ModIdentifier(m.Name, m.WorkshopID)
}

// ModIdentifier builds the composite identifier of a mod
func ModIdentifier(name, workshopID string) string {
	if name == "" {
		name = "-"
	}
	if workshopID == "" {
		return name
	}
	return fmt.Sprintf("%s [WORKSHOP MOD - %s]", name, workshopID)
}

// Failed reports whether materialization of the mod failed
func (m *Mod) Failed() bool {
	return m.Err != nil
}

// ModFailure is a container that could not be analyzed
type ModFailure struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	WorkshopID string `json:"workshop_id,omitempty" yaml:"workshop_id,omitempty"`
	Kind       string `json:"kind" yaml:"kind"`
	Error      string `json:"error" yaml:"error"`
}
