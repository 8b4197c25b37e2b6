// Package games holds the profiles of the supported SCS titles.
package games

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ETS2AppID = "227300"
	ATSAppID  = "270880"
)

// Profile describes where a game keeps its files
type Profile struct {
	Key        string `yaml:"key"`        // short name used on the command line
	AppID      string `yaml:"app_id"`     // Steam application id
	Name       string `yaml:"name"`       // display name
	Folder     string `yaml:"folder"`     // folder below Documents and steamapps/common
	Executable string `yaml:"executable"` // game binary below bin/win_x64
}

// Registry is a set of game profiles keyed by Key
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates a registry holding the built-in profiles
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	r.Add(&Profile{
		Key:        "ets2",
		AppID:      ETS2AppID,
		Name:       "Euro Truck Simulator 2",
		Folder:     "Euro Truck Simulator 2",
		Executable: "eurotrucks2.exe",
	})
	r.Add(&Profile{
		Key:        "ats",
		AppID:      ATSAppID,
		Name:       "American Truck Simulator",
		Folder:     "American Truck Simulator",
		Executable: "amtrucks.exe",
	})
	return r
}

// Add adds or replaces a profile
func (r *Registry) Add(p *Profile) {
	r.profiles[strings.ToLower(p.Key)] = p
}

// Get returns the profile for a key
func (r *Registry) Get(key string) (*Profile, error) {
	p, ok := r.profiles[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (known: %s)", key, strings.Join(r.Keys(), ", "))
	}
	return p, nil
}

// Keys returns the sorted profile keys
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.profiles))
	for key := range r.profiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the mandatory fields of a profile
func (p *Profile) Validate() error {
	switch {
	case p.Key == "":
		return fmt.Errorf("profile has no key")
	case p.AppID == "":
		return fmt.Errorf("profile %s has no app_id", p.Key)
	case p.Folder == "":
		return fmt.Errorf("profile %s has no folder", p.Key)
	}
	return nil
}
