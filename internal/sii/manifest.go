package sii

import (
	"regexp"
	"strings"
)

// ManifestFile holds the display name of a mod in the container root
const ManifestFile = "manifest.sii"

// NoDisplayName is used when a manifest has no usable display_name
const NoDisplayName = "NO_DISPLAY_NAME"

const displayNameKey = "display_name:"

var displayNameRe = regexp.MustCompile(`display_name:\s*"([^"]+)"`)

// DisplayName returns the display_name of the first line carrying the key.
// ok is false when there is no such line or its value is empty.
func DisplayName(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, displayNameKey) {
			continue
		}
		match := displayNameRe.FindStringSubmatch(line)
		if match == nil {
			return "", false
		}
		return match[1], true
	}
	return "", false
}
