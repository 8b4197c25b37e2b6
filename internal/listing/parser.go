// Package listing turns the bare-format listing of the archive tool
// ("7z l -ba <archive>") into relative file paths.
//
// An entry looks like this:
//
//	2025-06-02 19:16:52 ....A      1398256         3082  vehicle/truck/upgrade/acc_0.dds
//
// date, time, attributes, uncompressed size, compressed size, path.
// Attributes: D.... directory, .R... read-only, ..H.. hidden, ...S. system, ....A archive.
package listing

import (
	"regexp"
	"strings"
)

// AutomatPrefix is the reserved top-level directory of generated content
const AutomatPrefix = "automat"

const directoryMarker = "D"

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	controlRe    = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	scanNoiseRe  = regexp.MustCompile(`0M Scan`)
)

// Entry is one parsed line of the listing
type Entry struct {
	Date         string
	Time         string
	Attributes   string
	Size         string
	Compressed   string
	Path         string
	IsDir        bool
	HadSpaces    bool
	WasSanitized bool
}

// Parse returns the filtered file paths of a listing
func Parse(raw string, includeAutomat bool) []string {
	var paths []string
	for _, entry := range ParseEntries(raw) {
		if entry.IsDir {
			continue
		}
		if Keep(entry.Path, includeAutomat) {
			paths = append(paths, entry.Path)
		}
	}
	return paths
}

// ParseEntries parses every non-empty line without applying the path filter
func ParseEntries(raw string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		entry, ok := ParseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ParseLine parses a single listing line.
// ok is false for lines that carry no path.
func ParseLine(line string) (Entry, bool) {
	line, sanitized := sanitize(line)

	fields := strings.Split(line, " ")
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	entry := Entry{
		Date:         get(0),
		Time:         get(1),
		Attributes:   get(2),
		Size:         get(3),
		Compressed:   get(4),
		Path:         get(5),
		WasSanitized: sanitized,
	}
	if len(fields) > 6 {
		entry.Path = JoinRest(entry.Path, fields[6:])
		entry.HadSpaces = true
	}
	entry.IsDir = strings.Contains(entry.Attributes, directoryMarker)

	return entry, entry.Path != ""
}

// JoinRest stitches the remainder of a path that contained spaces back onto
// its first segment using an underscore. The result is not the real path, it
// only has to compare equal across archives listing the same file.
func JoinRest(path string, rest []string) string {
	if len(rest) == 0 {
		return path
	}
	return path + "_" + strings.Join(rest, "_")
}

// Keep reports whether a relative path takes part in conflict analysis.
// Files in the container root are metadata and never mounted into the game.
func Keep(path string, includeAutomat bool) bool {
	if !strings.ContainsAny(path, `/\`) {
		return false
	}
	if !includeAutomat && strings.HasPrefix(path, AutomatPrefix) {
		return false
	}
	return true
}

// sanitize collapses whitespace and strips control characters together with
// the noise tokens the tool injects into such lines.
func sanitize(line string) (string, bool) {
	line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	if !controlRe.MatchString(line) {
		return line, false
	}

	line = controlRe.ReplaceAllString(line, "")
	line = strings.Replace(line, "undefined", "", 1)
	line = scanNoiseRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line), true
}
