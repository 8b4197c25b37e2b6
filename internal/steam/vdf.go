package steam

import (
	"regexp"
	"strings"
)

var (
	keyValueRe = regexp.MustCompile(`^"([^"]+)"\s+"([^"]*)"$`)
	keyRe      = regexp.MustCompile(`^"([^"]+)"$`)
	installRe  = regexp.MustCompile(`"installdir"\s*"([^"]+)"`)
)

// Library is one Steam library folder
type Library struct {
	Path string
	Apps []string
}

// HasApp reports whether the library contains the application
func (l *Library) HasApp(appID string) bool {
	for _, app := range l.Apps {
		if app == appID {
			return true
		}
	}
	return false
}

// ParseLibraryFolders reads the libraries of a libraryfolders.vdf file
//
//	"libraryfolders"
//	{
//		"0"
//		{
//			"path"		"C:\\Program Files (x86)\\Steam"
//			"apps"
//			{
//				"227300"		"18234523423"
//			}
//		}
//	}
func ParseLibraryFolders(content string) []Library {
	var libraries []Library
	var stack []string
	var current *Library
	pendingKey := ""

	for _, line := range strings.Split(strings.ReplaceAll(content, "\r", ""), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case line == "{":
			stack = append(stack, pendingKey)
			pendingKey = ""
			// libraryfolders > <index>
			if len(stack) == 2 {
				libraries = append(libraries, Library{})
				current = &libraries[len(libraries)-1]
			}
		case line == "}":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) < 2 {
				current = nil
			}
		default:
			if match := keyValueRe.FindStringSubmatch(line); match != nil {
				if current == nil {
					continue
				}
				key, value := match[1], match[2]
				switch {
				case len(stack) == 2 && key == "path":
					current.Path = strings.ReplaceAll(value, `\\`, `\`)
				case len(stack) == 3 && stack[2] == "apps":
					current.Apps = append(current.Apps, key)
				}
				continue
			}
			if match := keyRe.FindStringSubmatch(line); match != nil {
				pendingKey = match[1]
			}
		}
	}

	return libraries
}

// ParseInstallDir returns the installdir of an appmanifest_<id>.acf file
func ParseInstallDir(content string) string {
	match := installRe.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
