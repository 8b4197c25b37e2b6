// Package sii reads the few fields the analysis needs from SCS unit files.
// It is not a real SII parser: blocks and fields are located by pattern.
package sii

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lRainZz/scs-mod-comp-checker/pkg/models"
)

// VersionsFile is the companion file of multi-version workshop mods
const VersionsFile = "versions.sii"

const versionWildcard = "*"

var (
	packageVersionBlockRe = regexp.MustCompile(`package_version_info\s*:\s*(\S+)\s*\{([^}]*)\}`)
	packageNameRe         = regexp.MustCompile(`package_name:\s*"([^"]+)"`)
	compatibleVersionRe   = regexp.MustCompile(`compatible_versions\[\]:\s*"([^"]+)"`)
)

// ParseVersionBlocks extracts all package_version_info blocks in file order
func ParseVersionBlocks(content string) []models.VersionBlock {
	var blocks []models.VersionBlock

	for _, match := range packageVersionBlockRe.FindAllStringSubmatch(content, -1) {
		body := match[2]

		block := models.VersionBlock{}
		if nameMatch := packageNameRe.FindStringSubmatch(body); nameMatch != nil {
			block.PackageName = nameMatch[1]
		}
		for _, versionMatch := range compatibleVersionRe.FindAllStringSubmatch(body, -1) {
			block.CompatibleVersions = append(block.CompatibleVersions, versionMatch[1])
		}
		block.Universal = len(block.CompatibleVersions) == 0

		blocks = append(blocks, block)
	}

	return blocks
}

// MatchesVersion reports whether a compatible_versions pattern such as
// "1.34.*" applies to gameVersion. The prefix is anchored at the start, so
// "11.34.5" does not match "1.34.*".
func MatchesVersion(pattern, gameVersion string) bool {
	prefix := strings.TrimSuffix(pattern, versionWildcard)
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(gameVersion, prefix)
}

// SelectPackage picks the package for gameVersion: the first block with a
// matching pattern, otherwise the first universal block.
func SelectPackage(blocks []models.VersionBlock, gameVersion string) (string, error) {
	if len(blocks) == 0 {
		return "", fmt.Errorf("%w: no package_version_info blocks", models.ErrVersionResolution)
	}

	for _, block := range blocks {
		if block.PackageName == "" {
			continue
		}
		for _, pattern := range block.CompatibleVersions {
			if MatchesVersion(pattern, gameVersion) {
				return block.PackageName, nil
			}
		}
	}

	for _, block := range blocks {
		if block.Universal && block.PackageName != "" {
			return block.PackageName, nil
		}
	}

	return "", fmt.Errorf("%w for game version %s", models.ErrVersionResolution, gameVersion)
}

// ResolvePackage parses a versions.sii content and selects the package name
func ResolvePackage(content, gameVersion string) (string, error) {
	return SelectPackage(ParseVersionBlocks(content), gameVersion)
}
