package mcgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reallyoldfogie/mc-voxelshape/internal/emit"
)

// minecraftVersion represents a parsed Minecraft version for comparison.
type minecraftVersion struct {
	major int
	minor int
	patch int
}

// parseMinecraftVersion parses a version string like "1.21.1" or "26.1-snapshot-1".
func parseMinecraftVersion(version string) (minecraftVersion, error) {
	// Remove snapshot suffix if present
	version = strings.Split(version, "-")[0]

	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return minecraftVersion{}, fmt.Errorf("invalid version format: %s", version)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return minecraftVersion{}, fmt.Errorf("invalid major version: %s", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return minecraftVersion{}, fmt.Errorf("invalid minor version: %s", parts[1])
	}

	patch := 0
	if len(parts) >= 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil {
			return minecraftVersion{}, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return minecraftVersion{major: major, minor: minor, patch: patch}, nil
}

// needsYarnMappings determines if a Minecraft version needs Yarn mappings.
// Versions >= 26.1 ship with non-obfuscated code and don't need Yarn.
func needsYarnMappings(mcVersion string) bool {
	v, err := parseMinecraftVersion(mcVersion)
	if err != nil {
		// If we can't parse, assume it needs Yarn (safer default)
		return true
	}

	// Versions before 26.1 need Yarn mappings
	if v.major < 26 {
		return true
	}
	if v.major == 26 && v.minor < 1 {
		return true
	}

	// 26.1+ doesn't need Yarn
	return false
}

// ResolveDialect picks the Java names generated code uses.
//
// "auto" selects MCP names before 1.17 and official names from 1.17 on;
// without a version it falls back to MCP. "yarn" switches to official
// names for versions that ship unobfuscated.
func ResolveDialect(mappings, mcVersion string) (emit.Dialect, error) {
	switch mappings {
	case "", "auto":
		if mcVersion == "" {
			return emit.MCP, nil
		}
		v, err := parseMinecraftVersion(mcVersion)
		if err != nil {
			return emit.Dialect{}, err
		}
		if v.major == 1 && v.minor < 17 {
			return emit.MCP, nil
		}
		return emit.Mojang, nil
	case "yarn":
		if mcVersion != "" && !needsYarnMappings(mcVersion) {
			return emit.Mojang, nil
		}
		return emit.Yarn, nil
	}
	return emit.DialectByName(mappings)
}
