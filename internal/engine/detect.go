package engine

import (
	"os"
	"path/filepath"
)

// ============================================================================
// Package Manager Detection
// ============================================================================

// DefaultPackageManager is used when no lockfile identifies one
const DefaultPackageManager = "npm"

// lockfileManagers maps lockfiles to their package managers, in priority order
var lockfileManagers = []struct {
	lockfile string
	manager  string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// DetectPackageManager determines the package manager for a project by
// sniffing lockfiles: pnpm-lock.yaml wins over yarn.lock wins over
// package-lock.json. Falls back to npm when no lockfile is present.
func DetectPackageManager(dir string) string {
	for _, entry := range lockfileManagers {
		if _, err := os.Stat(filepath.Join(dir, entry.lockfile)); err == nil {
			return entry.manager
		}
	}
	return DefaultPackageManager
}

// composeFileNames lists the conventional compose file names, checked before
// docker-compose steps run
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// hasComposeFile reports whether any conventional compose file exists in dir
func hasComposeFile(dir string) bool {
	for _, name := range composeFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
