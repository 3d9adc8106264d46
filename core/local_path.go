package core

import (
	"path/filepath"
	"strings"

	"github.com/smartystreets/artifact-poller/contracts"
)

const SQLiteScheme = "sqlite://"

// ProtectedPaths lists the local files a checkout must never wipe: the config
// file and the local state (a directory or a sqlite database).
func ProtectedPaths(config contracts.PollConfig) (paths []string) {
	if config.JSONPath != "" && config.JSONPath != contracts.StdinPath {
		paths = append(paths, config.JSONPath)
	}
	location := strings.TrimSpace(config.StateLocation)
	switch {
	case location == "", IsGoogleCloudStorageLocation(location):
	case strings.HasPrefix(location, SQLiteScheme):
		paths = append(paths, strings.TrimPrefix(location, SQLiteScheme))
	default:
		paths = append(paths, location)
	}
	return paths
}

// Encloses reports whether path is directory itself or lies beneath it.
func Encloses(directory, path string) bool {
	relative, err := filepath.Rel(absolute(directory), absolute(path))
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}

func absolute(path string) string {
	if resolved, err := filepath.Abs(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
