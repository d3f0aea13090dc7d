package config

import (
	"github.com/relbump/relbump/internal/alphaflags"
	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/history"
	"github.com/relbump/relbump/internal/lock"
)

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"current_version": "",
		"version_source": map[string]interface{}{
			"path":    "",
			"pattern": DefaultVersionPattern,
		},
		"version_files": []string{},
		"image": map[string]interface{}{
			"name":  "",
			"files": []string{},
		},
		// changelogs: no default; each project declares its own.
		"changelogs":          []interface{}{},
		"commit_message_file": "",
		"changelog_marker":    changelog.DefaultMarker,
		"alpha_flags": map[string]interface{}{
			"file":  "",
			"table": alphaflags.DefaultTable,
		},
		"history": map[string]interface{}{
			"file":        history.DefaultFile,
			"max_entries": history.DefaultMaxEntries,
		},
		"lock_file":  lock.DefaultFile,
		"log_level":  "warn",
		"log_format": "text",
	}
}
