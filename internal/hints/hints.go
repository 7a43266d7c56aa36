// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-orgfix/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first searched path under a config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "orgfix" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPermission returns hints for pages that cannot be rewritten in place.
func ForPermission() string {
	return format("check file permissions or use --output to write to another directory")
}

// ForNoHTMLFound returns hints when a site tree holds no pages.
func ForNoHTMLFound(root string) string {
	return format("is " + root + " the publishing directory? set site.root in the config or pass the path")
}

// ForLinkLayout returns hints for invalid daily entry layouts.
func ForLinkLayout() string {
	return format("tokens: YYYY YY MMMM MMM MM M dddd ddd DD D; wrap literal text in [brackets]")
}

// ForWatchLimit returns hints when the OS refuses more file watches.
// Inside a container the limit can only be raised on the host.
func ForWatchLimit() string {
	hint := "raise fs.inotify.max_user_watches with sysctl"
	if IsInContainer() {
		hint += " on the container host"
	}
	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
