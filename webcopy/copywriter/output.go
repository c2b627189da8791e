package copywriter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const (
	dirPrefix       = "web_copy_"
	timestampLayout = "20060102_150405"
	maxTitleLength  = 100
)

var unsafeTitleChars = regexp.MustCompile(`[^\w\-. ]`)

// SanitizeTitle replaces every character outside [A-Za-z0-9_\-. ] with '_' and
// truncates the result to 100 characters.
func SanitizeTitle(title string) string {
	sanitized := unsafeTitleChars.ReplaceAllString(title, "_")
	if len(sanitized) > maxTitleLength {
		sanitized = sanitized[:maxTitleLength]
	}
	return sanitized
}

// DirName returns the run directory name for t.
func DirName(t time.Time) string {
	return dirPrefix + t.Format(timestampLayout)
}

// CreateCopyDir creates root/web_copy_<timestamp>. An existing directory is reused.
func CreateCopyDir(root string, now time.Time) (string, error) {
	dir := filepath.Join(root, DirName(now))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create copy directory %s: %w", dir, err)
	}
	return dir, nil
}

// PagePath is where the copy for pageName lands inside dir.
func PagePath(dir, pageName string) string {
	return filepath.Join(dir, SanitizeTitle(pageName)+".txt")
}

// WriteCopy writes text to the page's file, replacing any previous content.
func WriteCopy(dir, pageName, text string) (string, error) {
	path := PagePath(dir, pageName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write copy for page %q: %w", pageName, err)
	}
	return path, nil
}
