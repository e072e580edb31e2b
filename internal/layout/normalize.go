package layout

import (
	"path"
	"strings"

	"elekit/pkg/serrors"
)

// NormalizePath returns a canonical, slash-separated path relative to the
// scaffold root.
//
// The normalization rules are intentionally strict so a layout can never
// write outside the scaffold root:
//   - Backslashes are treated as separators and converted
//   - The path is cleaned (dot-segments resolved, duplicate slashes collapsed)
//   - A trailing slash is removed
//   - Absolute paths are rejected
//   - Paths escaping the root ("..", "a/../../b") are rejected
//   - Empty paths and the bare root (".") are rejected
func NormalizePath(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", serrors.With(serrors.ErrInvalid, "empty path")
	}

	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "/") {
		return "", serrors.With(serrors.ErrInvalid, "absolute path not allowed: %q", raw)
	}
	// windows drive or UNC leftovers
	if strings.Contains(p, ":") {
		return "", serrors.With(serrors.ErrInvalid, "path contains ':': %q", raw)
	}

	p = path.Clean(p)
	if p == "." {
		return "", serrors.With(serrors.ErrInvalid, "path resolves to the scaffold root: %q", raw)
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", serrors.With(serrors.ErrInvalid, "path escapes the scaffold root: %q", raw)
	}

	return p, nil
}
