// Package validation checks loosely typed webhook payloads before they are
// decoded into model inputs.
package validation

import (
	"regexp"
	"strings"
)

// MissingFields returns every required dotted path that can't be resolved on
// payload or that resolves to null or "", in the order given.
func MissingFields(payload Value, required []string) []string {
	missing := []string{}
	for _, path := range required {
		field, ok := payload.Lookup(path)
		if !ok || field.IsBlank() {
			missing = append(missing, path)
		}
	}
	return missing
}

var instagramHandlePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{1,30}$`)

// NormalizeInstagramHandle strips one leading "@" and reports whether what is
// left is a valid Instagram handle.
func NormalizeInstagramHandle(raw string) (string, bool) {
	handle := strings.TrimPrefix(raw, "@")
	return handle, instagramHandlePattern.MatchString(handle)
}
