// Package naming holds the file-naming convention: how temp file affixes
// and output file names are made safe for the file system.
package naming

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	consecutiveUnderscores = regexp.MustCompile(`_+`)

	// invalidChars cannot appear in a file name on at least one platform.
	invalidChars = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "\x00"}
)

// StdinName is the output name used for data read from standard input.
const StdinName = "stdin"

// SanitizeAffix makes a temp file prefix or suffix safe to join into a
// name: invalid characters become underscores and runs of underscores are
// compressed. Unlike SanitizeName it keeps leading and trailing
// underscores and may return "".
//
// Example:
//   - "report/" -> "report_"
//   - "../x" -> ".._x"
//   - ".tar.gz" -> ".tar.gz"
func SanitizeAffix(s string) string {
	result := s
	for _, char := range invalidChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	return consecutiveUnderscores.ReplaceAllString(result, "_")
}

// SanitizeName turns an arbitrary string into a usable file name.
// Invalid characters are replaced with underscores, consecutive
// underscores are compressed, and leading/trailing spaces and underscores
// are trimmed. An empty result becomes "unnamed".
//
// Example:
//   - "user/data:v1" -> "user_data_v1"
//   - "file<name>" -> "file_name"
//   - "a//b::c" -> "a_b_c"
func SanitizeName(name string) string {
	result := strings.Trim(SanitizeAffix(name), " _")
	if result == "" || result == "." || result == ".." {
		result = "unnamed"
	}
	return result
}

// OutputName derives the file name an input is saved under. Paths keep
// their base name, "-" maps to StdinName. With addHash a short hash of the
// full input is inserted before the extension, so inputs sharing a base
// name do not collide.
//
// Format:
//   - Without hash: {name}{.ext}
//   - With hash: {name}_{hash}{.ext}
func OutputName(input string, addHash bool) string {
	base := StdinName
	if input != "-" {
		base = SanitizeName(filepath.Base(input))
	}

	if !addHash {
		return base
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}
	return fmt.Sprintf("%s_%s%s", stem, hashString(input), ext)
}

// hashString returns the first 6 hex characters of the SHA-256 of s.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h[:3])
}

// Conflicts reports which inputs would share an output name.
func Conflicts(inputs []string) map[string]bool {
	count := make(map[string]int, len(inputs))
	for _, in := range inputs {
		count[OutputName(in, false)]++
	}

	out := make(map[string]bool)
	for _, in := range inputs {
		if count[OutputName(in, false)] > 1 {
			out[in] = true
		}
	}
	return out
}
