package generate

import (
	"os"
	"path/filepath"
	"strings"
)

// ExtractSeed scans the tool's diagnostic text for the resolved seed. Within
// the first line containing "seed" (case-insensitive), the token following
// the first whitespace-delimited token that itself contains "seed" is taken,
// with a trailing colon stripped. Absence is not an error: the literal
// "unknown" is returned.
//
// The heuristic mirrors the tool's observed output ("Using seed: 42") and is
// deliberately not made smarter than that.
func ExtractSeed(diagnostics string) string {
	for _, line := range strings.Split(diagnostics, "\n") {
		if !strings.Contains(strings.ToLower(line), "seed") {
			continue
		}
		fields := strings.Fields(line)
		for i, tok := range fields {
			if strings.Contains(strings.ToLower(tok), "seed") && i+1 < len(fields) {
				return strings.TrimSuffix(fields[i+1], ":")
			}
		}
	}
	return "unknown"
}

// DetectSVGSibling derives the vector-format sibling of the primary output
// path and returns it only if a file exists there right now. No content
// validation is performed.
func DetectSVGSibling(primaryPath string) string {
	sibling := strings.TrimSuffix(primaryPath, filepath.Ext(primaryPath)) + ".svg"
	if _, err := os.Stat(sibling); err != nil {
		return ""
	}
	return sibling
}
