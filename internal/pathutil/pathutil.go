// Package pathutil provides path classification and display helpers.
package pathutil

import (
	"regexp"
	"strings"
)

var (
	// Matches a POSIX root or a Windows drive-letter prefix.
	absoluteRe = regexp.MustCompile(`^(/|[A-Za-z]:[\\/])`)

	// Home directory prefixes: macOS, Linux, Windows.
	homePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^/Users/[^/]+`),
		regexp.MustCompile(`^/home/[^/]+`),
		regexp.MustCompile(`^[A-Za-z]:\\Users\\[^\\]+`),
	}
)

// IsAbsolute reports whether p starts at a POSIX root or a Windows drive letter.
func IsAbsolute(p string) bool {
	return absoluteRe.MatchString(p)
}

// DetectHomeDir infers a shared home directory from a set of paths by matching
// known home prefixes. Returns the first match found, or "" when no path
// carries a recognizable home prefix.
func DetectHomeDir(paths []string) string {
	for _, p := range paths {
		for _, re := range homePatterns {
			if match := re.FindString(p); match != "" {
				return match
			}
		}
	}
	return ""
}

// DisplayPath shortens p for display by replacing the home prefix with "~".
// The remainder is preserved exactly; a path equal to home renders as "~".
// Paths outside home are returned unchanged.
func DisplayPath(p, home string) string {
	if home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+"/") || strings.HasPrefix(p, home+`\`) {
		return "~" + p[len(home):]
	}
	return p
}
