package envvar

import (
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
// Groups: 1 = variable name, 2 = optional default value (after :-).
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

const (
	minGroupsForVarName = 2
	defaultSyntaxMarker = ":-"
)

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with their values
// looked up through the provided lookup function. A nil lookup uses os.LookupEnv.
//
// Placeholders whose variable is unset (or set to the empty string) resolve to the
// default when one is given, otherwise to an empty string and a warning is logged.
func Expand(value string, lookup func(string) (string, bool)) string {
	if value == "" {
		return value
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return expandMatch(match, lookup)
	})
}

// ExpandAll expands every element of values and returns a new slice.
func ExpandAll(values []string, lookup func(string) (string, bool)) []string {
	expanded := make([]string, 0, len(values))

	for _, value := range values {
		expanded = append(expanded, Expand(value, lookup))
	}

	return expanded
}

// LookupNonEmpty returns the value of the named variable and whether it holds
// anything. A variable set to the empty string is reported as absent.
func LookupNonEmpty(name string, lookup func(string) (string, bool)) (string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, ok := lookup(name)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// MapLookup adapts a map to the lookup signature used in this package.
func MapLookup(values map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := values[name]

		return value, ok
	}
}

func expandMatch(match string, lookup func(string) (string, bool)) string {
	groups := pattern.FindStringSubmatch(match)
	if len(groups) < minGroupsForVarName {
		return match
	}

	if value, ok := LookupNonEmpty(groups[1], lookup); ok {
		return value
	}

	return resolveDefault(match, groups)
}

// resolveDefault returns the value used when a placeholder's variable is not set.
func resolveDefault(match string, groups []string) string {
	if len(groups) > 2 && groups[2] != "" {
		return groups[2]
	}

	// ${VAR:-} is an explicit empty default.
	if strings.Contains(match, defaultSyntaxMarker) {
		return ""
	}

	slog.Warn("environment variable not set", "variable", groups[1])

	return ""
}
