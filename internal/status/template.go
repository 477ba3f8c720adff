package status

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{([a-z0-9-]+)\}\}`)

// Variables lists every template variable in display order.
var Variables = []string{"count", "latest", "latest-name", "source", "backend", "facing", "has-photos"}

// Parse returns the variables used by template, without duplicates.
func Parse(template string) []string {
	seen := make(map[string]bool)
	var vars []string
	for _, match := range variablePattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			vars = append(vars, match[1])
		}
	}
	return vars
}

// Validate checks delimiters and that every variable is known.
func Validate(template string) error {
	opens, closes := strings.Count(template, "{{"), strings.Count(template, "}}")
	if opens != closes {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d closes", opens, closes)
	}
	for _, v := range Parse(template) {
		if _, err := resolve(v, Summary{}); err != nil {
			return err
		}
	}
	return nil
}

// Substitute replaces every {{variable}} in template with its value.
func Substitute(template string, s Summary) (string, error) {
	var firstErr error
	out := variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		value, err := resolve(match[2:len(match)-2], s)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func resolve(name string, s Summary) (string, error) {
	switch name {
	case "count":
		return strconv.Itoa(s.Count), nil
	case "latest":
		return s.Latest, nil
	case "latest-name":
		return s.LatestName(), nil
	case "source":
		return s.Source(), nil
	case "backend":
		return s.Backend, nil
	case "facing":
		return s.Facing, nil
	case "has-photos":
		return strconv.FormatBool(s.Count > 0), nil
	default:
		return "", fmt.Errorf("unknown variable %q (available: %s)", name, strings.Join(Variables, ", "))
	}
}
