// internal/app/params.go
package app

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseParams reads "key=value,key=value" into a raw input map. Values are
// bools, ints, floats, quoted or bare strings, or "|"-separated int lists
// such as array=5|3|8. Later keys overwrite earlier ones.
func ParseParams(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := make(map[string]any)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", part)
		}

		key := strings.TrimSpace(kv[0])
		if key == "" {
			return nil, fmt.Errorf("empty key in parameter %q", part)
		}

		val, err := parseLiteral(kv[1])
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		out[key] = val
	}

	return out, nil
}

func parseLiteral(s string) (any, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "|") {
		return parseIntList(s)
	}

	if s == "true" {
		return true, nil
	}
	if s == "false" {
		return false, nil
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		if s[0] == '\'' {
			s = `"` + s[1:len(s)-1] + `"`
		}
		if unq, err := strconv.Unquote(s); err == nil {
			return unq, nil
		}
	}

	return s, nil
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, item := range strings.Split(s, "|") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid list element %q", item)
		}
		out = append(out, v)
	}
	return out, nil
}
