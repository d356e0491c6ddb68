package character

import (
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

// ParseValue turns user text into a field value: booleans, then whole
// numbers, then decimals, else the trimmed text
func ParseValue(text string) any {
	text = strings.TrimSpace(text)

	switch strings.ToLower(text) {
	case "true", "sim":
		return true
	case "false", "não", "nao":
		return false
	}

	if n, err := strconv.Atoi(text); err == nil {
		return float64(n)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}

	return text
}

func splitPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, dnderr.InvalidArgument("field path is required")
	}

	parts := strings.Split(path, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, dnderr.InvalidArgumentf("invalid field path '%s'", path)
		}
	}
	return parts, nil
}

// setPath assigns value at a dotted path. Parents must already be objects;
// lists are edited through AddItem and RemoveItem only.
func setPath(fields map[string]any, path string, value any) error {
	parts, err := splitPath(path)
	if err != nil {
		return err
	}

	current := fields
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return dnderr.InvalidArgumentf("'%s' is not an object in path '%s'", part, path)
		}
		current = next
	}

	leaf := parts[len(parts)-1]
	if _, isList := current[leaf].([]any); isList {
		return dnderr.InvalidArgumentf("'%s' is a list; add or remove entries instead", path)
	}
	if _, isObject := current[leaf].(map[string]any); isObject {
		return dnderr.InvalidArgumentf("'%s' is an object; set one of its keys instead", path)
	}

	current[leaf] = value
	return nil
}

func listAt(fields map[string]any, field string) ([]any, error) {
	raw, exists := fields[field]
	if !exists {
		return nil, dnderr.InvalidArgumentf("sheet has no list '%s'", field)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, dnderr.InvalidArgumentf("'%s' is not a list", field)
	}
	return list, nil
}
