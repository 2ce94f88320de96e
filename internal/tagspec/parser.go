package tagspec

import (
	"fmt"
	"strings"

	"github.com/dyluth/fathom/pkg/catalog"
)

// Parse parses a tag filter of the form "name=value" into a tag name and value.
// The value is interpreted as:
//   - "true" or "false": a flag
//   - a comma separated list ("eerie,calm"): a list; blank items are dropped
//   - anything else: text
//
// Whitespace around the name, the value and each list item is ignored.
func Parse(spec string) (string, catalog.TagValue, error) {
	if strings.TrimSpace(spec) == "" {
		return "", catalog.TagValue{}, fmt.Errorf("empty tag specification")
	}

	name, raw, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)
	if !ok || name == "" || raw == "" {
		return "", catalog.TagValue{}, fmt.Errorf("invalid tag specification: %s (use name=value like 'mood=eerie' or 'mood=eerie,calm')", spec)
	}

	switch raw {
	case "true":
		return name, catalog.Flag(true), nil
	case "false":
		return name, catalog.Flag(false), nil
	}

	if !strings.Contains(raw, ",") {
		return name, catalog.Text(raw), nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return "", catalog.TagValue{}, fmt.Errorf("invalid tag specification: %s (list has no items)", spec)
	}
	return name, catalog.List(items...), nil
}

// ParseAll parses every --tag flag into a query tag map.
// Returns nil when no specs are given. Naming the same tag twice is an error.
func ParseAll(specs []string) (map[string]catalog.TagValue, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	tags := make(map[string]catalog.TagValue, len(specs))
	for _, spec := range specs {
		name, value, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid --tag: %w", err)
		}
		if _, exists := tags[name]; exists {
			return nil, fmt.Errorf("invalid --tag: %q given more than once (use a comma separated list to match any of several values)", name)
		}
		tags[name] = value
	}
	return tags, nil
}
