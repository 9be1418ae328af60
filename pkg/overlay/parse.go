package overlay

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when overlay data is not a mapping of mappings.
var ErrMalformed = errors.New("malformed overlay data")

// ParseJSON reads {"location": {"from": "to", ...}, ...}. Key order inside
// each location is kept as written, which a map-based decode would lose.
func ParseJSON(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	entries := make(map[string][]Pair)
	root.ForEach(func(loc, subs gjson.Result) bool {
		// Non-object values are skipped rather than failing the whole table.
		if !subs.IsObject() {
			return true
		}
		subs.ForEach(func(from, to gjson.Result) bool {
			entries[loc.String()] = append(entries[loc.String()], Pair{From: from.String(), To: to.String()})
			return true
		})
		return true
	})
	return NewTable(entries), nil
}

// ParseYAML reads the same shape as ParseJSON from YAML, again in document
// order.
func ParseYAML(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc.Kind == 0 {
		return Empty(), nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: expected a document", ErrMalformed)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformed)
	}

	entries := make(map[string][]Pair)
	for i := 0; i+1 < len(root.Content); i += 2 {
		loc, subs := root.Content[i].Value, root.Content[i+1]
		if subs.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(subs.Content); j += 2 {
			entries[loc] = append(entries[loc], Pair{From: subs.Content[j].Value, To: subs.Content[j+1].Value})
		}
	}
	return NewTable(entries), nil
}

// Parse picks a decoder from the file name extension, defaulting to JSON.
func Parse(name string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
