package loader

import (
	"encoding/json"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-apigen/pkg/schema"
)

// decode parses the payload as YAML when the reference carries a .yml/.yaml
// extension and as strict JSON otherwise. YAML payloads are normalised through
// a JSON round trip so equivalent JSON and YAML inputs produce structurally
// identical mappings (string keys, float64 numbers).
func decode(reference string, data []byte) (map[string]any, error) {
	if isYAML(reference) {
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &schema.ParseError{Reference: reference, Format: "yaml", Cause: err}
		}
		normalised, err := normalise(raw)
		if err != nil {
			return nil, &schema.ParseError{Reference: reference, Format: "yaml", Cause: err}
		}
		return normalised, nil
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &schema.ParseError{Reference: reference, Format: "json", Cause: err}
	}
	return root, nil
}

func isYAML(reference string) bool {
	switch strings.ToLower(path.Ext(reference)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

func normalise(raw map[string]any) (map[string]any, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
