// Package validate checks the structural validity of a schema document
// against the OpenAPI contract. The default implementation delegates the
// heavy lifting to kin-openapi while guaranteeing the caller's document is
// never mutated: every pass operates on a deep, independent copy.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mohae/deepcopy"
)

// Validator is the contract consumed by the orchestrator. Implementations
// must return either nil or an *AggregateError carrying every violation
// found, and must not mutate the supplied mapping.
type Validator interface {
	Validate(ctx context.Context, root map[string]any) error
}

// OpenAPIValidator is the built-in Validator backed by kin-openapi.
type OpenAPIValidator struct{}

var _ Validator = (*OpenAPIValidator)(nil)

// New returns the default OpenAPI structural validator.
func New() *OpenAPIValidator {
	return &OpenAPIValidator{}
}

// Validate checks the document structure and aggregates all reported
// violations. Some validators normalise in place, so the pass runs against a
// deep copy and the input is left untouched on every path.
func (v *OpenAPIValidator) Validate(ctx context.Context, root map[string]any) error {
	if root == nil {
		return &AggregateError{Violations: []Violation{{Message: "document is nil"}}}
	}

	clone := deepcopy.Copy(root).(map[string]any)

	violations := requiredSections(clone)

	// Only hand the document to kin-openapi once the skeleton is in place;
	// it reports missing top-level sections as opaque load failures.
	if len(violations) == 0 {
		violations = append(violations, kinValidate(ctx, clone)...)
	}

	if len(violations) > 0 {
		return &AggregateError{Violations: violations}
	}
	return nil
}

// requiredSections collects every missing or malformed top-level section
// rather than stopping at the first.
func requiredSections(root map[string]any) []Violation {
	var out []Violation

	if _, ok := root["openapi"].(string); !ok {
		out = append(out, Violation{Message: "missing or non-string openapi version field", Path: "$.openapi"})
	}
	if _, ok := root["info"].(map[string]any); !ok {
		out = append(out, Violation{Message: "missing info section", Path: "$.info"})
	}
	if _, ok := root["paths"].(map[string]any); !ok {
		out = append(out, Violation{Message: "missing paths section", Path: "$.paths"})
	}

	components, ok := root["components"].(map[string]any)
	if !ok {
		out = append(out, Violation{Message: "missing components section", Path: "$.components"})
		return out
	}
	if _, ok := components["schemas"].(map[string]any); !ok {
		out = append(out, Violation{Message: "missing components.schemas mapping", Path: "$.components.schemas"})
	}
	return out
}

func kinValidate(ctx context.Context, root map[string]any) []Violation {
	encoded, err := json.Marshal(root)
	if err != nil {
		return []Violation{{Message: fmt.Sprintf("document is not encodable: %v", err)}}
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(encoded)
	if err != nil {
		return []Violation{{Message: err.Error()}}
	}

	if err := doc.Validate(ctx); err != nil {
		return collectViolations(err)
	}
	return nil
}

// collectViolations flattens kin-openapi's error shapes: MultiError fans out
// into individual violations and SchemaError contributes its JSON pointer as
// the location path.
func collectViolations(err error) []Violation {
	if err == nil {
		return nil
	}

	if multi, ok := err.(openapi3.MultiError); ok {
		var out []Violation
		for _, item := range multi {
			out = append(out, collectViolations(item)...)
		}
		return out
	}

	if schemaErr, ok := err.(*openapi3.SchemaError); ok {
		return []Violation{{
			Message: schemaErr.Reason,
			Path:    jsonPointerPath(schemaErr.JSONPointer()),
		}}
	}

	return []Violation{{Message: err.Error()}}
}

// jsonPointerPath converts pointer parts ["paths", "/pets", "get"] into
// $.paths./pets.get style locations; array indexes render as [n].
func jsonPointerPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("$")
	for _, part := range parts {
		if part == "" {
			continue
		}
		if isIndex(part) {
			sb.WriteString("[")
			sb.WriteString(part)
			sb.WriteString("]")
			continue
		}
		sb.WriteString(".")
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
