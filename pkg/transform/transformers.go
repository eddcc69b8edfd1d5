package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-apigen/pkg/schema"
)

// PruneVendorExtensions returns a transformer that strips x- prefixed keys
// from every mapping in the document, reducing noise for generators that do
// not consume vendor extensions.
func PruneVendorExtensions() Transformer {
	return TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
		if doc == nil {
			return nil
		}
		pruneExtensions(doc.Root())
		return nil
	})
}

func pruneExtensions(node any) {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			if strings.HasPrefix(key, "x-") {
				delete(v, key)
				continue
			}
			pruneExtensions(value)
		}
	case []any:
		for _, item := range v {
			pruneExtensions(item)
		}
	}
}

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// DefaultOperationIDs returns a transformer that fills a missing operationId
// on every path operation, derived from the method and path, so templates can
// rely on the field being present.
func DefaultOperationIDs() Transformer {
	return TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
		if doc == nil {
			return nil
		}
		paths, ok := doc.Root()["paths"].(map[string]any)
		if !ok {
			return nil
		}
		for route, item := range paths {
			operations, ok := item.(map[string]any)
			if !ok {
				continue
			}
			for _, method := range httpMethods {
				op, ok := operations[method].(map[string]any)
				if !ok {
					continue
				}
				if id, ok := op["operationId"].(string); ok && id != "" {
					continue
				}
				op["operationId"] = fmt.Sprintf("%s%s", method, slugifyRoute(route))
			}
		}
		return nil
	})
}

// slugifyRoute turns /pets/{petId}/photos into PetsByPetIdPhotos.
func slugifyRoute(route string) string {
	var sb strings.Builder
	for _, segment := range strings.Split(route, "/") {
		if segment == "" {
			continue
		}
		param := false
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segment = strings.Trim(segment, "{}")
			param = true
		}
		if segment == "" {
			continue
		}
		if param {
			sb.WriteString("By")
		}
		sb.WriteString(strings.ToUpper(segment[:1]))
		if len(segment) > 1 {
			sb.WriteString(segment[1:])
		}
	}
	return sb.String()
}
