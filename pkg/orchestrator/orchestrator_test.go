package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-apigen/pkg/generator"
	"github.com/goliatone/go-apigen/pkg/orchestrator"
	"github.com/goliatone/go-apigen/pkg/schema"
	"github.com/goliatone/go-apigen/pkg/transform"
	"github.com/goliatone/go-apigen/pkg/validate"
)

const petstoreSchema = `{
  "openapi": "3.0.3",
  "info": {"title": "pets", "version": "1.0.0"},
  "components": {
    "schemas": {
      "Pet": {"type": "object"},
      "Owner": {"type": "object"},
      "Tag": {"type": "string"}
    }
  },
  "paths": {
    "/pets": {
      "get": {"operationId": "listPets", "responses": {"200": {"description": "ok"}}}
    },
    "/owners": {
      "get": {"operationId": "listOwners", "responses": {"200": {"description": "ok"}}}
    }
  }
}`

func writeBundleFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// petstoreBundle builds a complete local generator: a template, a static
// file, and a partial included by the template.
func petstoreBundle(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeBundleFile(t, root, "template/models.txt.tpl",
		"{% include \"header\" %}\ntitle: {{ info.title }}\noutput: {{ _options.output }}\n")
	writeBundleFile(t, root, "template/static.txt", "static content")
	writeBundleFile(t, root, "partials/header.tpl", "== generated ==")
	return root
}

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	outputDir := t.TempDir()

	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: petstoreBundle(t),
		Options:   orchestrator.RunOptions{Output: outputDir},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Counters.ModelCount)
	assert.Equal(t, 2, report.Counters.EndpointCount)
	assert.Equal(t, 1, report.Rendered)
	assert.Equal(t, 1, report.Copied)
	assert.Equal(t, 0, report.Skipped)

	rendered, err := os.ReadFile(filepath.Join(outputDir, "models.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "== generated ==")
	assert.Contains(t, string(rendered), "title: pets")
	assert.Contains(t, string(rendered), "output: "+outputDir)

	static, err := os.ReadFile(filepath.Join(outputDir, "static.txt"))
	require.NoError(t, err)
	assert.Equal(t, "static content", string(static))

	assert.Contains(t, report.Summary(), "3 models, 2 endpoints")
}

func TestRunWithInMemoryDocument(t *testing.T) {
	outputDir := t.TempDir()

	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Document: map[string]any{
			"openapi":    "3.0.3",
			"info":       map[string]any{"title": "inline", "version": "0.1.0"},
			"paths":      map[string]any{},
			"components": map[string]any{"schemas": map[string]any{}},
		},
		Generator: petstoreBundle(t),
		Options:   orchestrator.RunOptions{Output: outputDir},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Counters.ModelCount)

	rendered, err := os.ReadFile(filepath.Join(outputDir, "models.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "title: inline")
}

func TestRunExcludeGlob(t *testing.T) {
	outputDir := t.TempDir()
	bundle := petstoreBundle(t)
	writeBundleFile(t, bundle, "template/readme.md", "docs")

	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: bundle,
		Options:   orchestrator.RunOptions{Output: outputDir, Exclude: "*.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	_, statErr := os.Stat(filepath.Join(outputDir, "readme.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunInvalidSchemaAggregatesViolations(t *testing.T) {
	_, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, `{"openapi": "3.0.3"}`),
		Generator: petstoreBundle(t),
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)

	var aggregate *validate.AggregateError
	require.ErrorAs(t, err, &aggregate)
	assert.GreaterOrEqual(t, len(aggregate.Violations), 3)
}

func TestRunSkipValidationToleratesInvalidSchema(t *testing.T) {
	outputDir := t.TempDir()
	bundle := t.TempDir()
	writeBundleFile(t, bundle, "template/out.txt.tpl", "models: {{ _options.skipValidation }}")

	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, `{"openapi": "3.0.3"}`),
		Generator: bundle,
		Options:   orchestrator.RunOptions{Output: outputDir, SkipValidation: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Counters.ModelCount)

	rendered, err := os.ReadFile(filepath.Join(outputDir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "models: True", string(rendered))
}

func TestRunReleasesRemoteGeneratorAfterSuccess(t *testing.T) {
	var clonedInto string
	resolver := generator.NewResolver(generator.WithCloner(
		generator.ClonerFunc(func(ctx context.Context, url, dir string) error {
			clonedInto = dir
			return os.MkdirAll(filepath.Join(dir, "template"), 0o755)
		}),
	))

	_, err := orchestrator.New(orchestrator.WithResolver(resolver)).Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: "https://github.com/acme/generator.git",
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	require.NoError(t, err)
	require.NotEmpty(t, clonedInto)

	_, statErr := os.Stat(clonedInto)
	assert.True(t, os.IsNotExist(statErr), "owned clone must be removed after a successful run")
}

func TestRunReleasesRemoteGeneratorAfterFailure(t *testing.T) {
	var clonedInto string
	resolver := generator.NewResolver(generator.WithCloner(
		generator.ClonerFunc(func(ctx context.Context, url, dir string) error {
			clonedInto = dir
			return os.MkdirAll(filepath.Join(dir, "template"), 0o755)
		}),
	))

	_, err := orchestrator.New(orchestrator.WithResolver(resolver)).Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, `{"openapi": "3.0.3"}`), // fails validation
		Generator: "https://github.com/acme/generator.git",
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	require.Error(t, err)
	require.NotEmpty(t, clonedInto)

	_, statErr := os.Stat(clonedInto)
	assert.True(t, os.IsNotExist(statErr), "owned clone must be removed after a failed run")
}

func TestRunTransformersApplyInOrder(t *testing.T) {
	outputDir := t.TempDir()
	bundle := t.TempDir()
	writeBundleFile(t, bundle, "template/out.txt.tpl", "{{ info.title }}")

	o := orchestrator.New(orchestrator.WithTransformers(
		transform.TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
			doc.Root()["info"].(map[string]any)["title"] = "first"
			return nil
		}),
		transform.TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
			info := doc.Root()["info"].(map[string]any)
			info["title"] = info["title"].(string) + "-second"
			return nil
		}),
	))

	_, err := o.Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: bundle,
		Options:   orchestrator.RunOptions{Output: outputDir},
	})
	require.NoError(t, err)

	rendered, err := os.ReadFile(filepath.Join(outputDir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first-second", string(rendered))
}

func TestRunTransformerErrorSurfacesUnwrapped(t *testing.T) {
	boom := errors.New("custom transformer failed")
	o := orchestrator.New(orchestrator.WithTransformers(
		transform.TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
			return boom
		}),
	))

	_, err := o.Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: petstoreBundle(t),
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	assert.Equal(t, boom, err)
}

func TestRunRecoversTransformerPanic(t *testing.T) {
	o := orchestrator.New(orchestrator.WithTransformers(
		transform.TransformerFunc(func(ctx context.Context, doc *schema.Document) error {
			panic("transformer exploded")
		}),
	))

	report, err := o.Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: petstoreBundle(t),
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "panic during run")
	assert.Contains(t, err.Error(), "transformer exploded")
}

func TestRunValidatesRequest(t *testing.T) {
	o := orchestrator.New()
	ctx := context.Background()

	_, err := o.Run(ctx, orchestrator.Request{Schema: "api.json", Options: orchestrator.RunOptions{Output: "out"}})
	assert.ErrorContains(t, err, "generator reference is required")

	_, err = o.Run(ctx, orchestrator.Request{Generator: "gen", Options: orchestrator.RunOptions{Output: "out"}})
	assert.ErrorContains(t, err, "schema reference or document is required")

	_, err = o.Run(ctx, orchestrator.Request{Generator: "gen", Schema: "api.json"})
	assert.ErrorContains(t, err, "output directory is required")
}

func TestRunInvalidGeneratorReference(t *testing.T) {
	_, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Schema:    writeSchemaFile(t, petstoreSchema),
		Generator: "https://github.com/acme/generator", // missing .git
		Options:   orchestrator.RunOptions{Output: t.TempDir()},
	})
	assert.ErrorIs(t, err, generator.ErrInvalidReference)
}

func TestFormatErrorLevels(t *testing.T) {
	aggregate := &validate.AggregateError{Violations: []validate.Violation{
		{Message: "missing paths section", Path: "$.paths"},
	}}

	summary := orchestrator.FormatError(aggregate, orchestrator.LevelStandard)
	assert.NotContains(t, summary, "$.paths")

	verbose := orchestrator.FormatError(aggregate, orchestrator.LevelVerbose)
	assert.Contains(t, verbose, "$.paths: missing paths section")
	assert.True(t, strings.HasPrefix(verbose, aggregate.Error()))

	assert.Empty(t, orchestrator.FormatError(nil, orchestrator.LevelVerbose))
}

func TestParseLevel(t *testing.T) {
	level, err := orchestrator.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.LevelStandard, level)

	level, err = orchestrator.ParseLevel("verbose")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.LevelVerbose, level)

	_, err = orchestrator.ParseLevel("chatty")
	assert.Error(t, err)
}
