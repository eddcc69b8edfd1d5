package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-apigen/pkg/generator"
	"github.com/goliatone/go-apigen/pkg/orchestrator"
)

func TestScaffoldProducesUsableBundle(t *testing.T) {
	root := filepath.Join(t.TempDir(), "petstore-generator")

	answers := scaffoldAnswers{Name: "petstore-generator", Helpers: true, Partials: true}
	if err := scaffold(root, answers); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	// The scaffold must be a valid bundle as-is.
	desc, err := generator.NewResolver().Resolve(context.Background(), root)
	if err != nil {
		t.Fatalf("scaffolded bundle rejected: %v", err)
	}
	if desc.Owned() {
		t.Fatal("local scaffold must not be owned")
	}

	// And it must render against a real document without edits.
	outputDir := t.TempDir()
	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Document: map[string]any{
			"openapi":    "3.0.3",
			"info":       map[string]any{"title": "pets", "version": "1.0.0"},
			"components": map[string]any{"schemas": map[string]any{"Pet": map[string]any{"type": "object"}}},
			"paths": map[string]any{
				"/pets": map[string]any{
					"get": map[string]any{
						"operationId": "listPets",
						"responses":   map[string]any{"200": map[string]any{"description": "ok"}},
					},
				},
			},
		},
		Generator: root,
		Options:   orchestrator.RunOptions{Output: outputDir},
	})
	if err != nil {
		t.Fatalf("generate with scaffold: %v", err)
	}
	if report.Rendered != 1 {
		t.Fatalf("expected the starter template rendered, got %+v", report)
	}

	rendered, err := os.ReadFile(filepath.Join(outputDir, "models.txt"))
	if err != nil {
		t.Fatalf("read rendered output: %v", err)
	}
	got := string(rendered)
	if !strings.Contains(got, "DO NOT EDIT") {
		t.Fatalf("expected the header partial in the output:\n%s", got)
	}
	if !strings.Contains(got, "- Pet") || !strings.Contains(got, "- /pets") {
		t.Fatalf("expected models and endpoints listed:\n%s", got)
	}
}

func TestScaffoldWithoutPartialsRendersEndToEnd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bare-generator")

	answers := scaffoldAnswers{Name: "bare-generator", Helpers: false, Partials: false}
	if err := scaffold(root, answers); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, generator.PartialsDirName)); !os.IsNotExist(err) {
		t.Fatal("declined partials must not be written")
	}

	outputDir := t.TempDir()
	report, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		Document: map[string]any{
			"openapi":    "3.0.3",
			"info":       map[string]any{"title": "pets", "version": "1.0.0"},
			"components": map[string]any{"schemas": map[string]any{"Pet": map[string]any{"type": "object"}}},
			"paths":      map[string]any{},
		},
		Generator: root,
		Options:   orchestrator.RunOptions{Output: outputDir},
	})
	if err != nil {
		t.Fatalf("a scaffold without partials must still render: %v", err)
	}
	if report.Rendered != 1 {
		t.Fatalf("expected the starter template rendered, got %+v", report)
	}

	rendered, err := os.ReadFile(filepath.Join(outputDir, "models.txt"))
	if err != nil {
		t.Fatalf("read rendered output: %v", err)
	}
	got := string(rendered)
	if strings.Contains(got, "DO NOT EDIT") {
		t.Fatalf("header partial leaked into a partial-less scaffold:\n%s", got)
	}
	if !strings.Contains(got, "- Pet") {
		t.Fatalf("expected models listed:\n%s", got)
	}
}

func TestScaffoldRefusesExistingBundle(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, generator.TemplateDirName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cmd := newCmd
	cmd.SetArgs([]string{root})
	newYes = true
	defer func() { newYes = false }()

	if err := runNew(cmd, []string{root}); err == nil {
		t.Fatal("expected refusal for a directory that already holds a bundle")
	}
}
