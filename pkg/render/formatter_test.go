package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-apigen/pkg/render"
)

func TestGoFormatterFormatsGoOutput(t *testing.T) {
	src := []byte("package x\nfunc  Hello( )string{return fmt.Sprintf(\"hi\")}\n")

	formatted, err := render.NewGoFormatter().Format("models.go", src)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	got := string(formatted)
	if !strings.Contains(got, "func Hello() string") {
		t.Fatalf("expected gofmt spacing, got:\n%s", got)
	}
	if !strings.Contains(got, `"fmt"`) {
		t.Fatalf("expected missing import to be added, got:\n%s", got)
	}
}

func TestGoFormatterPassesThroughOtherLanguages(t *testing.T) {
	src := []byte("def   hello():pass")

	formatted, err := render.NewGoFormatter().Format("models.py", src)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if string(formatted) != string(src) {
		t.Fatal("non-Go output must pass through untouched")
	}
}

func TestGoFormatterReportsInvalidGo(t *testing.T) {
	if _, err := render.NewGoFormatter().Format("broken.go", []byte("this is not go")); err == nil {
		t.Fatal("expected error for unparseable Go source")
	}
}
