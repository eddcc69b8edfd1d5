// Command apigen generates source trees from an OpenAPI document and a
// generator bundle of templates.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apigen",
	Short: "Generate source files from an OpenAPI document and a template bundle",
	Long: `apigen renders an OpenAPI contract through a generator: a directory
holding template/ plus optional helpers/ and partials/ extension points.

Examples:
  # Generate from a local schema and generator
  apigen generate --schema api.yaml --generator ./generators/go-client --output ./out

  # Clone a remote generator and skip markdown templates
  apigen generate --schema https://example.com/api.json \
    --generator https://github.com/acme/apigen-go.git \
    --output ./out --exclude '*.md'

  # Scaffold a new generator bundle
  apigen new ./generators/my-generator`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
