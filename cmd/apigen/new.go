package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-apigen/pkg/generator"
)

var newYes bool

var newCmd = &cobra.Command{
	Use:   "new <directory>",
	Short: "Scaffold a generator bundle",
	Long: `Scaffold a generator bundle: template/ with a starter template plus
optional helpers/ and partials/ extension points. The result is immediately
usable with apigen generate.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "accept defaults without prompting")
	rootCmd.AddCommand(newCmd)
}

type scaffoldAnswers struct {
	Name     string
	Helpers  bool
	Partials bool
}

func runNew(cmd *cobra.Command, args []string) error {
	root := args[0]
	if _, err := os.Stat(filepath.Join(root, generator.TemplateDirName)); err == nil {
		return fmt.Errorf("%s already contains a generator bundle", root)
	}

	answers := scaffoldAnswers{
		Name:     filepath.Base(root),
		Helpers:  true,
		Partials: true,
	}
	if !newYes {
		questions := []*survey.Question{
			{
				Name:   "name",
				Prompt: &survey.Input{Message: "Generator name:", Default: answers.Name},
			},
			{
				Name:   "helpers",
				Prompt: &survey.Confirm{Message: "Include a helpers/ extension point?", Default: true},
			},
			{
				Name:   "partials",
				Prompt: &survey.Confirm{Message: "Include a partials/ extension point?", Default: true},
			},
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
	}

	if err := scaffold(root, answers); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generator %q scaffolded at %s\n", answers.Name, root)
	return nil
}

func scaffold(root string, answers scaffoldAnswers) error {
	files := map[string]string{
		filepath.Join(generator.TemplateDirName, "models.txt.tpl"): starterTemplate(answers.Partials),
		filepath.Join(generator.TemplateDirName, "README.md"):      "# " + answers.Name + "\n\nGenerated by apigen.\n",
	}
	if answers.Helpers {
		files[filepath.Join(generator.HelpersDirName, "naming.tpl")] = starterHelper
	}
	if answers.Partials {
		files[filepath.Join(generator.PartialsDirName, "header.tpl")] = starterPartial
	}

	for rel, content := range files {
		target := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// starterTemplate only references the header partial when the scaffold
// actually writes it, so every answer combination renders out of the box.
func starterTemplate(withPartials bool) string {
	if withPartials {
		return "{% include \"header\" %}\n" + starterTemplateBody
	}
	return starterTemplateBody
}

const starterTemplateBody = `Models:
{% for name, model in components.schemas %}- {{ name }}
{% endfor %}
Endpoints:
{% for route, item in paths %}- {{ route }}
{% endfor %}
`

const starterHelper = `{% macro qualify(name) %}{{ name|pascalcase }}{% endmacro %}`

const starterPartial = `// Code generated by apigen. DO NOT EDIT.
`
