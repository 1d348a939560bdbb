package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/breezy-run/breezy/pkg/config"
	runerrors "github.com/breezy-run/breezy/pkg/errors"
)

var configFilePath string

// printableConfig mirrors the on-disk schema so the resolved config renders
// with the same keys users write.
type printableConfig struct {
	Language       string              `yaml:"language,omitempty"`
	TagTemplate    string              `yaml:"tag-template,omitempty"`
	NameTemplate   string              `yaml:"name-template,omitempty"`
	Categories     []printableCategory `yaml:"categories,omitempty"`
	ExcludeLabels  []string            `yaml:"exclude-labels,omitempty"`
	ChangeTemplate string              `yaml:"change-template"`
	Template       string              `yaml:"template,omitempty"`
}

type printableCategory struct {
	Title  string   `yaml:"title"`
	Labels []string `yaml:"labels"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Resolve and print the effective release configuration",
	Long: `Resolve and print the effective release configuration.

The config is looked up at the explicit --config-file path, then
$HOME/.github/breezy.yml, then .github/breezy.yml in the working directory.
Labels are shown normalized the way the changelog composer compares them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		cfg, err := config.Load(configFilePath, cwd)
		if err != nil {
			return runerrors.NewConfigError(err.Error(),
				"Check the config file path and YAML syntax").WithCause(err)
		}
		if cfg == nil {
			fmt.Println("no release config found; defaults apply")
			return nil
		}

		printable := printableConfig{
			Language:       cfg.Language,
			TagTemplate:    cfg.TagTemplate,
			NameTemplate:   cfg.NameTemplate,
			ExcludeLabels:  cfg.ExcludeLabels,
			ChangeTemplate: cfg.ChangeTemplate,
			Template:       cfg.Template,
		}
		for _, category := range cfg.Categories {
			printable.Categories = append(printable.Categories, printableCategory{
				Title:  category.Title,
				Labels: category.Labels,
			})
		}

		rendered, err := yaml.Marshal(printable)
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}
		fmt.Print(string(rendered))
		return nil
	},
}

func init() {
	configCmd.Flags().StringVarP(&configFilePath, "config-file", "c", "", "Path to the release config file")
	rootCmd.AddCommand(configCmd)
}
