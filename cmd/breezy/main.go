package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/breezy-run/breezy/pkg/config"
	runerrors "github.com/breezy-run/breezy/pkg/errors"
	"github.com/breezy-run/breezy/pkg/github"
	"github.com/breezy-run/breezy/pkg/inputs"
	"github.com/breezy-run/breezy/pkg/log"
	"github.com/breezy-run/breezy/pkg/reconcile"
	"github.com/breezy-run/breezy/pkg/version"
)

var (
	flagDirectory  string
	flagTagPrefix  string
	flagLanguage   string
	flagConfigFile string
	flagToken      string
	flagDryRun     bool
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:           "breezy",
	Short:         "Breezy keeps one rolling draft release per branch up to date.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the rolling draft release for the current branch",
	Long: `Reconcile the rolling draft release for the current branch.

The run resolves the project version from its manifest, selects the managed
draft release by its body marker, deletes redundant extras, and creates or
updates the draft with a changelog built from merged pull requests. When a
published release already covers the current commit and no draft exists, the
run is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Config{Level: log.Level(logLevel)})

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		in, err := inputs.Resolve(cwd, inputs.Overrides{
			Directory:  flagDirectory,
			TagPrefix:  flagTagPrefix,
			Language:   flagLanguage,
			ConfigFile: flagConfigFile,
			Token:      flagToken,
		})
		if err != nil {
			return err
		}

		cfg, err := config.Load(in.ConfigFile, cwd)
		if err != nil {
			return runerrors.NewConfigError(err.Error(),
				"Check the config file path and YAML syntax").WithCause(err)
		}

		language, err := inputs.ResolveLanguage(in.Language, cfg)
		if err != nil {
			return err
		}
		languages := version.ParseLanguages(language)
		if len(languages) == 0 {
			return runerrors.NewInputError("no language archetypes provided",
				"Set the language input to rust, node, or an ordered combination")
		}

		root := cwd
		if in.Directory != "" {
			root = filepath.Join(cwd, in.Directory)
		}

		forge := github.NewClient(cmd.Context(), in.Token, in.Owner, in.Repo)
		reconciler := &reconcile.Reconciler{Forge: forge}

		outcome, err := reconciler.Run(cmd.Context(), reconcile.Request{
			Root:      root,
			Languages: languages,
			Branch:    in.Branch,
			Directory: in.Directory,
			TagPrefix: in.TagPrefix,
			SHA:       in.SHA,
			PageSize:  github.DefaultPageSize,
			Config:    cfg,
			DryRun:    flagDryRun,
		})
		if err != nil {
			return err
		}

		log.Info("reconciliation complete",
			"action", string(outcome.Action),
			"version", outcome.Version,
			"tag", outcome.TagName,
			"deleted_extras", len(outcome.DeletedExtras),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&flagDirectory, "directory", "d", "", "Project directory within the repository (monorepo scoping)")
	runCmd.Flags().StringVarP(&flagTagPrefix, "tag-prefix", "p", "", "Tag prefix used when no tag-template is configured (default \"v\")")
	runCmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "Ordered language archetypes, e.g. \"rust\" or \"rust,node\"")
	runCmd.Flags().StringVarP(&flagConfigFile, "config-file", "c", "", "Path to the release config file")
	runCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Evaluate the run without mutating any releases")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var runErr *runerrors.RunError
		if errors.As(err, &runErr) {
			fmt.Fprint(os.Stderr, runerrors.Format(runErr))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
