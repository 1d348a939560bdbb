// Package inputs resolves the run context once at process startup: action
// inputs from INPUT_* variables (read through a koanf env provider), the
// GitHub runner environment, and local git fallbacks for runs outside a
// workflow. The core never reads the environment; it gets this value.
package inputs

import (
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/breezy-run/breezy/pkg/config"
	"github.com/breezy-run/breezy/pkg/errors"
)

// Inputs is the explicit run context handed to the reconciler by value.
type Inputs struct {
	Owner      string
	Repo       string
	Branch     string
	Directory  string
	TagPrefix  string
	Language   string
	ConfigFile string
	Token      string
	SHA        string
}

// Overrides are CLI flag values that take precedence over the corresponding
// INPUT_* variables.
type Overrides struct {
	Directory  string
	TagPrefix  string
	Language   string
	ConfigFile string
	Token      string
}

// Resolve reads action inputs and GitHub environment. root anchors the local
// git fallbacks used when the runner variables are absent.
func Resolve(root string, overrides Overrides) (Inputs, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("INPUT_", ".", normalizeInputKey), nil); err != nil {
		return Inputs{}, errors.NewInputError("reading action inputs: " + err.Error())
	}

	in := Inputs{
		Directory:  firstNonEmpty(overrides.Directory, k.String("directory")),
		TagPrefix:  firstNonEmpty(overrides.TagPrefix, k.String("tag-prefix")),
		Language:   firstNonEmpty(overrides.Language, k.String("language")),
		ConfigFile: firstNonEmpty(overrides.ConfigFile, k.String("config-file")),
		Token:      firstNonEmpty(overrides.Token, k.String("github-token")),
	}
	if strings.TrimSpace(in.TagPrefix) == "" {
		in.TagPrefix = "v"
	}

	if strings.TrimSpace(in.Token) == "" {
		in.Token = os.Getenv("GITHUB_TOKEN")
	}
	if strings.TrimSpace(in.Token) == "" {
		return Inputs{}, errors.NewInputError("missing GitHub token",
			"Set the github-token input or the GITHUB_TOKEN environment variable")
	}

	owner, repo, err := parseRepository(os.Getenv("GITHUB_REPOSITORY"))
	if err != nil {
		return Inputs{}, err
	}
	in.Owner, in.Repo = owner, repo

	branch, err := resolveBranch(root)
	if err != nil {
		return Inputs{}, err
	}
	in.Branch = branch

	directory, err := NormalizeDirectory(in.Directory)
	if err != nil {
		return Inputs{}, err
	}
	in.Directory = directory

	in.SHA = resolveSHA(root)
	return in, nil
}

// normalizeInputKey maps INPUT_GITHUB_TOKEN and INPUT_GITHUB-TOKEN alike to
// the hyphenated input name used in workflow files.
func normalizeInputKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "INPUT_")), "_", "-")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseRepository(repository string) (string, string, error) {
	if strings.TrimSpace(repository) == "" {
		return "", "", errors.NewInputError("missing GITHUB_REPOSITORY environment variable",
			"Run inside a GitHub workflow, or export GITHUB_REPOSITORY=owner/repo")
	}
	owner, repo, found := strings.Cut(repository, "/")
	if !found || owner == "" || repo == "" {
		return "", "", errors.NewInputError("invalid GITHUB_REPOSITORY value; expected owner/repo")
	}
	return owner, repo, nil
}

// resolveBranch determines the branch this run reconciles: the workflow head
// ref, the ref name, a refs/heads/ ref, and finally the local git HEAD.
func resolveBranch(root string) (string, error) {
	if head := strings.TrimSpace(os.Getenv("GITHUB_HEAD_REF")); head != "" {
		return head, nil
	}
	if name := strings.TrimSpace(os.Getenv("GITHUB_REF_NAME")); name != "" {
		return name, nil
	}
	if ref := strings.TrimSpace(os.Getenv("GITHUB_REF")); ref != "" {
		if branch, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
			return branch, nil
		}
	}
	if branch := gitHeadBranch(root); branch != "" {
		return branch, nil
	}
	return "", errors.NewInputError("unable to determine branch name",
		"Run inside a GitHub workflow, export GITHUB_REF_NAME, or run from a checked-out branch")
}

// resolveSHA returns the commit this run targets, or empty when unknown. An
// empty SHA only disables the skip-creation check; it is not an error.
func resolveSHA(root string) string {
	if sha := strings.TrimSpace(os.Getenv("GITHUB_SHA")); sha != "" {
		return sha
	}
	return gitHeadCommit(root)
}

// NormalizeDirectory validates the monorepo directory scope: relative paths
// only, with trailing separators and a leading ./ stripped. Empty and "."
// both mean repository root.
func NormalizeDirectory(input string) (string, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return "", nil
	}

	value = strings.TrimRight(value, "/")
	value = strings.TrimRight(value, `\`)
	if value == "." {
		return "", nil
	}
	if filepath.IsAbs(value) {
		return "", errors.NewInputError("directory input must be a relative path within the repository")
	}

	value = strings.TrimPrefix(value, "./")
	if value == "" || value == "." {
		return "", nil
	}
	return value, nil
}

// ResolveLanguage picks the language input, falling back to the config file's
// default archetype.
func ResolveLanguage(input string, cfg *config.ReleaseConfig) (string, error) {
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		return trimmed, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.Language) != "" {
		return strings.TrimSpace(cfg.Language), nil
	}
	return "", errors.NewInputError("missing required input: language",
		"Set the language input, or add a language key to the release config")
}

// gitHeadBranch returns the checked-out branch of the repository containing
// root, or empty on detached HEAD or when no repository is found.
func gitHeadBranch(root string) string {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

func gitHeadCommit(root string) string {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
