// Package reconcile sequences one reconciliation run: resolve the version,
// classify the forge's releases, compose the notes, and apply the minimal set
// of mutations that leaves exactly one up-to-date draft per scope.
package reconcile

import (
	"context"
	"fmt"

	"github.com/breezy-run/breezy/pkg/config"
	"github.com/breezy-run/breezy/pkg/errors"
	"github.com/breezy-run/breezy/pkg/log"
	"github.com/breezy-run/breezy/pkg/release"
	"github.com/breezy-run/breezy/pkg/version"
)

const defaultPageSize = 100

// ForgeClient is the forge surface one run depends on. pkg/github satisfies
// it; tests substitute a fake.
type ForgeClient interface {
	ListAllReleases(ctx context.Context, perPage int) ([]release.Release, error)
	DeleteRelease(ctx context.Context, id int64) error
	CreateRelease(ctx context.Context, params release.Params) (release.Release, error)
	UpdateRelease(ctx context.Context, id int64, params release.Params) (release.Release, error)
	SearchMergedPullRequests(ctx context.Context, branch, since string, perPage int) ([]release.PullRequest, error)
	ResolveCommitSHA(ctx context.Context, ref string) (string, error)
}

// Reconciler runs reconciliation against one forge client.
type Reconciler struct {
	Forge ForgeClient
}

// Request is the full input of one run. Everything is explicit; the
// reconciler reads no ambient state.
type Request struct {
	Root      string
	Languages []string
	Branch    string
	Directory string
	TagPrefix string
	SHA       string
	PageSize  int
	Config    *config.ReleaseConfig
	DryRun    bool
}

// Action is the terminal decision of a run.
type Action string

const (
	// ActionCreated means a new draft release was created.
	ActionCreated Action = "created"
	// ActionUpdated means the existing primary draft was rewritten.
	ActionUpdated Action = "updated"
	// ActionSkipped means a published release already covers the current
	// commit and no draft was needed.
	ActionSkipped Action = "skipped"
)

// Outcome reports what a run decided and, in dry-run mode, what it would have
// done.
type Outcome struct {
	Action        Action
	ReleaseID     int64
	DeletedExtras []int64
	Version       string
	Prerelease    bool
	TagName       string
	Name          string
	Body          string
}

// Run executes one reconciliation pass. Any failure is terminal: no further
// forge mutations are issued and the prior forge state is preserved from that
// point on. Extra-draft deletions are issued before the create-or-update
// decision because the extras belong to the selection snapshot, not the
// outcome.
func (r *Reconciler) Run(ctx context.Context, req Request) (Outcome, error) {
	info, err := version.Resolve(req.Root, req.Languages)
	if err != nil {
		return Outcome{}, errors.NewVersionError(err.Error(),
			"Ensure the project manifest declares a version",
			"Check the language input matches the project type").WithCause(err)
	}

	marker := release.Marker(req.Branch, req.Directory)
	tagName := resolveTagName(info.Version, req.TagPrefix, req.Directory, req.Config)
	name := resolveReleaseName(info.Version, tagName, req.Branch, req.Directory, req.Config)
	prerelease := version.IsPrerelease(info.Version)
	scope := scopeLabel(req.Branch, req.Directory)

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	releases, err := r.Forge.ListAllReleases(ctx, pageSize)
	if err != nil {
		return Outcome{}, errors.NewForgeError("listing releases: "+err.Error(), err)
	}

	outcome := Outcome{
		Version:    info.Version,
		Prerelease: prerelease,
		TagName:    tagName,
		Name:       name,
	}

	selection := release.SelectDraftReleases(releases, marker)
	for _, id := range selection.Extras {
		if req.DryRun {
			log.Infof("dry-run: would delete extra draft release %d for %s", id, scope)
		} else {
			if err := r.Forge.DeleteRelease(ctx, id); err != nil {
				return Outcome{}, errors.NewForgeError(
					fmt.Sprintf("deleting extra draft release %d: %v", id, err), err)
			}
			log.Infof("deleted extra draft release %d for %s", id, scope)
		}
		outcome.DeletedExtras = append(outcome.DeletedExtras, id)
	}

	// The marker filter scopes the published lookup only for directory
	// runs, where several projects share one branch.
	markerFilter := ""
	if req.Directory != "" {
		markerFilter = marker
	}
	latestPublished := release.SelectLatestPublished(releases, req.Branch, markerFilter)

	// An existing draft is always kept current; the skip check only
	// prevents creating an empty draft right after a publish.
	if selection.Primary == nil && latestPublished != nil && req.SHA != "" {
		matches, err := release.PublishedMatchesCommit(ctx, r.Forge, latestPublished, req.SHA)
		if err != nil {
			return Outcome{}, errors.NewForgeError("resolving published release commit: "+err.Error(), err)
		}
		if matches {
			log.Infof("skipping draft release for %s; commit %s is already covered by a published release", scope, req.SHA)
			outcome.Action = ActionSkipped
			return outcome, nil
		}
	}

	since := ""
	if latestPublished != nil {
		since = latestPublished.PublishedAt
		if since == "" {
			since = latestPublished.CreatedAt
		}
	}

	pulls, err := r.Forge.SearchMergedPullRequests(ctx, req.Branch, since, pageSize)
	if err != nil {
		return Outcome{}, errors.NewForgeError("searching merged pull requests: "+err.Error(), err)
	}

	body := release.BuildReleaseNotes(marker, pulls, req.Config)
	outcome.Body = body

	params := release.Params{
		TagName:         tagName,
		Name:            name,
		Body:            body,
		Prerelease:      prerelease,
		TargetCommitish: req.Branch,
	}

	if selection.Primary != nil {
		id := *selection.Primary
		outcome.Action = ActionUpdated
		outcome.ReleaseID = id
		if req.DryRun {
			log.Infof("dry-run: would update draft release %d for %s", id, scope)
			return outcome, nil
		}
		if _, err := r.Forge.UpdateRelease(ctx, id, params); err != nil {
			return Outcome{}, errors.NewForgeError(
				fmt.Sprintf("updating draft release %d: %v", id, err), err)
		}
		log.Infof("updated draft release %d for %s", id, scope)
		return outcome, nil
	}

	outcome.Action = ActionCreated
	if req.DryRun {
		log.Infof("dry-run: would create draft release for %s", scope)
		return outcome, nil
	}
	created, err := r.Forge.CreateRelease(ctx, params)
	if err != nil {
		return Outcome{}, errors.NewForgeError("creating draft release: "+err.Error(), err)
	}
	outcome.ReleaseID = created.ID
	log.Infof("created draft release %d for %s", created.ID, scope)
	return outcome, nil
}
