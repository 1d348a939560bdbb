package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/breezy-run/breezy/pkg/release"
)

// ListAllReleases pages through every release of the repository and returns
// the union. An empty final page is not an error.
func (c *Client) ListAllReleases(ctx context.Context, perPage int) ([]release.Release, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var all []release.Release
	for {
		releases, resp, err := c.gh.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases: %w", err)
		}
		for _, rel := range releases {
			all = append(all, convertRelease(rel))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// DeleteRelease removes a release by forge-assigned id.
func (c *Client) DeleteRelease(ctx context.Context, id int64) error {
	if _, err := c.gh.Repositories.DeleteRelease(ctx, c.owner, c.repo, id); err != nil {
		return fmt.Errorf("failed to delete release %d: %w", id, err)
	}
	return nil
}

// CreateRelease creates a new draft release.
func (c *Client) CreateRelease(ctx context.Context, params release.Params) (release.Release, error) {
	created, _, err := c.gh.Repositories.CreateRelease(ctx, c.owner, c.repo, draftReleaseRequest(params))
	if err != nil {
		return release.Release{}, fmt.Errorf("failed to create release: %w", err)
	}
	return convertRelease(created), nil
}

// UpdateRelease rewrites an existing draft release in place. The draft flag
// is always sent as true so an update can never publish.
func (c *Client) UpdateRelease(ctx context.Context, id int64, params release.Params) (release.Release, error) {
	updated, _, err := c.gh.Repositories.EditRelease(ctx, c.owner, c.repo, id, draftReleaseRequest(params))
	if err != nil {
		return release.Release{}, fmt.Errorf("failed to update release %d: %w", id, err)
	}
	return convertRelease(updated), nil
}

// ResolveCommitSHA resolves a tag or ref name to the commit SHA it points at.
func (c *Client) ResolveCommitSHA(ctx context.Context, ref string) (string, error) {
	sha, _, err := c.gh.Repositories.GetCommitSHA1(ctx, c.owner, c.repo, ref, "")
	if err != nil {
		return "", fmt.Errorf("failed to resolve commit for %q: %w", ref, err)
	}
	return sha, nil
}

func draftReleaseRequest(params release.Params) *github.RepositoryRelease {
	return &github.RepositoryRelease{
		TagName:         github.String(params.TagName),
		Name:            github.String(params.Name),
		Body:            github.String(params.Body),
		Draft:           github.Bool(true),
		Prerelease:      github.Bool(params.Prerelease),
		TargetCommitish: github.String(params.TargetCommitish),
	}
}

// convertRelease converts a github.RepositoryRelease to our Release type.
// Timestamps are normalized to RFC3339 in UTC so string comparison orders
// them chronologically.
func convertRelease(rel *github.RepositoryRelease) release.Release {
	converted := release.Release{
		ID:              rel.GetID(),
		TagName:         rel.GetTagName(),
		Body:            rel.GetBody(),
		Draft:           rel.GetDraft(),
		TargetCommitish: rel.GetTargetCommitish(),
	}
	if t := rel.CreatedAt.GetTime(); t != nil {
		converted.CreatedAt = t.UTC().Format(time.RFC3339)
	}
	if t := rel.PublishedAt.GetTime(); t != nil {
		converted.PublishedAt = t.UTC().Format(time.RFC3339)
	}
	return converted
}
