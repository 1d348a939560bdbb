package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/breezy-run/breezy/pkg/release"
)

// SearchMergedPullRequests returns every pull request merged into branch,
// restricted to those merged at or after since when it is non-empty. The
// search API paginates; all pages are fetched.
func (c *Client) SearchMergedPullRequests(ctx context.Context, branch, since string, perPage int) ([]release.PullRequest, error) {
	query := fmt.Sprintf("repo:%s/%s is:pr is:merged base:%s", c.owner, c.repo, branch)
	if since != "" {
		query += " merged:>=" + since
	}

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []release.PullRequest
	for {
		result, resp, err := c.gh.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search merged pull requests: %w", err)
		}
		for _, issue := range result.Issues {
			all = append(all, convertSearchIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// convertSearchIssue converts a search result item to our PullRequest type.
func convertSearchIssue(issue *github.Issue) release.PullRequest {
	author := "unknown"
	if user := issue.GetUser(); user != nil && user.GetLogin() != "" {
		author = user.GetLogin()
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	pr := release.PullRequest{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Author: author,
		Labels: labels,
		URL:    issue.GetHTMLURL(),
	}
	if links := issue.GetPullRequestLinks(); links != nil {
		if t := links.MergedAt.GetTime(); t != nil {
			pr.MergedAt = t.UTC().Format(time.RFC3339)
		}
	}
	return pr
}
