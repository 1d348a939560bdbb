// Package github is the forge client: a thin typed wrapper over the GitHub
// REST API scoped to one repository, built on go-github with an oauth2 static
// token source.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// DefaultPageSize is the GitHub API maximum page size.
const DefaultPageSize = 100

// Client talks to one owner/repo on the forge.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewClient creates a repository-scoped client authenticated with token.
func NewClient(ctx context.Context, token, owner, repo string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &Client{gh: github.NewClient(tc), owner: owner, repo: repo}
}

// NewClientWithHTTP builds a client over a caller-supplied HTTP client. Tests
// use it to inject a replaying transport.
func NewClientWithHTTP(httpClient *http.Client, owner, repo string) *Client {
	return &Client{gh: github.NewClient(httpClient), owner: owner, repo: repo}
}
