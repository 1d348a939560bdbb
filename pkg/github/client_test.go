package github

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-github/v68/github"
	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	"gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// newReplayClient serves a recorded cassette through the client's transport.
// The matcher compares decoded query values so percent-encoding and parameter
// order differences between the cassette and go-github do not break replay.
func newReplayClient(t *testing.T, fixture string) *Client {
	t.Helper()

	rec, err := recorder.NewAsMode("testdata/fixtures/"+fixture, recorder.ModeReplaying, nil)
	if err != nil {
		t.Fatalf("opening cassette %s: %v", fixture, err)
	}
	t.Cleanup(func() {
		if err := rec.Stop(); err != nil {
			t.Errorf("stopping recorder: %v", err)
		}
	})

	rec.SetMatcher(func(r *http.Request, i cassette.Request) bool {
		if r.Method != i.Method {
			return false
		}
		recorded, err := url.Parse(i.URL)
		if err != nil {
			return false
		}
		return r.URL.Path == recorded.Path &&
			r.URL.Query().Encode() == recorded.Query().Encode()
	})

	return NewClientWithHTTP(&http.Client{Transport: rec}, "octo", "demo")
}

func TestListAllReleases(t *testing.T) {
	client := newReplayClient(t, "list_releases")

	releases, err := client.ListAllReleases(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListAllReleases() error = %v", err)
	}
	if len(releases) != 3 {
		t.Fatalf("ListAllReleases() returned %d releases, want 3 across two pages", len(releases))
	}

	draft := releases[0]
	if draft.ID != 11 || !draft.Draft {
		t.Errorf("first release = %+v, want draft id 11", draft)
	}
	if draft.CreatedAt != "2024-02-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q, want RFC3339 UTC", draft.CreatedAt)
	}
	if draft.PublishedAt != "" {
		t.Errorf("PublishedAt = %q, want empty for a draft", draft.PublishedAt)
	}

	published := releases[1]
	if published.TagName != "v1.0.0" || published.Draft {
		t.Errorf("second release = %+v, want published v1.0.0", published)
	}
	if published.PublishedAt != "2024-01-01T10:00:00Z" {
		t.Errorf("PublishedAt = %q", published.PublishedAt)
	}
	if published.TargetCommitish != "main" {
		t.Errorf("TargetCommitish = %q, want main", published.TargetCommitish)
	}
}

func TestDeleteRelease(t *testing.T) {
	client := newReplayClient(t, "delete_release")

	if err := client.DeleteRelease(context.Background(), 7); err != nil {
		t.Fatalf("DeleteRelease() error = %v", err)
	}
}

func TestDeleteReleaseNotFound(t *testing.T) {
	client := newReplayClient(t, "release_not_found")

	err := client.DeleteRelease(context.Background(), 404)
	if err == nil {
		t.Fatal("DeleteRelease() succeeded for a missing release")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestSearchMergedPullRequests(t *testing.T) {
	client := newReplayClient(t, "search_merged_pulls")

	pulls, err := client.SearchMergedPullRequests(
		context.Background(), "main", "2024-01-01T10:00:00Z", 100)
	if err != nil {
		t.Fatalf("SearchMergedPullRequests() error = %v", err)
	}
	if len(pulls) != 2 {
		t.Fatalf("SearchMergedPullRequests() returned %d pulls, want 2", len(pulls))
	}

	first := pulls[0]
	if first.Number != 12 || first.Title != "Add login" || first.Author != "ada" {
		t.Errorf("first pull = %+v", first)
	}
	if len(first.Labels) != 1 || first.Labels[0] != "feature" {
		t.Errorf("first pull labels = %v, want [feature]", first.Labels)
	}
	if first.MergedAt != "2024-01-05T12:00:00Z" {
		t.Errorf("MergedAt = %q", first.MergedAt)
	}
	if first.URL != "https://github.com/octo/demo/pull/12" {
		t.Errorf("URL = %q", first.URL)
	}

	if pulls[1].Author != "unknown" {
		t.Errorf("author = %q, want unknown fallback for missing user", pulls[1].Author)
	}
}

func TestResolveCommitSHA(t *testing.T) {
	client := newReplayClient(t, "resolve_commit")

	sha, err := client.ResolveCommitSHA(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("ResolveCommitSHA() error = %v", err)
	}
	if sha != "3f786850e387550fdab836ed7e6dc881de23001b" {
		t.Errorf("ResolveCommitSHA() = %q", sha)
	}
}

func TestErrorClassifiers(t *testing.T) {
	notFound := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
	}
	unauthorized := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusUnauthorized},
	}

	tests := []struct {
		name  string
		check func(error) bool
		err   error
		want  bool
	}{
		{name: "not found", check: IsNotFound, err: notFound, want: true},
		{name: "not found on other status", check: IsNotFound, err: unauthorized, want: false},
		{name: "unauthorized", check: IsUnauthorized, err: unauthorized, want: true},
		{name: "rate limited", check: IsRateLimited, err: &github.RateLimitError{}, want: true},
		{name: "abuse rate limited", check: IsRateLimited, err: &github.AbuseRateLimitError{}, want: true},
		{name: "plain error", check: IsRateLimited, err: context.Canceled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("classifier = %v, want %v", got, tt.want)
			}
		})
	}
}
