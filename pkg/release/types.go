// Package release contains the reconciliation core: the marker correlation
// predicate, draft/published release selection, and the release-notes
// composer. Everything here is pure and operates on data the forge client
// already fetched.
package release

// Release is the forge-side release snapshot the selector operates on.
// Timestamps keep their RFC3339 wire form; for a consistent UTC source,
// lexicographic comparison is equivalent to chronological order.
type Release struct {
	ID              int64
	TagName         string
	Body            string
	Draft           bool
	TargetCommitish string
	CreatedAt       string
	PublishedAt     string
}

// PullRequest is an immutable snapshot of a merged pull request fetched for
// one reconciliation run.
type PullRequest struct {
	Number   int
	Title    string
	Author   string
	Labels   []string
	URL      string
	MergedAt string
}
