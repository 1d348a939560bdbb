package release

import (
	"context"
	"sort"
	"strings"
)

// DraftSelection splits the marker-matching draft releases into the single
// draft to keep updating and the redundant extras to delete.
type DraftSelection struct {
	Primary *int64
	Extras  []int64
}

// SelectDraftReleases classifies draft releases carrying the marker. The
// newest (by created_at) becomes the primary; every other match is an extra
// left over from a race or an earlier bug and gets scheduled for deletion.
// The sort is stable, so exact timestamp ties keep their input order.
func SelectDraftReleases(releases []Release, marker string) DraftSelection {
	var drafts []Release
	for _, rel := range releases {
		if rel.Draft && BodyHasMarker(rel.Body, marker) {
			drafts = append(drafts, rel)
		}
	}

	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt > drafts[j].CreatedAt
	})

	if len(drafts) == 0 {
		return DraftSelection{}
	}

	selection := DraftSelection{Primary: &drafts[0].ID}
	for _, rel := range drafts[1:] {
		selection.Extras = append(selection.Extras, rel.ID)
	}
	return selection
}

// SelectLatestPublished returns the most recently published release targeting
// branch, or nil when none exists. A non-empty markerFilter additionally
// requires the body to carry the marker, which scopes the lookup to one
// directory of a monorepo branch.
func SelectLatestPublished(releases []Release, branch, markerFilter string) *Release {
	var published []Release
	for _, rel := range releases {
		if rel.Draft || rel.TargetCommitish != branch {
			continue
		}
		if markerFilter != "" && !BodyHasMarker(rel.Body, markerFilter) {
			continue
		}
		published = append(published, rel)
	}

	if len(published) == 0 {
		return nil
	}

	sort.SliceStable(published, func(i, j int) bool {
		return publishedSortKey(published[i]) > publishedSortKey(published[j])
	})
	return &published[0]
}

func publishedSortKey(rel Release) string {
	if rel.PublishedAt != "" {
		return rel.PublishedAt
	}
	return rel.CreatedAt
}

// TagResolver resolves a tag name to the commit SHA it points at. The forge
// client satisfies this; tests substitute a fake.
type TagResolver interface {
	ResolveCommitSHA(ctx context.Context, ref string) (string, error)
}

// PublishedMatchesCommit reports whether rel already covers currentSHA. It
// first compares the release's target ref directly, then resolves the
// release's tag through the forge. A blank tag name cannot be resolved and
// counts as no match.
func PublishedMatchesCommit(ctx context.Context, resolver TagResolver, rel *Release, currentSHA string) (bool, error) {
	if rel.TargetCommitish == currentSHA {
		return true, nil
	}
	tag := strings.TrimSpace(rel.TagName)
	if tag == "" {
		return false, nil
	}
	sha, err := resolver.ResolveCommitSHA(ctx, tag)
	if err != nil {
		return false, err
	}
	return sha == currentSHA, nil
}
