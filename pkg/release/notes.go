package release

import (
	"sort"
	"strconv"
	"strings"

	"github.com/breezy-run/breezy/pkg/config"
)

// BuildReleaseNotes composes the body of the managed draft: the scope marker,
// a blank line, then the changelog derived from the merged pull requests.
// With no configuration the changelog is one title per line; with one, pull
// requests are bucketed by label category and rendered through the change
// template. The result is a pure function of its inputs.
func BuildReleaseNotes(marker string, pullRequests []PullRequest, cfg *config.ReleaseConfig) string {
	if cfg != nil {
		changes := buildChanges(pullRequests, cfg)
		body := changes
		if cfg.Template != "" {
			body = strings.ReplaceAll(cfg.Template, "$CHANGES", changes)
		}
		if strings.TrimSpace(body) == "" {
			return marker
		}
		return marker + "\n\n" + body
	}

	ordered := mergeOrdered(pullRequests)
	if len(ordered) == 0 {
		return marker
	}

	lines := make([]string, 0, len(ordered)+2)
	lines = append(lines, marker, "")
	for _, pr := range ordered {
		lines = append(lines, pr.Title)
	}
	return strings.Join(lines, "\n")
}

// mergeOrdered is the canonical processing order shared by both composition
// paths: ascending merged_at (missing timestamps sort first), duplicates by
// number dropped after the first occurrence.
func mergeOrdered(pullRequests []PullRequest) []PullRequest {
	ordered := make([]PullRequest, len(pullRequests))
	copy(ordered, pullRequests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MergedAt < ordered[j].MergedAt
	})

	seen := make(map[int]bool, len(ordered))
	deduped := make([]PullRequest, 0, len(ordered))
	for _, pr := range ordered {
		if seen[pr.Number] {
			continue
		}
		seen[pr.Number] = true
		deduped = append(deduped, pr)
	}
	return deduped
}

func buildChanges(pullRequests []PullRequest, cfg *config.ReleaseConfig) string {
	ordered := mergeOrdered(pullRequests)
	excluded := normalizeLabelSet(cfg.ExcludeLabels)

	var lines []string
	categorized := make(map[int]bool)

	for _, category := range cfg.Categories {
		labels := normalizeLabelSet(category.Labels)
		var categoryLines []string
		for _, pr := range ordered {
			if categorized[pr.Number] {
				continue
			}
			if isExcluded(pr, excluded) {
				continue
			}
			if !hasMatchingLabel(pr, labels) {
				continue
			}
			categorized[pr.Number] = true
			categoryLines = append(categoryLines, applyChangeTemplate(cfg.ChangeTemplate, pr))
		}
		if len(categoryLines) > 0 {
			lines = append(lines, "## "+category.Title)
			lines = append(lines, categoryLines...)
			lines = append(lines, "")
		}
	}

	var uncategorized []string
	for _, pr := range ordered {
		if categorized[pr.Number] {
			continue
		}
		if isExcluded(pr, excluded) {
			continue
		}
		uncategorized = append(uncategorized, applyChangeTemplate(cfg.ChangeTemplate, pr))
	}

	if len(uncategorized) > 0 {
		if len(cfg.Categories) > 0 {
			lines = append(lines, "## Other Changes")
		}
		lines = append(lines, uncategorized...)
		lines = append(lines, "")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// hasMatchingLabel reports whether any of the pull request's labels falls in
// the category's label set. A category with no labels never matches.
func hasMatchingLabel(pr PullRequest, categoryLabels map[string]bool) bool {
	if len(categoryLabels) == 0 {
		return false
	}
	for label := range normalizeLabelSet(pr.Labels) {
		if categoryLabels[label] {
			return true
		}
	}
	return false
}

func isExcluded(pr PullRequest, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	for label := range normalizeLabelSet(pr.Labels) {
		if excluded[label] {
			return true
		}
	}
	return false
}

// applyChangeTemplate substitutes the per-change placeholders. Unknown
// placeholders pass through untouched.
func applyChangeTemplate(template string, pr PullRequest) string {
	rendered := strings.ReplaceAll(template, "$TITLE", pr.Title)
	rendered = strings.ReplaceAll(rendered, "$AUTHOR", pr.Author)
	rendered = strings.ReplaceAll(rendered, "$NUMBER", strconv.Itoa(pr.Number))
	return strings.ReplaceAll(rendered, "$PR_URL", pr.URL)
}

// normalizeLabelSet trims, lowercases, and drops empty labels so comparisons
// are case- and whitespace-insensitive on both sides.
func normalizeLabelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, label := range labels {
		normalized := strings.ToLower(strings.TrimSpace(label))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
