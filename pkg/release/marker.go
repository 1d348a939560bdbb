package release

import "strings"

const markerPrefix = "<!-- breezy:branch="

// Marker returns the scope marker embedded in managed release bodies. The
// branch name is inserted verbatim with no escaping; a branch containing the
// comment terminator corrupts the marker. That is an accepted limitation of
// the format, not something to silently repair.
func Marker(branch, directory string) string {
	if directory != "" {
		return markerPrefix + branch + ":dir=" + directory + " -->"
	}
	return markerPrefix + branch + " -->"
}

// BodyHasMarker reports whether a release body belongs to the scope the
// marker identifies. Correlation is plain substring containment; all marker
// matching in this package goes through this predicate so the mechanism can
// be swapped without touching selection or composition.
func BodyHasMarker(body, marker string) bool {
	return strings.Contains(body, marker)
}
