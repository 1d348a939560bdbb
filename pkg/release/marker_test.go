package release

import "testing"

func TestMarker(t *testing.T) {
	tests := []struct {
		name      string
		branch    string
		directory string
		want      string
	}{
		{
			name:   "branch only",
			branch: "main",
			want:   "<!-- breezy:branch=main -->",
		},
		{
			name:   "slashes kept verbatim",
			branch: "release/2024",
			want:   "<!-- breezy:branch=release/2024 -->",
		},
		{
			name:      "directory scoped",
			branch:    "main",
			directory: "crates/core",
			want:      "<!-- breezy:branch=main:dir=crates/core -->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Marker(tt.branch, tt.directory); got != tt.want {
				t.Errorf("Marker() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBodyHasMarker(t *testing.T) {
	marker := Marker("main", "")

	if !BodyHasMarker(marker+"\n\nnotes", marker) {
		t.Error("marker at start of body not detected")
	}
	if !BodyHasMarker("notes\n"+marker, marker) {
		t.Error("marker inside body not detected")
	}
	if BodyHasMarker("", marker) {
		t.Error("empty body reported as marked")
	}
	if BodyHasMarker("<!-- breezy:branch=maintenance -->", marker) {
		t.Error("unrelated marker matched")
	}
}
