package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Input, "Input Error"},
		{Configuration, "Configuration Error"},
		{Version, "Version Error"},
		{Forge, "Forge Error"},
		{Category(99), "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.category.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunErrorUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewVersionError("no version found").WithCause(cause)

	if err.Error() != "no version found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}

	forgeErr := NewForgeError("listing releases: boom", cause)
	if !stderrors.Is(forgeErr, cause) {
		t.Error("forge error lost its cause")
	}
}

func TestFormatPlain(t *testing.T) {
	err := NewInputError("missing GitHub token",
		"Set the github-token input or the GITHUB_TOKEN environment variable")

	got := FormatPlain(err)
	want := "Error [Input Error]: missing GitHub token\n" +
		"\n" +
		"To fix this:\n" +
		"  • Set the github-token input or the GITHUB_TOKEN environment variable\n"
	if got != want {
		t.Errorf("FormatPlain() = %q, want %q", got, want)
	}
}

func TestFormatPlainNoRemediation(t *testing.T) {
	err := NewForgeError("listing releases: 502", nil)

	got := FormatPlain(err)
	if got != "Error [Forge Error]: listing releases: 502\n" {
		t.Errorf("FormatPlain() = %q", got)
	}
	if strings.Contains(got, "To fix this") {
		t.Error("remediation section emitted with no steps")
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := FormatPlain(nil); got != "" {
		t.Errorf("FormatPlain(nil) = %q, want empty", got)
	}
}
