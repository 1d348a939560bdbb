package errors

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions auto-detect terminal support and degrade to plain
	// text when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// Format renders a RunError for the terminal using colors when available.
func Format(err *RunError) string {
	if err == nil {
		return ""
	}
	return format(err, true)
}

// FormatPlain renders a RunError without colors.
func FormatPlain(err *RunError) string {
	if err == nil {
		return ""
	}
	return format(err, false)
}

func format(err *RunError, useColors bool) string {
	var sb strings.Builder

	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(categoryFmt(err.Category.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Message))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Category.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Message)
	}
	sb.WriteString("\n")

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  " + bullet("•") + " " + step + "\n")
			} else {
				sb.WriteString("  • " + step + "\n")
			}
		}
	}

	return sb.String()
}
