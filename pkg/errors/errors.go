// Package errors provides categorized run errors with actionable remediation
// guidance for the breezy CLI.
package errors

// Category represents the kind of failure that aborted a run.
type Category int

const (
	// Input errors are caused by missing or invalid action inputs or
	// GitHub environment context.
	Input Category = iota
	// Configuration errors are caused by an unreadable or malformed
	// release config file.
	Configuration
	// Version errors occur when no manifest yields a usable version.
	Version
	// Forge errors are non-success responses from the forge API.
	Forge
)

// String returns a human-readable name for the error category.
func (c Category) String() string {
	switch c {
	case Input:
		return "Input Error"
	case Configuration:
		return "Configuration Error"
	case Version:
		return "Version Error"
	case Forge:
		return "Forge Error"
	default:
		return "Error"
	}
}

// RunError is a structured error with category and remediation guidance. All
// run errors are terminal; there is no warn-and-continue path.
type RunError struct {
	Category    Category
	Message     string
	Remediation []string
	cause       error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *RunError) Unwrap() error {
	return e.cause
}

// NewInputError creates an input error with remediation steps.
func NewInputError(message string, remediation ...string) *RunError {
	return &RunError{Category: Input, Message: message, Remediation: remediation}
}

// NewConfigError creates a configuration error with remediation steps.
func NewConfigError(message string, remediation ...string) *RunError {
	return &RunError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewVersionError creates a version-resolution error.
func NewVersionError(message string, remediation ...string) *RunError {
	return &RunError{Category: Version, Message: message, Remediation: remediation}
}

// NewForgeError wraps a forge API failure.
func NewForgeError(message string, cause error) *RunError {
	return &RunError{Category: Forge, Message: message, cause: cause}
}

// WithCause attaches an underlying error and returns the receiver.
func (e *RunError) WithCause(cause error) *RunError {
	e.cause = cause
	return e
}
