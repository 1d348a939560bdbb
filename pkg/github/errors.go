package github

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// IsNotFound reports whether err is a 404 from the forge API.
func IsNotFound(err error) bool {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited reports whether err is a primary or secondary rate limit
// rejection.
func IsRateLimited(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	return errors.As(err, &abuseErr)
}

// IsUnauthorized reports whether err indicates a bad or missing token.
func IsUnauthorized(err error) bool {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode == http.StatusUnauthorized
	}
	return false
}
