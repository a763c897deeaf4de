// Package domain defines domain-level errors for the imageanalysis feature.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse indicates that the Vision API returned no per-image result.
	ErrEmptyResponse = errors.New("vision response contains no results")

	// ErrAnnotationNotFound indicates that the expected annotation field is absent.
	// The API omits the field when nothing was detected.
	ErrAnnotationNotFound = errors.New("annotation field not found")

	// ErrUnsupportedKind is returned for a detection kind outside the four supported ones.
	ErrUnsupportedKind = errors.New("unsupported detection kind")

	// ErrInvalidImage is returned when uploaded image data is empty or too large.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidCompanyName is returned when a company name fails validation.
	ErrInvalidCompanyName = errors.New("invalid company name")
)

// APIError is the per-image error status carried inside a successful batch response.
type APIError struct {
	Code    int32
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vision API error (code %d): %s", e.Code, e.Message)
}
