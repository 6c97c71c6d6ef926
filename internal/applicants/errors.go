package applicants

import "errors"

var (
	// ErrNotFound is returned when no record carries the requested email.
	ErrNotFound = errors.New("applicant not found")
	// ErrValidation is returned when a required field is empty after trimming.
	ErrValidation = errors.New("all fields are required")
	// ErrResumeRequired is returned when an add request carries no resume file.
	ErrResumeRequired = errors.New("resume file is required")
	// ErrStoreUnavailable wraps failures to open the backing file.
	ErrStoreUnavailable = errors.New("applicant store unavailable")
	// ErrMalformedRecord wraps rows or headers that do not match the schema.
	ErrMalformedRecord = errors.New("malformed applicant record")
)
