package apperrors

import "fmt"

// ErrRemoteFetch is returned when a request to the webtoon platform comes back
// with a non-success HTTP status. Bulk operations (metadata resolution, page
// aggregation) propagate it and abort; per-episode image extraction recovers
// from it locally.
type ErrRemoteFetch struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrRemoteFetch) Error() string {
	return fmt.Sprintf("remote fetch of %s returned status %d", e.URL, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrRemoteFetch) Is(target error) bool {
	_, ok := target.(*ErrRemoteFetch)
	return ok
}

// NewRemoteFetchError creates a new ErrRemoteFetch.
func NewRemoteFetchError(url string, statusCode int) *ErrRemoteFetch {
	return &ErrRemoteFetch{
		URL:        url,
		StatusCode: statusCode,
	}
}

// ErrSchema is returned when a response body does not match the expected
// shape, e.g. a list payload without a paging block.
type ErrSchema struct {
	Resource string
	Reason   string
}

// Error implements the error interface.
func (e *ErrSchema) Error() string {
	return fmt.Sprintf("unexpected %s response shape: %s", e.Resource, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrSchema) Is(target error) bool {
	_, ok := target.(*ErrSchema)
	return ok
}

// NewSchemaError creates a new ErrSchema.
func NewSchemaError(resource, reason string) *ErrSchema {
	return &ErrSchema{
		Resource: resource,
		Reason:   reason,
	}
}

// ErrAdultContent marks a title that requires session-based age verification.
// The pagination API rejects such titles, so analysis stops before fetching
// any episode pages. This is a recognized unsupported configuration, not a
// remote failure, and is never reported as an empty episode list.
type ErrAdultContent struct {
	TitleID int
}

// Error implements the error interface.
func (e *ErrAdultContent) Error() string {
	return fmt.Sprintf("title %d is age-restricted and requires an authenticated session", e.TitleID)
}

// Is allows for error checking with errors.Is().
func (e *ErrAdultContent) Is(target error) bool {
	_, ok := target.(*ErrAdultContent)
	return ok
}

// NewAdultContentError creates a new ErrAdultContent.
func NewAdultContentError(titleID int) *ErrAdultContent {
	return &ErrAdultContent{TitleID: titleID}
}
