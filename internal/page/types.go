package page

import (
	"errors"
	"fmt"
)

// NoTitle is used when a page has no usable <title>.
const NoTitle = "No title found"

// Document is the cleaned result of fetching a page.
type Document struct {
	Title string
	Text  string
}

// ErrNoBody is returned when the markup has no body to extract text from.
var ErrNoBody = errors.New("document has no body")

// FetchError wraps any failure fetching or parsing a page.
type FetchError struct {
	URL string
	// StatusCode is set when the server answered with a non-success status.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
