package models

import (
	"errors"
	"fmt"
)

// ErrOutputRoot marks a fatal build error: the output root cannot be created
// or written. The run stops before QA and no report is produced.
var ErrOutputRoot = errors.New("output root is not writable")

// ErrContent marks content that could not be read or parsed.
var ErrContent = errors.New("invalid site content")

// PageError reports a single malformed page spec. Builds abort on the first
// batch of page errors; no page is written as empty.
type PageError struct {
	ID  string
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q: %v", e.ID, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
