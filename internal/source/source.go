// Package source fetches the generated report and content files by relative
// path, either from a directory or from an HTTP origin.
package source

import (
	"context"
	"errors"
	"fmt"
)

const (
	SummaryPath = "reports/system_summary.json"
	LeadsPath   = "reports/leads_detailed.csv"
	BlogDir     = "content/blogs"
)

var ErrNotFound = errors.New("resource not found")

// StatusError is a non-OK HTTP response.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.Path, e.Code)
}

// Fetcher reads a resource by its slash-separated relative path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

func BlogPath(slug string) string {
	return BlogDir + "/" + slug + ".md"
}
