package export

import (
	"context"
	"errors"
)

// ErrUnsupportedFormat is returned for formats this build cannot
// render (e.g. xlsx, png).
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Renderer turns a document into a file body.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Publisher pushes a document to a remote target instead of producing
// a file, e.g. a Google spreadsheet.
type Publisher interface {
	Publish(ctx context.Context, doc Document) error
}
