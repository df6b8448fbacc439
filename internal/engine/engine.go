package engine

import (
	"context"

	"github.com/law-makers/phonecrawl/pkg/models"
)

// Fetcher retrieves the raw textual body of a page
type Fetcher interface {
	// Fetch performs one GET request for url and returns the decoded body
	Fetch(ctx context.Context, url string) (string, error)

	// Name returns the name of the fetcher implementation
	Name() string
}

// Renderer loads a page in a browser, clicks the element matched by clickSelector
// and returns the rendered document source
type Renderer interface {
	Render(ctx context.Context, url, clickSelector string) (string, error)
}

// Extractor locates a phone number in one page's content
type Extractor interface {
	Extract(ctx context.Context, content string) (models.Extraction, error)
}
