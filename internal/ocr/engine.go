// Package ocr defines the recognition boundary. Engines produce
// positioned text fragments per page; everything downstream treats that
// output as untrusted and unordered.
package ocr

import (
	"context"

	"github.com/skyfleet/adscan/internal/model"
)

// Engine recognizes a document into per-page fragment sets. The outer
// slice is indexed by page (0-based); fragment order within a page
// carries no meaning.
type Engine interface {
	// Name identifies the engine in logs and run summaries.
	Name() string

	// Recognize produces the fragment sets for every page of the
	// document at path.
	Recognize(ctx context.Context, path string) ([][]model.Fragment, error)
}
