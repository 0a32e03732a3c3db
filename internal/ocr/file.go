package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/skyfleet/adscan/internal/model"
)

// FragmentFileEngine loads pre-recognized fragments from a JSON sidecar
// produced by an external OCR run over a scanned document. The file is
// a flat array of fragments, each carrying its 1-based page index.
type FragmentFileEngine struct{}

// NewFragmentFileEngine creates a sidecar-file engine.
func NewFragmentFileEngine() *FragmentFileEngine { return &FragmentFileEngine{} }

// Name implements Engine.
func (e *FragmentFileEngine) Name() string { return "fragment-file" }

// Recognize implements Engine.
func (e *FragmentFileEngine) Recognize(ctx context.Context, path string) ([][]model.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fragment file: %w", err)
	}

	var frags []model.Fragment
	if err := json.Unmarshal(data, &frags); err != nil {
		return nil, fmt.Errorf("decode fragment file: %w", err)
	}

	maxPage := 0
	for _, f := range frags {
		if f.Page > maxPage {
			maxPage = f.Page
		}
		if f.Page < 1 {
			return nil, fmt.Errorf("fragment %q: page index %d out of range", f.Text, f.Page)
		}
	}

	pages := make([][]model.Fragment, maxPage)
	for _, f := range frags {
		pages[f.Page-1] = append(pages[f.Page-1], f)
	}
	return pages, nil
}
