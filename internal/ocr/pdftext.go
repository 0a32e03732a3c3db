package ocr

import (
	"context"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/skyfleet/adscan/internal/model"
)

// TextLayerEngine recognizes born-digital PDFs through their embedded
// text layer instead of a raster OCR pass. Glyph runs come back with
// positions, so the output feeds the same reading-order assembly as
// scanned documents. Text-layer fragments always carry confidence 1.0.
type TextLayerEngine struct{}

// NewTextLayerEngine creates a text-layer recognition engine.
func NewTextLayerEngine() *TextLayerEngine { return &TextLayerEngine{} }

// Name implements Engine.
func (e *TextLayerEngine) Name() string { return "pdf-text-layer" }

// Recognize implements Engine.
func (e *TextLayerEngine) Recognize(ctx context.Context, path string) (pages [][]model.Fragment, err error) {
	// The pdf library panics on malformed and encrypted inputs instead
	// of returning an error. Convert that into this document's failure
	// so one bad file cannot take down the whole batch.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	numPages := reader.NumPage()
	pages = make([][]model.Fragment, numPages)

	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages[i-1] = pageFragments(page, i)
	}
	return pages, nil
}

// pageFragments merges the page's glyph runs into word-level fragments.
// PDF coordinates grow upward from the bottom-left corner; fragments
// are flipped into the assembler's top-down coordinate space.
func pageFragments(page pdflib.Page, pageNum int) []model.Fragment {
	height := pageHeight(page)
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	var frags []model.Fragment
	var cur *fragmentRun

	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		if cur != nil && cur.continues(t) {
			cur.extend(t)
			continue
		}
		if cur != nil {
			frags = append(frags, cur.fragment(pageNum, height))
		}
		cur = newFragmentRun(t)
	}
	if cur != nil {
		frags = append(frags, cur.fragment(pageNum, height))
	}
	return frags
}

// fragmentRun accumulates adjacent glyph runs on the same baseline into
// one fragment.
type fragmentRun struct {
	text     string
	x, y     float64
	right    float64
	fontSize float64
}

func newFragmentRun(t pdflib.Text) *fragmentRun {
	return &fragmentRun{
		text:     t.S,
		x:        t.X,
		y:        t.Y,
		right:    t.X + t.W,
		fontSize: t.FontSize,
	}
}

// continues reports whether the glyph run extends the current fragment:
// same baseline, and a horizontal gap smaller than a third of the font
// size (intra-word spacing).
func (r *fragmentRun) continues(t pdflib.Text) bool {
	if abs(t.Y-r.y) > 0.5 {
		return false
	}
	gap := t.X - r.right
	return gap >= -0.5 && gap <= r.fontSize/3
}

func (r *fragmentRun) extend(t pdflib.Text) {
	r.text += t.S
	if t.X+t.W > r.right {
		r.right = t.X + t.W
	}
	if t.FontSize > r.fontSize {
		r.fontSize = t.FontSize
	}
}

func (r *fragmentRun) fragment(pageNum int, pageHeight float64) model.Fragment {
	h := r.fontSize
	if h <= 0 {
		h = 10
	}
	return model.Fragment{
		Text:       r.text,
		Page:       pageNum,
		Confidence: 1.0,
		Box: model.Box{
			Top:    pageHeight - r.y - h,
			Left:   r.x,
			Width:  r.right - r.x,
			Height: h,
		},
	}
}

// pageHeight reads the MediaBox height, defaulting to US letter when
// the box is missing or malformed.
func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return 792
	}
	return box.Index(3).Float64() - box.Index(1).Float64()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
