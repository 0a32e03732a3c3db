package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skyfleet/adscan/internal/assemble"
	"github.com/skyfleet/adscan/internal/cache"
	"github.com/skyfleet/adscan/internal/extract"
	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/ocr"
	"github.com/skyfleet/adscan/internal/validate"
)

// Pipeline turns one directive document into a validated
// ApplicabilityRecord: recognition, reading-order assembly, generative
// extraction, schema validation. Each document is self-contained, so
// pipelines are safe to share across worker goroutines.
type Pipeline struct {
	pdfEngine  ocr.Engine
	fileEngine ocr.Engine
	assembler  *assemble.Assembler
	extractor  extract.Extractor
	validator  *validate.Validator
	store      cache.Cache
	cfg        *model.Config
}

// NewPipeline wires the pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	extractor, err := extract.NewExtractor(extract.ConfigFromModel(cfg.Extractor))
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}
	extractor = extract.Limited(extractor, cfg.Extractor.RequestsPerSecond, cfg.Extractor.Burst)

	validator, err := validate.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	return &Pipeline{
		pdfEngine:  ocr.NewTextLayerEngine(),
		fileEngine: ocr.NewFragmentFileEngine(),
		assembler:  assemble.NewAssembler(cfg.Assembly),
		extractor:  extractor,
		validator:  validator,
		store:      store,
		cfg:        cfg,
	}, nil
}

// DocumentResult is the outcome of processing one directive document.
// A non-nil Err means the document contributes no columns to the
// classification matrix; the batch continues.
type DocumentResult struct {
	Label string
	Path  string

	Record *model.ApplicabilityRecord
	// Raw is the validated candidate payload, kept verbatim for the
	// audit sidecar.
	Raw json.RawMessage

	Pages     []model.PageText
	Degraded  bool
	FromCache bool

	Err error
}

// Label derives the document label from its filename, mirroring the
// column naming of the classification matrix.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProcessDocument runs the full per-document pipeline. Assembly never
// fails; recognition, extraction and validation failures are recorded
// on the result rather than aborting the batch.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) *DocumentResult {
	res := &DocumentResult{Label: Label(path), Path: path}

	pages, err := p.engineFor(path).Recognize(ctx, path)
	if err != nil {
		res.Err = fmt.Errorf("recognize: %w", err)
		return res
	}

	assembled, text := p.assembler.AssembleDocument(pages)
	res.Pages = assembled
	for _, pt := range assembled {
		if pt.Degraded {
			res.Degraded = true
		}
	}
	if strings.TrimSpace(text) == "" {
		res.Err = fmt.Errorf("document produced no text")
		return res
	}

	candidate, fromCache, err := p.extractCandidate(ctx, text)
	if err != nil {
		res.Err = fmt.Errorf("extract: %w", err)
		return res
	}
	res.FromCache = fromCache

	record, err := p.validator.Validate(candidate)
	if err != nil {
		res.Err = fmt.Errorf("validate: %w", err)
		return res
	}

	res.Record = record
	res.Raw = json.RawMessage(candidate)

	if p.store != nil && !fromCache {
		_ = p.store.Set(cache.Key(text), candidate, p.cfg.Cache.TTL)
	}
	return res
}

// extractCandidate consults the cache before calling the provider.
// Only candidates that previously passed validation are stored, so a
// cache hit skips the provider call; cached bytes are still validated
// on the way in.
func (p *Pipeline) extractCandidate(ctx context.Context, text string) ([]byte, bool, error) {
	if p.store != nil {
		if cached, found := p.store.Get(cache.Key(text)); found {
			return cached, true, nil
		}
	}
	candidate, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, false, err
	}
	return candidate, false, nil
}

// engineFor picks the recognition engine by file type: fragment
// sidecars from an external OCR run, or the PDF text layer.
func (p *Pipeline) engineFor(path string) ocr.Engine {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return p.fileEngine
	}
	return p.pdfEngine
}
