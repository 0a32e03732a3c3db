package worker

import (
	"context"
	"fmt"

	"github.com/skyfleet/adscan/internal/pipeline"
)

// DocumentProcessor runs the per-document pipeline; implemented by
// pipeline.Pipeline.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, path string) *pipeline.DocumentResult
}

// DocumentJob processes one directive document.
type DocumentJob struct {
	Path      string
	Processor DocumentProcessor
}

// Execute implements Job. A panic inside the pipeline (the pdf parser
// panics on some malformed inputs) becomes this document's error, so
// the batch keeps its one-bad-document isolation even past a bug.
func (j *DocumentJob) Execute(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = &DocumentOutcome{Result: &pipeline.DocumentResult{
				Label: pipeline.Label(j.Path),
				Path:  j.Path,
				Err:   fmt.Errorf("process document: panic: %v", r),
			}}
		}
	}()
	return &DocumentOutcome{Result: j.Processor.ProcessDocument(ctx, j.Path)}
}

// DocumentOutcome wraps a document result for the pool.
type DocumentOutcome struct {
	Result *pipeline.DocumentResult
}

// Err implements Result.
func (o *DocumentOutcome) Err() error { return o.Result.Err }

// BatchProcessor processes directive documents in parallel. A failed
// document is reported on its result and never aborts the batch.
type BatchProcessor struct {
	processor   DocumentProcessor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor DocumentProcessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessDocuments runs the pipeline over every path and returns the
// results in the input path order, so matrix columns stay stable across
// runs regardless of completion order.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, paths []string) []*pipeline.DocumentResult {
	if len(paths) == 0 {
		return nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Propagate caller cancellation into the pool; in-flight documents
	// stop at the next boundary and completed ones keep their results.
	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for _, path := range paths {
		pool.Submit(&DocumentJob{Path: path, Processor: b.processor})
	}

	byPath := make(map[string]*pipeline.DocumentResult, len(paths))
	for _, result := range pool.Wait() {
		res := result.(*DocumentOutcome).Result
		byPath[res.Path] = res
	}

	ordered := make([]*pipeline.DocumentResult, 0, len(paths))
	for _, path := range paths {
		if res, ok := byPath[path]; ok {
			ordered = append(ordered, res)
		}
	}
	return ordered
}
