package worker

import (
	"context"
	"errors"

	"github.com/skyfleet/adscan/internal/evaluate"
	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/pipeline"
)

// EvaluationJob classifies one aircraft against one validated record.
// Row and Col pin the verdict's position in the matrix, so completion
// order never matters.
type EvaluationJob struct {
	Row      int
	Col      int
	Record   *model.ApplicabilityRecord
	Aircraft model.FleetAircraft
}

// Execute implements Job.
func (j *EvaluationJob) Execute(_ context.Context) Result {
	verdict, err := evaluate.Evaluate(j.Record, j.Aircraft)
	return &EvaluationOutcome{Row: j.Row, Col: j.Col, Verdict: verdict, Error: err}
}

// EvaluationOutcome is one cell of the classification matrix.
type EvaluationOutcome struct {
	Row     int
	Col     int
	Verdict model.Verdict
	Error   error
}

// Err implements Result.
func (o *EvaluationOutcome) Err() error { return o.Error }

// EvaluateMatrix runs the evaluator over the Cartesian product of
// validated documents and fleet aircraft. Documents that failed
// processing contribute no columns. Evaluation errors are violated
// preconditions (namespace conflicts past validation); they abort the
// matrix because a partially guessed classification is worse than none.
func EvaluateMatrix(ctx context.Context, docs []*pipeline.DocumentResult, fleet []model.FleetAircraft, workers int) (*model.Matrix, error) {
	var labels []string
	var records []*model.ApplicabilityRecord
	for _, doc := range docs {
		if doc.Err != nil || doc.Record == nil {
			continue
		}
		labels = append(labels, doc.Label)
		records = append(records, doc.Record)
	}

	matrix := &model.Matrix{Columns: labels, Rows: make([]model.MatrixRow, len(fleet))}
	for i, ac := range fleet {
		matrix.Rows[i] = model.MatrixRow{
			Aircraft: ac,
			Verdicts: make([]model.Verdict, len(records)),
		}
	}
	if len(records) == 0 || len(fleet) == 0 {
		return matrix, nil
	}

	pool := NewPool(workers)
	pool.Start()

	stop := context.AfterFunc(ctx, pool.Shutdown)
	defer stop()

	for row, ac := range fleet {
		for col, rec := range records {
			pool.Submit(&EvaluationJob{Row: row, Col: col, Record: rec, Aircraft: ac})
		}
	}

	var errs []error
	results := pool.Wait()
	for _, result := range results {
		out := result.(*EvaluationOutcome)
		if out.Error != nil {
			errs = append(errs, out.Error)
			continue
		}
		matrix.Rows[out.Row].Verdicts[out.Col] = out.Verdict
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(results) != len(fleet)*len(records) {
		return nil, errors.New("evaluation incomplete: pool cancelled before all cells were classified")
	}
	return matrix, nil
}
