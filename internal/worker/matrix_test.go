package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/pipeline"
	"github.com/skyfleet/adscan/internal/validate"
)

func docResult(label string, rec *model.ApplicabilityRecord) *pipeline.DocumentResult {
	return &pipeline.DocumentResult{Label: label, Record: rec}
}

func TestEvaluateMatrix_CellPlacement(t *testing.T) {
	docs := []*pipeline.DocumentResult{
		docResult("ad-a", &model.ApplicabilityRecord{
			ADNumber: "A",
			Models:   []string{"A320-214"},
		}),
		docResult("ad-b", &model.ApplicabilityRecord{
			ADNumber: "B",
			Models:   []string{"A321-111"},
		}),
	}
	fleet := []model.FleetAircraft{
		{Registration: "D-ABCD", Model: "A320-214", MSN: 100},
		{Registration: "D-EFGH", Model: "A321-111", MSN: 200},
	}

	matrix, err := EvaluateMatrix(context.Background(), docs, fleet, 4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(matrix.Columns) != 2 || matrix.Columns[0] != "ad-a" || matrix.Columns[1] != "ad-b" {
		t.Fatalf("Unexpected columns: %v", matrix.Columns)
	}
	if len(matrix.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(matrix.Rows))
	}

	// Row 0 (A320-214): affected by A, not applicable to B. Row 1 is
	// the mirror image.
	want := [][]model.Status{
		{model.StatusAffected, model.StatusNotApplicable},
		{model.StatusNotApplicable, model.StatusAffected},
	}
	for r, row := range matrix.Rows {
		for c, v := range row.Verdicts {
			if v.Status != want[r][c] {
				t.Errorf("Cell (%d,%d): expected %v, got %v", r, c, want[r][c], v.Status)
			}
		}
	}
}

func TestEvaluateMatrix_ManyCellsFewWorkers(t *testing.T) {
	// A realistic product: the cell count dwarfs the worker count and
	// every submission happens before collection starts, so the full
	// matrix must still come back with every cell in place.
	var docs []*pipeline.DocumentResult
	for i := 0; i < 5; i++ {
		docs = append(docs, docResult(fmt.Sprintf("ad-%d", i), &model.ApplicabilityRecord{
			ADNumber: fmt.Sprintf("2024-%04d", i),
			Models:   []string{"A320-214"},
		}))
	}
	var fleet []model.FleetAircraft
	for i := 0; i < 24; i++ {
		ac := model.FleetAircraft{Registration: fmt.Sprintf("D-A%03d", i), Model: "A320-214", MSN: 1000 + i}
		if i%2 == 1 {
			ac.Model = "B737-800"
		}
		fleet = append(fleet, ac)
	}

	matrix, err := EvaluateMatrix(context.Background(), docs, fleet, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(matrix.Rows) != 24 {
		t.Fatalf("Expected 24 rows, got %d", len(matrix.Rows))
	}
	for r, row := range matrix.Rows {
		if len(row.Verdicts) != 5 {
			t.Fatalf("Row %d: expected 5 verdicts, got %d", r, len(row.Verdicts))
		}
		want := model.StatusAffected
		if r%2 == 1 {
			want = model.StatusNotApplicable
		}
		for c, v := range row.Verdicts {
			if v.Status != want {
				t.Errorf("Cell (%d,%d): expected %v, got %v", r, c, want, v.Status)
			}
		}
	}
}

func TestEvaluateMatrix_FailedDocumentsContributeNoColumns(t *testing.T) {
	docs := []*pipeline.DocumentResult{
		docResult("good", &model.ApplicabilityRecord{ADNumber: "A", Models: []string{"A320-214"}}),
		{Label: "bad", Err: errors.New("extraction failed")},
	}
	fleet := []model.FleetAircraft{{Model: "A320-214", MSN: 100}}

	matrix, err := EvaluateMatrix(context.Background(), docs, fleet, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matrix.Columns) != 1 || matrix.Columns[0] != "good" {
		t.Errorf("Expected only the good document as a column, got %v", matrix.Columns)
	}
	if len(matrix.Rows[0].Verdicts) != 1 {
		t.Errorf("Expected 1 verdict per row, got %d", len(matrix.Rows[0].Verdicts))
	}
}

func TestEvaluateMatrix_EmptyInputs(t *testing.T) {
	fleet := []model.FleetAircraft{{Model: "A320-214", MSN: 100}}

	matrix, err := EvaluateMatrix(context.Background(), nil, fleet, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matrix.Columns) != 0 {
		t.Errorf("Expected no columns, got %v", matrix.Columns)
	}
	if len(matrix.Rows) != 1 {
		t.Errorf("Expected fleet rows even without documents, got %d", len(matrix.Rows))
	}
}

func TestEvaluateMatrix_PreconditionViolationAborts(t *testing.T) {
	docs := []*pipeline.DocumentResult{
		docResult("broken", &model.ApplicabilityRecord{
			ADNumber: "A",
			Models:   []string{"A320-214"},
			ModConstraints: []model.ModificationConstraint{
				{ID: "A320-57-1089", Excluded: true},
			},
		}),
	}
	fleet := []model.FleetAircraft{{Model: "A320-214", MSN: 100}}

	_, err := EvaluateMatrix(context.Background(), docs, fleet, 2)
	if err == nil {
		t.Fatal("Expected error for cross-namespace record")
	}
	if !errors.Is(err, validate.ErrNamespaceConflict) {
		t.Errorf("Expected ErrNamespaceConflict, got %v", err)
	}
}
