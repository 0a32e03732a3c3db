package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/skyfleet/adscan/internal/model"
)

// Renderer writes the batch outputs: the classification matrix (CSV and
// XLSX), the validated extraction sidecars, and the per-document run
// summary.
type Renderer struct {
	cfg model.OutputConfig
}

// NewRenderer creates a renderer.
func NewRenderer(cfg model.OutputConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// RunDir creates a fresh output directory for this run, named by a
// short random id and the date so repeated runs never collide.
func (r *Renderer) RunDir() (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString()[:8], time.Now().Format("060102"))
	dir := filepath.Join(r.cfg.Dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	return dir, nil
}

// WriteAll renders every configured output into dir.
func (r *Renderer) WriteAll(dir string, matrix *model.Matrix, results []*DocumentResult) error {
	if err := r.WriteMatrixCSV(filepath.Join(dir, "ad_classification_results.csv"), matrix); err != nil {
		return err
	}
	if r.cfg.WriteXLSX {
		if err := r.WriteMatrixXLSX(filepath.Join(dir, "ad_classification_results.xlsx"), matrix); err != nil {
			return err
		}
	}
	if r.cfg.WriteJSON {
		if err := r.WriteExtractions(filepath.Join(dir, "ad_extractions.json"), results); err != nil {
			return err
		}
	}
	return r.WriteSummary(filepath.Join(dir, "run_summary.json"), results)
}

func matrixHeader(matrix *model.Matrix) []string {
	header := []string{"registration", "aircraft_model", "msn", "modifications_applied"}
	return append(header, matrix.Columns...)
}

func matrixRow(row model.MatrixRow) []string {
	cells := []string{
		row.Aircraft.Registration,
		row.Aircraft.Model,
		fmt.Sprintf("%d", row.Aircraft.MSN),
		strings.Join(row.Aircraft.ModificationsApplied, ", "),
	}
	for _, v := range row.Verdicts {
		cells = append(cells, v.String())
	}
	return cells
}

// WriteMatrixCSV writes the classification matrix as CSV.
func (r *Renderer) WriteMatrixCSV(path string, matrix *model.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(matrixHeader(matrix)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range matrix.Rows {
		if err := w.Write(matrixRow(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteMatrixXLSX writes the classification matrix as a workbook.
func (r *Renderer) WriteMatrixXLSX(path string, matrix *model.Matrix) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Classification"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range matrixHeader(matrix) {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cellName, h)
	}

	for rowIdx, row := range matrix.Rows {
		for colIdx, v := range matrixRow(row) {
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cellName, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteExtractions writes the validated record per document, keyed by
// label, as the audit sidecar. Failed documents are omitted here and
// reported in the summary instead.
func (r *Renderer) WriteExtractions(path string, results []*DocumentResult) error {
	extractions := make(map[string]json.RawMessage)
	for _, res := range results {
		if res.Err == nil && res.Raw != nil {
			extractions[res.Label] = res.Raw
		}
	}

	data, err := json.MarshalIndent(extractions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal extractions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write extractions: %w", err)
	}
	return nil
}

// WriteSummary writes the per-document success flags and layout
// degradation markers.
func (r *Renderer) WriteSummary(path string, results []*DocumentResult) error {
	statuses := make([]model.DocumentStatus, 0, len(results))
	for _, res := range results {
		st := model.DocumentStatus{Label: res.Label, OK: res.Err == nil, Degraded: res.Degraded}
		if res.Err != nil {
			st.Error = res.Err.Error()
		}
		statuses = append(statuses, st)
	}

	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
