// Package fleet loads operator fleet records from CSV or XLSX files.
package fleet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/skyfleet/adscan/internal/model"
)

// Load reads a fleet file, dispatching on the extension.
func Load(path string) ([]model.FleetAircraft, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported fleet file format: %s (expected .csv or .xlsx)", path)
	}
}

func loadCSV(path string) ([]model.FleetAircraft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read fleet csv: %w", err)
	}
	return parseRows(rows)
}

func loadXLSX(path string) ([]model.FleetAircraft, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("fleet workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read fleet sheet: %w", err)
	}
	return parseRows(rows)
}

// parseRows maps a header row plus data rows into fleet records. Column
// order is free; headers are matched case-insensitively.
func parseRows(rows [][]string) ([]model.FleetAircraft, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("fleet file has no data rows")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	modelCol, ok := cols["aircraft_model"]
	if !ok {
		return nil, fmt.Errorf("fleet file is missing the aircraft_model column")
	}
	msnCol, ok := cols["msn"]
	if !ok {
		return nil, fmt.Errorf("fleet file is missing the msn column")
	}
	modsCol, hasMods := cols["modifications_applied"]
	regCol, hasReg := cols["registration"]

	fleet := make([]model.FleetAircraft, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		ac := model.FleetAircraft{
			Model: strings.TrimSpace(cell(row, modelCol)),
		}
		if ac.Model == "" {
			return nil, fmt.Errorf("fleet row %d: aircraft_model is empty", i+2)
		}

		msn, err := strconv.Atoi(strings.TrimSpace(cell(row, msnCol)))
		if err != nil {
			return nil, fmt.Errorf("fleet row %d: invalid msn %q", i+2, cell(row, msnCol))
		}
		ac.MSN = msn

		if hasReg {
			ac.Registration = strings.TrimSpace(cell(row, regCol))
		}
		if hasMods {
			ac.ModificationsApplied = splitModifications(cell(row, modsCol))
		}

		fleet = append(fleet, ac)
	}

	if len(fleet) == 0 {
		return nil, fmt.Errorf("fleet file has no data rows")
	}
	return fleet, nil
}

// splitModifications parses the free-text applied-modifications cell.
// "none"-like placeholders yield an empty list.
func splitModifications(raw string) []string {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "none", "n/a", "-":
		return nil
	}

	parts := strings.Split(raw, ",")
	mods := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			mods = append(mods, p)
		}
	}
	return mods
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
