package fleet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"registration,aircraft_model,msn,modifications_applied",
		`D-ABCD,A320-214,5234,"mod 24591, SB A320-57-1089 Rev 02"`,
		"D-EFGH,A320-232,6789,none",
		"",
		"D-IJKL,A321-111,150,",
	}, "\n"))

	fleet, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fleet) != 3 {
		t.Fatalf("Expected 3 aircraft, got %d", len(fleet))
	}

	first := fleet[0]
	if first.Registration != "D-ABCD" || first.Model != "A320-214" || first.MSN != 5234 {
		t.Errorf("Unexpected first aircraft: %+v", first)
	}
	if len(first.ModificationsApplied) != 2 {
		t.Fatalf("Expected 2 applied modifications, got %v", first.ModificationsApplied)
	}
	if first.ModificationsApplied[0] != "mod 24591" {
		t.Errorf("Expected first token preserved verbatim, got %q", first.ModificationsApplied[0])
	}

	if len(fleet[1].ModificationsApplied) != 0 {
		t.Errorf(`Expected "none" to yield no modifications, got %v`, fleet[1].ModificationsApplied)
	}
	if len(fleet[2].ModificationsApplied) != 0 {
		t.Errorf("Expected empty cell to yield no modifications, got %v", fleet[2].ModificationsApplied)
	}
}

func TestLoad_HeaderOrderAndCaseFree(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"MSN,Aircraft_Model",
		"100,A320-214",
	}, "\n"))

	fleet, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fleet) != 1 || fleet[0].MSN != 100 || fleet[0].Model != "A320-214" {
		t.Errorf("Unexpected fleet: %+v", fleet)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing model column",
			"registration,msn\nD-ABCD,100",
			"aircraft_model",
		},
		{
			"missing msn column",
			"aircraft_model\nA320-214",
			"msn",
		},
		{
			"invalid msn",
			"aircraft_model,msn\nA320-214,abc",
			"row 2",
		},
		{
			"empty model",
			"aircraft_model,msn\n ,100",
			"row 2",
		},
		{
			"header only",
			"aircraft_model,msn",
			"no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Expected error for %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("fleet.txt")
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported fleet file format") {
		t.Errorf("Unexpected error: %v", err)
	}
}
