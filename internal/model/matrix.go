package model

// MatrixRow is the classification of one fleet aircraft against every
// successfully processed directive, in column order.
type MatrixRow struct {
	Aircraft FleetAircraft `json:"aircraft"`
	Verdicts []Verdict     `json:"verdicts"`
}

// Matrix is the batch result: one row per fleet aircraft, one column
// per directive that passed validation. Failed documents contribute no
// columns; they are listed in the run summary instead.
type Matrix struct {
	Columns []string    `json:"columns"`
	Rows    []MatrixRow `json:"rows"`
}

// DocumentStatus records the per-document success flag for the run
// summary. Degraded marks documents whose layout analysis fell back to
// a plain top-to-bottom flow; their extractions deserve a second look.
type DocumentStatus struct {
	Label    string `json:"label"`
	OK       bool   `json:"ok"`
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
}
