package model

import (
	"encoding/json"
	"testing"
)

func TestMSNRange_Contains(t *testing.T) {
	start, end := 1000, 2000

	tests := []struct {
		name string
		r    MSNRange
		msn  int
		want bool
	}{
		{"inside", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}, 1500, true},
		{"inclusive lower boundary", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}, 1000, true},
		{"inclusive upper boundary", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}, 2000, true},
		{"exclusive lower boundary", MSNRange{Start: &start, End: &end, InclusiveStart: false, InclusiveEnd: true}, 1000, false},
		{"exclusive upper boundary", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: false}, 2000, false},
		{"below", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}, 999, false},
		{"above", MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}, 2001, false},
		{"open lower bound", MSNRange{End: &end, InclusiveEnd: true}, 1, true},
		{"open upper bound", MSNRange{Start: &start, InclusiveStart: true}, 999999, true},
		{"fully open", MSNRange{}, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.msn); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.msn, got, tt.want)
			}
		})
	}
}

func TestMSNRange_UnmarshalDefaultsToInclusive(t *testing.T) {
	tests := []struct {
		name string
		data string
		msn  int
		want bool
	}{
		{"lower boundary, flags omitted", `{"start":5000,"end":6000}`, 5000, true},
		{"upper boundary, flags omitted", `{"start":5000,"end":6000}`, 6000, true},
		{"inside, flags omitted", `{"start":5000,"end":6000}`, 5500, true},
		{"below, flags omitted", `{"start":5000,"end":6000}`, 4999, false},
		{"explicit exclusive upper wins", `{"start":5000,"end":6000,"inclusive_end":false}`, 6000, false},
		{"explicit exclusive lower wins", `{"start":5000,"end":6000,"inclusive_start":false}`, 5000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r MSNRange
			if err := json.Unmarshal([]byte(tt.data), &r); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := r.Contains(tt.msn); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.msn, got, tt.want)
			}
		})
	}
}

func TestMSNConstraint_Matches(t *testing.T) {
	start, end := 100, 200

	tests := []struct {
		name string
		c    MSNConstraint
		msn  int
		want bool
	}{
		{"all", MSNConstraint{All: true}, 7, true},
		{"range hit", MSNConstraint{Range: &MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}}, 150, true},
		{"range miss", MSNConstraint{Range: &MSNRange{Start: &start, End: &end, InclusiveStart: true, InclusiveEnd: true}}, 50, false},
		{"specific hit", MSNConstraint{SpecificMSNs: []int{5, 7, 9}}, 7, true},
		{"specific miss", MSNConstraint{SpecificMSNs: []int{5, 7, 9}}, 8, false},
		{"empty selector matches nothing", MSNConstraint{}, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Matches(tt.msn); got != tt.want {
				t.Errorf("Matches(%d) = %v, want %v", tt.msn, got, tt.want)
			}
		})
	}
}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		v    Verdict
		want string
	}{
		{Affected(), "Affected"},
		{NotApplicable(), "Not applicable"},
		{NotAffected("24591"), "Not affected (24591)"},
		{Verdict{Status: StatusNotAffected}, "Not affected"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
