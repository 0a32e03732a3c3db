package model

import "encoding/json"

// MSNRange is a continuous span of manufacturer serial numbers. Bounds
// are optional: a nil Start means "no lower bound", a nil End means "no
// upper bound". Each bound is independently inclusive or exclusive.
type MSNRange struct {
	Start          *int `json:"start,omitempty"`
	End            *int `json:"end,omitempty"`
	InclusiveStart bool `json:"inclusive_start"`
	InclusiveEnd   bool `json:"inclusive_end"`
}

// UnmarshalJSON decodes a range with inclusive bounds as the default.
// Directive language ("MSN 5000 through 6000") is inclusive unless the
// text says otherwise, so a candidate that omits the flags must not
// silently turn both bounds exclusive.
func (r *MSNRange) UnmarshalJSON(data []byte) error {
	type plain MSNRange
	decoded := plain{InclusiveStart: true, InclusiveEnd: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = MSNRange(decoded)
	return nil
}

// Contains reports whether msn falls inside the range, respecting the
// inclusive/exclusive flags of each bound.
func (r MSNRange) Contains(msn int) bool {
	if r.Start != nil {
		if r.InclusiveStart {
			if msn < *r.Start {
				return false
			}
		} else if msn <= *r.Start {
			return false
		}
	}
	if r.End != nil {
		if r.InclusiveEnd {
			if msn > *r.End {
				return false
			}
		} else if msn >= *r.End {
			return false
		}
	}
	return true
}

// MSNConstraint selects a set of serial numbers by one of three
// selectors (all, range, specific list) and marks the selection as an
// inclusion or an explicit exclusion ("all except ..." language).
type MSNConstraint struct {
	All          bool      `json:"all,omitempty"`
	Range        *MSNRange `json:"range,omitempty"`
	SpecificMSNs []int     `json:"specific_msns,omitempty"`
	Excluded     bool      `json:"excluded,omitempty"`
}

// Matches reports whether msn is covered by this constraint's selector.
// The Excluded flag is interpreted by the evaluator, not here.
func (c MSNConstraint) Matches(msn int) bool {
	if c.All {
		return true
	}
	if c.Range != nil && c.Range.Contains(msn) {
		return true
	}
	for _, m := range c.SpecificMSNs {
		if m == msn {
			return true
		}
	}
	return false
}

// ModificationConstraint references a manufacturer modification number.
// Modification identifiers live in a namespace disjoint from service
// bulletins and are validated by a distinct grammar.
type ModificationConstraint struct {
	ID       string `json:"modification_id"`
	Embodied *bool  `json:"embodied,omitempty"`
	Excluded bool   `json:"excluded"`
}

// SBConstraint references a service bulletin. MinRevision, when set,
// means the exclusion only applies at that revision or later: an
// aircraft that incorporated the bulletin below the minimum revision is
// not excluded by it.
type SBConstraint struct {
	ID           string `json:"sb_identifier"`
	MinRevision  *int   `json:"min_revision,omitempty"`
	Incorporated *bool  `json:"incorporated,omitempty"`
	Excluded     bool   `json:"excluded"`
}

// AircraftGroup is a named partition of the applicability scope, used
// when a directive assigns different requirements to different subsets
// of aircraft.
type AircraftGroup struct {
	Label          string          `json:"group_id"`
	Models         []string        `json:"models,omitempty"`
	MSNConstraints []MSNConstraint `json:"msn_constraints,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// ComplianceTime is a single compliance threshold or recurring interval.
type ComplianceTime struct {
	Value        *int   `json:"value,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Reference    string `json:"reference,omitempty"`
	CalendarDate string `json:"calendar_date,omitempty"`
	IsInterval   bool   `json:"is_interval,omitempty"`
}

// RequiredAction is one numbered paragraph of the directive's required
// actions. Actions are non-evaluative: they are carried through to the
// report and never influence the applicability verdict.
type RequiredAction struct {
	ParagraphID     string           `json:"paragraph_id"`
	Type            string           `json:"action_type"`
	Description     string           `json:"description"`
	AppliesToGroups []string         `json:"applies_to_groups,omitempty"`
	ComplianceTimes []ComplianceTime `json:"compliance_times,omitempty"`
	References      []string         `json:"reference_documents,omitempty"`
}

// ApplicabilityRecord is the validated, typed extraction of one
// airworthiness directive. It is constructed exactly once per document
// by the validator and read-only afterwards.
type ApplicabilityRecord struct {
	ADNumber         string   `json:"ad_number"`
	IssuingAuthority string   `json:"issuing_authority,omitempty"`
	EffectiveDate    string   `json:"effective_date,omitempty"`
	Revision         string   `json:"revision,omitempty"`
	Supersedes       []string `json:"supersedes,omitempty"`

	Models         []string                 `json:"models"`
	MSNConstraints []MSNConstraint          `json:"msn_constraints,omitempty"`
	ModConstraints []ModificationConstraint `json:"modification_constraints,omitempty"`
	SBConstraints  []SBConstraint           `json:"sb_constraints,omitempty"`
	Groups         []AircraftGroup          `json:"groups,omitempty"`

	RequiredActions []RequiredAction `json:"requirements,omitempty"`
}
