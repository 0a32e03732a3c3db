package model

// Status is the classification outcome for one (directive, aircraft)
// pair.
type Status string

const (
	// StatusAffected means the aircraft is in scope and no exclusion
	// applies: the directive's requirements bind this aircraft.
	StatusAffected Status = "affected"

	// StatusNotApplicable means the aircraft never enters the
	// directive's scope (model or serial number out of range).
	StatusNotApplicable Status = "not_applicable"

	// StatusNotAffected means the aircraft is in scope but an embodied
	// modification or incorporated service bulletin excludes it.
	StatusNotAffected Status = "not_affected"
)

// Verdict is the immutable result of one evaluation. NotAffected
// verdicts always carry the identifier that triggered the exclusion.
type Verdict struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Affected returns the in-scope, no-exclusion verdict.
func Affected() Verdict { return Verdict{Status: StatusAffected} }

// NotApplicable returns the out-of-scope verdict.
func NotApplicable() Verdict { return Verdict{Status: StatusNotApplicable} }

// NotAffected returns the excluded-by-identifier verdict.
func NotAffected(reason string) Verdict {
	return Verdict{Status: StatusNotAffected, Reason: reason}
}

func (v Verdict) String() string {
	switch v.Status {
	case StatusAffected:
		return "Affected"
	case StatusNotApplicable:
		return "Not applicable"
	case StatusNotAffected:
		if v.Reason != "" {
			return "Not affected (" + v.Reason + ")"
		}
		return "Not affected"
	default:
		return string(v.Status)
	}
}
