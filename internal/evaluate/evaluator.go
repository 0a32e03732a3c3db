package evaluate

import (
	"fmt"
	"strings"

	"github.com/skyfleet/adscan/internal/model"
	"github.com/skyfleet/adscan/internal/validate"
)

// Evaluate classifies one fleet aircraft against one validated
// directive record. It is a pure function: no I/O, no shared state,
// identical inputs always produce the identical verdict.
//
// The decision runs in three short-circuiting stages:
//
//  1. Model: the aircraft's model must appear in the record's model
//     list or in a group definition. Matching is exact string equality
//     after normalization; partial matches never count.
//  2. Serial number: the MSN must be covered by at least one inclusion
//     constraint and by no exclusion constraint.
//  3. Exclusions: every applied-modification token is classified into
//     its identifier namespace; a token matching an exclusion entry
//     (respecting service bulletin minimum revisions) yields
//     NotAffected with the matched identifier as reason.
//
// A namespace conflict in the record is a violated precondition: the
// validator guarantees disjointness, so Evaluate reports it as an error
// instead of guessing.
func Evaluate(rec *model.ApplicabilityRecord, ac model.FleetAircraft) (model.Verdict, error) {
	if err := checkDisjoint(rec); err != nil {
		return model.Verdict{}, err
	}

	if !modelApplies(rec, ac) {
		return model.NotApplicable(), nil
	}

	if !msnApplies(rec.MSNConstraints, ac.MSN) {
		return model.NotApplicable(), nil
	}

	return applyExclusions(rec, ac)
}

// normalizeModel makes model comparison case-insensitive and
// whitespace-trimmed. Nothing more: substring or family matching would
// silently widen a directive's scope.
func normalizeModel(m string) string {
	return strings.ToUpper(strings.TrimSpace(m))
}

// modelApplies resolves stage one. Group membership counts only when
// the group's own serial number constraints (if any) also cover the
// aircraft, since groups are defined as (model, msn-range) pairs.
func modelApplies(rec *model.ApplicabilityRecord, ac model.FleetAircraft) bool {
	m := normalizeModel(ac.Model)
	for _, rm := range rec.Models {
		if normalizeModel(rm) == m {
			return true
		}
	}
	for _, g := range rec.Groups {
		for _, gm := range g.Models {
			if normalizeModel(gm) != m {
				continue
			}
			if msnApplies(g.MSNConstraints, ac.MSN) {
				return true
			}
		}
	}
	return false
}

// msnApplies resolves a serial number against a constraint list. An
// empty list means the directive does not restrict by MSN. Exclusions
// are checked first: a serial number named in an "except MSN ..."
// clause is out of scope no matter which inclusion also covers it. A
// list carrying only exclusions means "all except".
func msnApplies(cs []model.MSNConstraint, msn int) bool {
	if len(cs) == 0 {
		return true
	}

	hasInclusion := false
	for _, c := range cs {
		if c.Excluded {
			if c.Matches(msn) {
				return false
			}
		} else {
			hasInclusion = true
		}
	}
	if !hasInclusion {
		return true
	}

	for _, c := range cs {
		if !c.Excluded && c.Matches(msn) {
			return true
		}
	}
	return false
}

// applyExclusions resolves stage three: classify each applied token by
// grammar and match it against the record's exclusion entries. Tokens
// matching neither grammar are fleet-record remarks and are ignored.
func applyExclusions(rec *model.ApplicabilityRecord, ac model.FleetAircraft) (model.Verdict, error) {
	for _, token := range ac.ModificationsApplied {
		ns, err := validate.ClassifyIdentifier(token)
		if err != nil {
			return model.Verdict{}, fmt.Errorf("classify applied token %q: %w", token, err)
		}

		switch ns {
		case validate.NamespaceModification:
			id, _ := validate.ParseModification(token)
			for _, mc := range rec.ModConstraints {
				if !mc.Excluded {
					continue
				}
				cid, ok := validate.ParseModification(mc.ID)
				if ok && cid == id {
					return model.NotAffected(cid), nil
				}
			}

		case validate.NamespaceServiceBulletin:
			id, rev, _ := validate.ParseServiceBulletin(token)
			for _, sc := range rec.SBConstraints {
				if !sc.Excluded {
					continue
				}
				cid, _, ok := validate.ParseServiceBulletin(sc.ID)
				if !ok || cid != id {
					continue
				}
				// A bulletin incorporated below the stated minimum
				// revision does not satisfy the exclusion.
				if sc.MinRevision != nil && rev < *sc.MinRevision {
					continue
				}
				return model.NotAffected(cid), nil
			}
		}
	}
	return model.Affected(), nil
}

// checkDisjoint re-verifies the validator's disjointness guarantee.
// Records reach the evaluator only through validation, so a conflict
// here is an internal consistency defect.
func checkDisjoint(rec *model.ApplicabilityRecord) error {
	for _, mc := range rec.ModConstraints {
		ns, err := validate.ClassifyIdentifier(mc.ID)
		if err != nil {
			return fmt.Errorf("internal consistency: %w", err)
		}
		if ns == validate.NamespaceServiceBulletin {
			return fmt.Errorf("internal consistency: %q in modification namespace parses as service bulletin: %w",
				mc.ID, validate.ErrNamespaceConflict)
		}
	}
	for _, sc := range rec.SBConstraints {
		ns, err := validate.ClassifyIdentifier(sc.ID)
		if err != nil {
			return fmt.Errorf("internal consistency: %w", err)
		}
		if ns == validate.NamespaceModification {
			return fmt.Errorf("internal consistency: %q in service bulletin namespace parses as modification: %w",
				sc.ID, validate.ErrNamespaceConflict)
		}
	}
	return nil
}
