package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/skyfleet/adscan/internal/model"
)

// Violation is one constraint the candidate failed.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a candidate extraction. It is fatal for the
// offending document and recoverable at the batch level: the document
// is skipped and reported, the run continues.
type ValidationError struct {
	Violations []Violation
	// Conflict is set when an identifier validated into both the
	// modification and service bulletin grammars.
	Conflict bool
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("extraction rejected (%d violations): %s", len(e.Violations), strings.Join(msgs, "; "))
}

// Unwrap exposes ErrNamespaceConflict for errors.Is when the rejection
// was caused by a namespace conflict.
func (e *ValidationError) Unwrap() error {
	if e.Conflict {
		return ErrNamespaceConflict
	}
	return nil
}

// Validator checks untrusted candidate records against the extraction
// schema: first the JSON shape, then the semantic constraints the shape
// cannot express (identifier grammars, namespace disjointness, range
// sanity).
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the extraction schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader([]byte(SchemaJSON))); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate turns a candidate byte payload into a typed
// ApplicabilityRecord or rejects it with the full violation list.
func (v *Validator) Validate(candidate []byte) (*model.ApplicabilityRecord, error) {
	var raw any
	if err := json.Unmarshal(candidate, &raw); err != nil {
		return nil, &ValidationError{Violations: []Violation{{
			Field:   "$",
			Message: fmt.Sprintf("candidate is not valid JSON: %v", err),
		}}}
	}

	if err := v.schema.Validate(raw); err != nil {
		return nil, &ValidationError{Violations: shapeViolations(err)}
	}

	var rec model.ApplicabilityRecord
	if err := json.Unmarshal(candidate, &rec); err != nil {
		return nil, &ValidationError{Violations: []Violation{{
			Field:   "$",
			Message: fmt.Sprintf("decode record: %v", err),
		}}}
	}

	verr := &ValidationError{}
	checkModels(&rec, verr)
	checkMSNConstraints("msn_constraints", rec.MSNConstraints, verr)
	checkModConstraints(&rec, verr)
	checkSBConstraints(&rec, verr)
	for _, g := range rec.Groups {
		checkMSNConstraints("groups["+g.Label+"].msn_constraints", g.MSNConstraints, verr)
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return &rec, nil
}

// shapeViolations flattens a jsonschema validation error into the
// violation list.
func shapeViolations(err error) []Violation {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Field: "$", Message: err.Error()}}
	}

	var out []Violation
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := e.InstanceLocation
			if field == "" {
				field = "$"
			}
			out = append(out, Violation{Field: field, Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

func checkModels(rec *model.ApplicabilityRecord, verr *ValidationError) {
	for i, m := range rec.Models {
		if strings.TrimSpace(m) == "" {
			verr.Violations = append(verr.Violations, Violation{
				Field:   fmt.Sprintf("models[%d]", i),
				Message: "model identifier is empty",
			})
		}
	}
}

func checkMSNConstraints(field string, cs []model.MSNConstraint, verr *ValidationError) {
	for i, c := range cs {
		if !c.All && c.Range == nil && len(c.SpecificMSNs) == 0 {
			verr.Violations = append(verr.Violations, Violation{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "constraint selects no serial numbers (no all flag, range, or specific list)",
			})
			continue
		}
		if c.Range == nil {
			continue
		}
		r := c.Range
		if r.Start != nil && r.End != nil && *r.Start > *r.End {
			verr.Violations = append(verr.Violations, Violation{
				Field:   fmt.Sprintf("%s[%d].range", field, i),
				Message: fmt.Sprintf("lower bound %d exceeds upper bound %d", *r.Start, *r.End),
			})
		}
	}
}

// checkModConstraints verifies every modification identifier against
// the modification grammar and rejects cross-namespace placement: a
// service bulletin code stored in a modification field is a structural
// extraction error, not something to tolerate by value matching.
func checkModConstraints(rec *model.ApplicabilityRecord, verr *ValidationError) {
	for i, mc := range rec.ModConstraints {
		field := fmt.Sprintf("modification_constraints[%d].modification_id", i)
		ns, err := ClassifyIdentifier(mc.ID)
		if err != nil {
			verr.Conflict = true
			verr.Violations = append(verr.Violations, Violation{Field: field, Message: err.Error()})
			continue
		}
		switch ns {
		case NamespaceModification:
		case NamespaceServiceBulletin:
			verr.Violations = append(verr.Violations, Violation{
				Field:   field,
				Message: fmt.Sprintf("%q is a service bulletin identifier placed in the modification namespace", mc.ID),
			})
		default:
			verr.Violations = append(verr.Violations, Violation{
				Field:   field,
				Message: fmt.Sprintf("%q does not match the modification identifier grammar", mc.ID),
			})
		}
	}
}

func checkSBConstraints(rec *model.ApplicabilityRecord, verr *ValidationError) {
	for i, sc := range rec.SBConstraints {
		field := fmt.Sprintf("sb_constraints[%d].sb_identifier", i)
		ns, err := ClassifyIdentifier(sc.ID)
		if err != nil {
			verr.Conflict = true
			verr.Violations = append(verr.Violations, Violation{Field: field, Message: err.Error()})
			continue
		}
		switch ns {
		case NamespaceServiceBulletin:
		case NamespaceModification:
			verr.Violations = append(verr.Violations, Violation{
				Field:   field,
				Message: fmt.Sprintf("%q is a modification identifier placed in the service bulletin namespace", sc.ID),
			})
		default:
			verr.Violations = append(verr.Violations, Violation{
				Field:   field,
				Message: fmt.Sprintf("%q does not match the service bulletin identifier grammar", sc.ID),
			})
		}
		if sc.MinRevision != nil && *sc.MinRevision < 0 {
			verr.Violations = append(verr.Violations, Violation{
				Field:   fmt.Sprintf("sb_constraints[%d].min_revision", i),
				Message: "revision must not be negative",
			})
		}
	}
}
