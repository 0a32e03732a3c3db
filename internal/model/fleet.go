package model

// FleetAircraft is one row of the operator's fleet record.
type FleetAircraft struct {
	// Registration is the tail number, kept for reporting only.
	Registration string `json:"registration,omitempty"`

	// Model is the exact type certificate variant, e.g. "A320-214".
	Model string `json:"aircraft_model"`

	// MSN is the manufacturer serial number.
	MSN int `json:"msn"`

	// ModificationsApplied holds free-text tokens describing embodied
	// modifications and incorporated service bulletins. Each token is
	// classified at evaluation time into exactly one identifier
	// namespace via the disjoint grammars.
	ModificationsApplied []string `json:"modifications_applied,omitempty"`
}
