package model

// Box is an axis-aligned bounding box in page coordinates, origin at the
// top-left corner. Units depend on the recognition source (pixels for
// raster OCR, points for PDF text layers); the assembler only compares
// coordinates from the same page, so the unit never matters.
type Box struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge of the box.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the bottom edge of the box.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// VCenter returns the vertical center of the box.
func (b Box) VCenter() float64 { return b.Top + b.Height/2 }

// Fragment is a single recognized text span produced by a recognition
// engine. Fragments arrive unordered; the assembler owns them during
// reading-order reconstruction and discards them afterwards.
type Fragment struct {
	Text       string  `json:"text"`
	Page       int     `json:"page"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// AssembledLine is an ordered run of fragments believed to form one
// reading line, left to right.
type AssembledLine struct {
	Fragments []Fragment `json:"fragments"`
	Top       float64    `json:"top"`
	Bottom    float64    `json:"bottom"`

	// LowConfidence marks lines containing at least one fragment below
	// the configured confidence floor. Such fragments are kept, never
	// dropped; rejection of unreliable content is the validator's job.
	LowConfidence bool `json:"low_confidence"`
}

// PageText is the assembled output for one page.
type PageText struct {
	Page  int             `json:"page"`
	Lines []AssembledLine `json:"lines"`
	Text  string          `json:"text"`

	// Degraded is set when a layout heuristic (column detection) was
	// ambiguous and the assembler fell back to plain top-to-bottom
	// ordering. The output is still deterministic.
	Degraded bool `json:"degraded"`
}
