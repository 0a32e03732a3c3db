package assemble

import (
	"strings"
	"testing"

	"github.com/skyfleet/adscan/internal/model"
)

func testConfig() model.AssemblyConfig {
	return model.DefaultConfig().Assembly
}

func frag(text string, top, left, width, height float64) model.Fragment {
	return model.Fragment{
		Text:       text,
		Confidence: 0.95,
		Box:        model.Box{Top: top, Left: left, Width: width, Height: height},
	}
}

func TestAssembler_SingleLine(t *testing.T) {
	a := NewAssembler(testConfig())

	frags := []model.Fragment{
		frag("Applicability:", 100, 50, 120, 12),
		frag("all", 100, 180, 30, 12),
		frag("A320-211", 100, 220, 80, 12),
		frag("aeroplanes", 100, 310, 90, 12),
	}

	pt := a.AssemblePage(1, frags)
	want := "Applicability: all A320-211 aeroplanes"
	if pt.Text != want {
		t.Errorf("Expected %q, got %q", want, pt.Text)
	}
	if len(pt.Lines) != 1 {
		t.Errorf("Expected 1 line, got %d", len(pt.Lines))
	}
}

func TestAssembler_InputOrderIndependence(t *testing.T) {
	a := NewAssembler(testConfig())

	frags := []model.Fragment{
		frag("first", 100, 50, 40, 12),
		frag("line", 102, 100, 40, 12),
		frag("second", 140, 50, 50, 12),
		frag("line", 141, 110, 40, 12),
		frag("third", 180, 50, 40, 12),
	}

	reference := a.AssemblePage(1, frags)

	// Same set, reversed emission order.
	reversed := make([]model.Fragment, len(frags))
	for i, f := range frags {
		reversed[len(frags)-1-i] = f
	}
	got := a.AssemblePage(1, reversed)

	if got.Text != reference.Text {
		t.Errorf("Assembly depends on input order:\n forward: %q\n reverse: %q", reference.Text, got.Text)
	}
	want := "first line\nsecond line\nthird"
	if reference.Text != want {
		t.Errorf("Expected %q, got %q", want, reference.Text)
	}
}

func TestAssembler_YThresholdSplitsLines(t *testing.T) {
	cfg := testConfig()
	cfg.YThreshold = 15.0
	a := NewAssembler(cfg)

	frags := []model.Fragment{
		frag("near", 100, 50, 40, 12),
		frag("enough", 110, 100, 50, 12),
		frag("apart", 140, 50, 40, 12),
	}

	pt := a.AssemblePage(1, frags)
	want := "near enough\napart"
	if pt.Text != want {
		t.Errorf("Expected %q, got %q", want, pt.Text)
	}
}

func TestAssembler_TouchJoin(t *testing.T) {
	a := NewAssembler(testConfig())

	// A bulletin identifier split across two fragments with touching
	// boxes must reassemble without a space.
	frags := []model.Fragment{
		frag("SB", 100, 50, 20, 12),
		frag("A320-57-", 100, 80, 70, 12),
		frag("1089", 100, 150.5, 40, 12),
	}

	pt := a.AssemblePage(1, frags)
	want := "SB A320-57-1089"
	if pt.Text != want {
		t.Errorf("Expected %q, got %q", want, pt.Text)
	}
}

func TestAssembler_TwoColumnLayout(t *testing.T) {
	cfg := testConfig()
	a := NewAssembler(cfg)

	// Two well-populated bands separated by a wide gutter: the whole
	// left column must precede the right column in the output.
	var frags []model.Fragment
	for i := 0; i < 6; i++ {
		frags = append(frags, frag("left", float64(100+i*20), 50, 60, 12))
		frags = append(frags, frag("right", float64(100+i*20), 350, 60, 12))
	}

	pt := a.AssemblePage(1, frags)
	if pt.Degraded {
		t.Error("Expected clean two-column split, got degraded flag")
	}

	lines := strings.Split(pt.Text, "\n")
	if len(lines) != 12 {
		t.Fatalf("Expected 12 lines, got %d: %q", len(lines), pt.Text)
	}
	for i, line := range lines {
		want := "left"
		if i >= 6 {
			want = "right"
		}
		if line != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, line)
		}
	}
}

func TestAssembler_AmbiguousColumnsDegrade(t *testing.T) {
	a := NewAssembler(testConfig())

	// Three populated bands cannot be split safely; the page degrades
	// to a single top-to-bottom flow and is flagged.
	var frags []model.Fragment
	for i := 0; i < 6; i++ {
		frags = append(frags, frag("a", float64(100+i*20), 50, 40, 12))
		frags = append(frags, frag("b", float64(100+i*20), 300, 40, 12))
		frags = append(frags, frag("c", float64(100+i*20), 550, 40, 12))
	}

	pt := a.AssemblePage(1, frags)
	if !pt.Degraded {
		t.Error("Expected degraded flag for three-band layout")
	}

	want := strings.TrimSuffix(strings.Repeat("a b c\n", 6), "\n")
	if pt.Text != want {
		t.Errorf("Expected interleaved flow %q, got %q", want, pt.Text)
	}
}

func TestAssembler_SparseBandIsNotAColumn(t *testing.T) {
	a := NewAssembler(testConfig())

	// A page number far to the right must not trigger column handling.
	var frags []model.Fragment
	for i := 0; i < 8; i++ {
		frags = append(frags, frag("body", float64(100+i*20), 50, 400, 12))
	}
	frags = append(frags, frag("3", 700, 560, 10, 10))

	pt := a.AssemblePage(1, frags)
	if pt.Degraded {
		t.Error("Expected single-column page, got degraded flag")
	}
	lines := strings.Split(pt.Text, "\n")
	if lines[len(lines)-1] != "3" {
		t.Errorf("Expected page number last, got %q", lines[len(lines)-1])
	}
}

func TestAssembler_LowConfidenceFlag(t *testing.T) {
	cfg := testConfig()
	cfg.ConfidenceFloor = 0.55
	a := NewAssembler(cfg)

	shaky := frag("24591", 100, 100, 50, 12)
	shaky.Confidence = 0.40

	pt := a.AssemblePage(1, []model.Fragment{
		frag("mod", 100, 50, 40, 12),
		shaky,
	})

	if len(pt.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(pt.Lines))
	}
	if !pt.Lines[0].LowConfidence {
		t.Error("Expected low-confidence flag on the line")
	}
	if !strings.Contains(pt.Text, "24591") {
		t.Error("Low-confidence fragments must be kept, not dropped")
	}
}

func TestAssembler_EmptyAndBlankFragments(t *testing.T) {
	a := NewAssembler(testConfig())

	pt := a.AssemblePage(1, []model.Fragment{
		frag("   ", 100, 50, 40, 12),
		frag("", 100, 100, 40, 12),
	})
	if pt.Text != "" {
		t.Errorf("Expected empty page text, got %q", pt.Text)
	}
	if len(pt.Lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(pt.Lines))
	}
}

func TestAssembler_DocumentPageHeaders(t *testing.T) {
	a := NewAssembler(testConfig())

	pages := [][]model.Fragment{
		{frag("page one body", 100, 50, 120, 12)},
		{}, // blank page contributes nothing
		{frag("page three body", 100, 50, 120, 12)},
	}

	assembled, text := a.AssembleDocument(pages)
	if len(assembled) != 3 {
		t.Fatalf("Expected 3 assembled pages, got %d", len(assembled))
	}
	if !strings.Contains(text, "PAGE 1 / 3") {
		t.Error("Expected header for page 1")
	}
	if strings.Contains(text, "PAGE 2 / 3") {
		t.Error("Blank page must not emit a header")
	}
	if !strings.Contains(text, "PAGE 3 / 3") {
		t.Error("Expected header for page 3")
	}
	if !strings.Contains(text, "page one body") || !strings.Contains(text, "page three body") {
		t.Errorf("Expected page bodies in document text, got %q", text)
	}
}
