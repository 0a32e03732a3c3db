package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skyfleet/adscan/internal/model"
)

// Assembler reconstructs reading order from unordered recognized
// fragments. It is pure: the same fragment set yields the same output
// regardless of input iteration order, and malformed input degrades to
// a deterministic ordering instead of failing.
type Assembler struct {
	cfg  model.AssemblyConfig
	norm *Normalizer
}

// NewAssembler creates an assembler with the given thresholds.
func NewAssembler(cfg model.AssemblyConfig) *Assembler {
	return &Assembler{cfg: cfg, norm: NewNormalizer()}
}

// AssemblePage orders one page's fragments into lines and returns the
// page's linear text.
func (a *Assembler) AssemblePage(page int, frags []model.Fragment) model.PageText {
	out := model.PageText{Page: page}

	fs := make([]model.Fragment, 0, len(frags))
	for _, f := range frags {
		f.Text = a.norm.Normalize(f.Text)
		if f.Text == "" {
			continue
		}
		fs = append(fs, f)
	}
	if len(fs) == 0 {
		return out
	}

	// Canonical order first: assembly must be a function of the
	// fragment set, not of the sequence the recognizer emitted it in.
	sortCanonical(fs)

	columns, degraded := a.splitColumns(fs)
	out.Degraded = degraded

	for _, col := range columns {
		out.Lines = append(out.Lines, a.groupLines(col)...)
	}

	texts := make([]string, 0, len(out.Lines))
	for _, line := range out.Lines {
		texts = append(texts, a.joinLine(line))
	}
	out.Text = strings.Join(texts, "\n")
	return out
}

// AssembleDocument assembles every page and concatenates them into a
// single linear document text with page headers.
func (a *Assembler) AssembleDocument(pages [][]model.Fragment) ([]model.PageText, string) {
	assembled := make([]model.PageText, 0, len(pages))
	parts := make([]string, 0, len(pages))
	rule := strings.Repeat("=", 60)

	for i, frags := range pages {
		pt := a.AssemblePage(i+1, frags)
		assembled = append(assembled, pt)
		if pt.Text == "" {
			continue
		}
		header := fmt.Sprintf("%s\n  PAGE %d / %d\n%s", rule, i+1, len(pages), rule)
		parts = append(parts, header+"\n"+pt.Text)
	}
	return assembled, strings.Join(parts, "\n")
}

// sortCanonical orders fragments by vertical center, then left edge,
// then text. The text tie-break makes the order total for duplicate
// boxes.
func sortCanonical(fs []model.Fragment) {
	sort.Slice(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Box.VCenter() != b.Box.VCenter() {
			return a.Box.VCenter() < b.Box.VCenter()
		}
		if a.Box.Left != b.Box.Left {
			return a.Box.Left < b.Box.Left
		}
		return a.Text < b.Text
	})
}

// splitColumns detects multi-column layouts by merging the fragments'
// horizontal spans into disjoint bands. Two well-populated bands
// separated by a clean gutter are treated as columns, ordered left to
// right. Anything more ambiguous (three-way splits, thin bands)
// degrades to a single top-to-bottom flow; a three-band page is flagged
// degraded because interleaving is likely.
func (a *Assembler) splitColumns(fs []model.Fragment) ([][]model.Fragment, bool) {
	type band struct {
		left, right float64
		count       int
	}

	byLeft := make([]model.Fragment, len(fs))
	copy(byLeft, fs)
	sort.Slice(byLeft, func(i, j int) bool { return byLeft[i].Box.Left < byLeft[j].Box.Left })

	var bands []band
	for _, f := range byLeft {
		l, r := f.Box.Left, f.Box.Right()
		if len(bands) > 0 && l <= bands[len(bands)-1].right+a.cfg.ColumnGutterMin {
			last := &bands[len(bands)-1]
			if r > last.right {
				last.right = r
			}
			last.count++
			continue
		}
		bands = append(bands, band{left: l, right: r, count: 1})
	}

	// Ignore sparse bands: stray page furniture (page numbers, stamps)
	// must not trigger column handling.
	populated := bands[:0]
	for _, b := range bands {
		if b.count >= a.cfg.ColumnMinFragments {
			populated = append(populated, b)
		}
	}

	switch {
	case len(populated) < 2:
		return [][]model.Fragment{fs}, false
	case len(populated) > 2:
		return [][]model.Fragment{fs}, true
	}

	left := make([]model.Fragment, 0, len(fs))
	right := make([]model.Fragment, 0, len(fs))
	split := populated[0].right
	for _, f := range fs {
		if f.Box.Left <= split {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}
	return [][]model.Fragment{left, right}, false
}

// groupLines clusters vertically sorted fragments into reading lines:
// a fragment joins the current line when its vertical center is within
// YThreshold of the line's first fragment.
func (a *Assembler) groupLines(fs []model.Fragment) []model.AssembledLine {
	if len(fs) == 0 {
		return nil
	}

	var groups [][]model.Fragment
	current := []model.Fragment{fs[0]}
	for _, f := range fs[1:] {
		if abs(f.Box.VCenter()-current[0].Box.VCenter()) <= a.cfg.YThreshold {
			current = append(current, f)
		} else {
			groups = append(groups, current)
			current = []model.Fragment{f}
		}
	}
	groups = append(groups, current)

	lines := make([]model.AssembledLine, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool {
			if g[i].Box.Left != g[j].Box.Left {
				return g[i].Box.Left < g[j].Box.Left
			}
			return g[i].Text < g[j].Text
		})

		line := model.AssembledLine{
			Fragments: g,
			Top:       g[0].Box.Top,
			Bottom:    g[0].Box.Bottom(),
		}
		for _, f := range g {
			if f.Box.Top < line.Top {
				line.Top = f.Box.Top
			}
			if f.Box.Bottom() > line.Bottom {
				line.Bottom = f.Box.Bottom()
			}
			if f.Confidence < a.cfg.ConfidenceFloor {
				line.LowConfidence = true
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// joinLine concatenates a line's fragments with single spaces, except
// where bounding boxes touch: a touching pair is a hyphenation or a
// split identifier and is joined without a separator.
func (a *Assembler) joinLine(line model.AssembledLine) string {
	var sb strings.Builder
	for i, f := range line.Fragments {
		if i > 0 {
			prev := line.Fragments[i-1]
			if f.Box.Left-prev.Box.Right() > a.cfg.TouchTolerance {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
