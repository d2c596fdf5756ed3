// Package motif finds nucleotide positions involved in unwanted
// sequence features, such as forbidden motifs or restriction sites.
package motif

import (
	"regexp"
	"sort"
	"strings"
)

// PositionSet is a sorted set of nucleotide offsets (0-based).
type PositionSet []int

// Detector reports the nucleotide positions of a sequence involved in
// an unwanted feature. An empty set means the sequence is clean.
type Detector interface {
	Detect(seq string) PositionSet
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(seq string) PositionSet

// Detect calls f(seq).
func (f DetectorFunc) Detect(seq string) PositionSet {
	return f(seq)
}

// positions accumulates matched ranges.
type positions map[int]struct{}

func (p positions) add(start, length int) {
	for i := start; i < start+length; i++ {
		p[i] = struct{}{}
	}
}

func (p positions) set() PositionSet {
	ps := make(PositionSet, 0, len(p))
	for i := range p {
		ps = append(ps, i)
	}
	sort.Ints(ps)
	return ps
}

// Union runs all the detectors and returns the union of the
// positions.
func Union(seq string, detectors ...Detector) PositionSet {
	p := make(positions)
	for _, d := range detectors {
		for _, i := range d.Detect(seq) {
			p[i] = struct{}{}
		}
	}
	return p.set()
}

// AvoidMotif detects every occurrence of a literal substring,
// including overlapping ones.
type AvoidMotif string

// Detect returns positions covered by the motif occurrences.
func (m AvoidMotif) Detect(seq string) PositionSet {
	motif := string(m)
	p := make(positions)
	if len(motif) == 0 {
		return p.set()
	}
	for start := 0; start+len(motif) <= len(seq); {
		i := strings.Index(seq[start:], motif)
		if i < 0 {
			break
		}
		p.add(start+i, len(motif))
		// the next occurrence can start inside this one
		start += i + 1
	}
	return p.set()
}

// String returns the motif.
func (m AvoidMotif) String() string {
	return string(m)
}

// AvoidPattern detects matches of a regular expression. Matches do
// not overlap.
type AvoidPattern struct {
	re *regexp.Regexp
}

// NewAvoidPattern compiles a regular expression detector.
func NewAvoidPattern(expr string) (*AvoidPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &AvoidPattern{re: re}, nil
}

// Detect returns positions covered by the pattern matches. Empty
// matches cover nothing.
func (a *AvoidPattern) Detect(seq string) PositionSet {
	p := make(positions)
	for _, loc := range a.re.FindAllStringIndex(seq, -1) {
		p.add(loc[0], loc[1]-loc[0])
	}
	return p.set()
}

// String returns the regular expression.
func (a *AvoidPattern) String() string {
	return a.re.String()
}
