package motif

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bebop/poly/transform"
)

// iupac maps IUPAC nucleotide codes to 4-bit masks (A, C, G, T).
var iupac = [256]uint8{
	'A': 1, 'C': 2, 'G': 4, 'T': 8,
	'R': 1 | 4, 'Y': 2 | 8, 'S': 2 | 4, 'W': 1 | 8,
	'K': 4 | 8, 'M': 1 | 2,
	'B': 2 | 4 | 8, 'D': 1 | 4 | 8, 'H': 1 | 2 | 8, 'V': 1 | 2 | 4,
	'N': 1 | 2 | 4 | 8,
}

// compileSite converts a recognition site to masks.
func compileSite(site string) ([]uint8, error) {
	site = strings.ToUpper(site)
	mask := make([]uint8, len(site))
	for i := 0; i < len(site); i++ {
		m := iupac[site[i]]
		if m == 0 {
			return nil, fmt.Errorf("invalid IUPAC base %q in site %s", site[i], site)
		}
		mask[i] = m
	}
	return mask, nil
}

// matchAt tests if the mask matches the sequence at position i. Only
// A, C, G and T in the sequence can match.
func matchAt(mask []uint8, seq string, i int) bool {
	for j, m := range mask {
		b := seq[i+j]
		if b != 'A' && b != 'C' && b != 'G' && b != 'T' {
			return false
		}
		if iupac[b]&m == 0 {
			return false
		}
	}
	return true
}

// AvoidSite detects a recognition site, possibly containing IUPAC
// ambiguity codes, on both strands.
type AvoidSite struct {
	site    string
	forward []uint8
	reverse []uint8
}

// NewAvoidSite creates a detector for a recognition site.
func NewAvoidSite(site string) (*AvoidSite, error) {
	if site == "" {
		return nil, fmt.Errorf("empty recognition site")
	}
	site = strings.ToUpper(site)
	fwd, err := compileSite(site)
	if err != nil {
		return nil, err
	}
	s := &AvoidSite{site: site, forward: fwd}
	if rc := transform.ReverseComplement(site); rc != site {
		// palindromic sites are scanned once
		s.reverse, _ = compileSite(rc)
	}
	return s, nil
}

// Detect returns positions covered by the site on either strand.
func (s *AvoidSite) Detect(seq string) PositionSet {
	p := make(positions)
	n := len(s.forward)
	for i := 0; i+n <= len(seq); i++ {
		if matchAt(s.forward, seq, i) || (s.reverse != nil && matchAt(s.reverse, seq, i)) {
			p.add(i, n)
		}
	}
	return p.set()
}

// String returns the recognition site.
func (s *AvoidSite) String() string {
	return s.site
}

// Enzymes maps restriction enzyme names to their recognition sites.
var Enzymes = map[string]string{
	"BsaI":    "GGTCTC",
	"BbsI":    "GAAGAC",
	"BsmBI":   "CGTCTC",
	"BtgZI":   "GCGATG",
	"SapI":    "GCTCTTC",
	"PaqCI":   "CACCTGC",
	"EcoRI":   "GAATTC",
	"BamHI":   "GGATCC",
	"HindIII": "AAGCTT",
	"NotI":    "GCGGCCGC",
	"XhoI":    "CTCGAG",
	"NdeI":    "CATATG",
	"SfiI":    "GGCCNNNNNGGCC",
}

// Enzyme returns a site detector for a restriction enzyme. The name
// is case insensitive.
func Enzyme(name string) (*AvoidSite, error) {
	for n, site := range Enzymes {
		if strings.EqualFold(n, name) {
			return NewAvoidSite(site)
		}
	}
	return nil, fmt.Errorf("unknown enzyme %q", name)
}

// EnzymeNames returns the known enzyme names sorted alphabetically.
func EnzymeNames() []string {
	names := make([]string, 0, len(Enzymes))
	for n := range Enzymes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
