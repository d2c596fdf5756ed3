package cmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/codon"
)

// Table is a codon usage table: for every residue (row) it stores a
// probability distribution over the 64 codons (columns). Codons
// translating to a different residue or to stop have zero
// probability. Rows of residues without usage data are all zeros.
//
// Table is not modified after creation and can be shared between
// goroutines.
type Table struct {
	m         *mat.Dense
	encodable [bio.NResidue]bool
}

// NewTable creates a codon usage table from raw codon counts. Stop
// codons are ignored.
func NewTable(u codon.Usage) (*Table, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	t := &Table{m: mat.NewDense(bio.NResidue, bio.NCodon, nil)}

	for codon, count := range u {
		if bio.IsStopCodon(codon) {
			continue
		}
		ci, _ := bio.CodonIndex(codon)
		ri, _ := bio.ResidueIndex(bio.TranslateCodon(codon))
		t.m.Set(ri, ci, t.m.At(ri, ci)+float64(count))
	}

	n := 0
	for ri := 0; ri < bio.NResidue; ri++ {
		row := t.m.RawRowView(ri)
		sum := floats.Sum(row)
		if sum == 0 {
			log.Debugf("No codon usage data for %c", bio.Residues[ri])
			continue
		}
		floats.Scale(1/sum, row)
		t.encodable[ri] = true
		n++
	}
	log.Debugf("Codon table with %d encodable residues", n)

	return t, nil
}

// index returns the row index for the residue at position pos of a
// protein.
func (t *Table) index(aa byte, pos int) (int, error) {
	ri, err := residueIndex(aa, pos)
	if err != nil {
		return 0, err
	}
	if !t.encodable[ri] {
		return 0, fmt.Errorf("%w %c at position %d", ErrUnencodableResidue, aa, pos)
	}
	return ri, nil
}

// Row returns a copy of the codon distribution for a residue.
func (t *Table) Row(aa byte) ([]float64, error) {
	ri, err := t.index(aa, 0)
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, ri, t.m), nil
}

// Weight returns the probability of a codon for a residue. It
// returns zero for unknown residues or codons.
func (t *Table) Weight(aa byte, codon string) float64 {
	ri, ok := bio.ResidueIndex(aa)
	if !ok {
		return 0
	}
	ci, ok := bio.CodonIndex(codon)
	if !ok {
		return 0
	}
	return t.m.At(ri, ci)
}

// Encodable tells if there is codon usage data for a residue.
func (t *Table) Encodable(aa byte) bool {
	ri, ok := bio.ResidueIndex(aa)
	return ok && t.encodable[ri]
}

// Entropy returns Shannon entropy (in nats) of the codon
// distribution of a residue.
func (t *Table) Entropy(aa byte) (float64, error) {
	ri, err := t.index(aa, 0)
	if err != nil {
		return 0, err
	}
	return stat.Entropy(t.m.RawRowView(ri)), nil
}

// MeanEntropy returns the average codon entropy over the encodable
// residues.
func (t *Table) MeanEntropy() float64 {
	var e []float64
	for ri := 0; ri < bio.NResidue; ri++ {
		if t.encodable[ri] {
			e = append(e, stat.Entropy(t.m.RawRowView(ri)))
		}
	}
	if len(e) == 0 {
		return 0
	}
	return stat.Mean(e, nil)
}
