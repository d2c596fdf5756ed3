package cmodel

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"bitbucket.org/Davydov/espresso/bio"
)

// Top always chooses the most frequent codon for a residue. If
// several codons are equally frequent, the one with the lowest codon
// index wins. Top is deterministic and safe for concurrent use.
type Top struct {
	table *Table
	best  [bio.NResidue]string
}

// NewTop creates a Top model.
func NewTop(t *Table) *Top {
	m := &Top{table: t}
	for ri := 0; ri < bio.NResidue; ri++ {
		if t.encodable[ri] {
			// MaxIdx returns the first maximum
			m.best[ri] = bio.Codons[floats.MaxIdx(t.m.RawRowView(ri))]
		}
	}
	return m
}

// Table returns the codon usage table.
func (m *Top) Table() *Table {
	return m.table
}

// GenerateSequence returns the sequence of the most frequent codons.
func (m *Top) GenerateSequence(protein string) (string, error) {
	var b strings.Builder
	b.Grow(3 * len(protein))
	for i := 0; i < len(protein); i++ {
		ri, err := m.table.index(protein[i], i)
		if err != nil {
			return "", err
		}
		b.WriteString(m.best[ri])
	}
	return b.String(), nil
}
