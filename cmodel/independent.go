package cmodel

import (
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"bitbucket.org/Davydov/espresso/bio"
)

// residueSampler draws codon indices for one residue.
type residueSampler struct {
	codons []int
	cat    distuv.Categorical
}

// Independent chooses every codon independently according to the
// codon usage table, so the generated sequences have the same codon
// frequencies as the usage data.
//
// Independent is not safe for concurrent use since random sources
// are not; use WithSource to get a copy for every goroutine.
type Independent struct {
	table    *Table
	samplers [bio.NResidue]*residueSampler
}

// NewIndependent creates an Independent model. Random numbers are
// drawn from src.
func NewIndependent(t *Table, src rand.Source) *Independent {
	m := &Independent{table: t}
	for ri := 0; ri < bio.NResidue; ri++ {
		if !t.encodable[ri] {
			continue
		}
		s := &residueSampler{}
		var w []float64
		// synonymous codons without usage are never drawn
		for _, syn := range bio.RGeneticCode[bio.Residues[ri]] {
			ci, _ := bio.CodonIndex(syn)
			if p := t.m.At(ri, ci); p > 0 {
				s.codons = append(s.codons, ci)
				w = append(w, p)
			}
		}
		s.cat = distuv.NewCategorical(w, src)
		m.samplers[ri] = s
	}
	return m
}

// WithSource returns a copy of the model sharing the codon table
// and using a different random source.
func (m *Independent) WithSource(src rand.Source) *Independent {
	return NewIndependent(m.table, src)
}

// Table returns the codon usage table.
func (m *Independent) Table() *Table {
	return m.table
}

// GenerateSequence draws a codon for every residue of the protein.
func (m *Independent) GenerateSequence(protein string) (string, error) {
	var b strings.Builder
	b.Grow(3 * len(protein))
	for i := 0; i < len(protein); i++ {
		ri, err := m.table.index(protein[i], i)
		if err != nil {
			return "", err
		}
		s := m.samplers[ri]
		b.WriteString(bio.Codons[s.codons[int(s.cat.Rand())]])
	}
	return b.String(), nil
}
