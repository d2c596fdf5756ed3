package cmodel

import (
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/codon"
)

// DefaultSmoothing is the default weight of the codon usage table in
// the Context decoder.
const DefaultSmoothing = 0.1

// Context is a first order codon context decoder. A codon is chosen
// among the synonymous codons given the preceding codon using codon
// pair frequencies, mixed with the codon usage table:
//
//	P(c|prev, aa) = (1-s) * Ppair(c|prev, aa) + s * Pusage(c|aa)
//
// The first codon, and codons following a context without pair data,
// are drawn from the usage table only.
type Context struct {
	table     *Table
	pairs     *mat.Dense
	smoothing float64
	src       rand.Source
}

// NewContext creates a Context decoder from a codon usage table and
// codon pair counts. Smoothing outside [0, 1] is replaced by
// DefaultSmoothing.
func NewContext(t *Table, pu *codon.PairUsage, smoothing float64, src rand.Source) *Context {
	if smoothing < 0 || smoothing > 1 {
		smoothing = DefaultSmoothing
	}
	pairs := mat.NewDense(bio.NCodon, bio.NCodon, nil)
	for i := 0; i < bio.NCodon; i++ {
		row := pairs.RawRowView(i)
		for j := 0; j < bio.NCodon; j++ {
			row[j] = float64(pu[i][j])
		}
		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(1/sum, row)
		}
	}
	return &Context{table: t, pairs: pairs, smoothing: smoothing, src: src}
}

// Decode generates a coding sequence for the protein.
func (c *Context) Decode(protein string) (string, error) {
	var b strings.Builder
	b.Grow(3 * len(protein))

	codons := make([]int, 0, 6)
	w := make([]float64, 0, 6)
	prev := -1
	for i := 0; i < len(protein); i++ {
		ri, err := c.table.index(protein[i], i)
		if err != nil {
			return "", err
		}
		codons = codons[:0]
		w = w[:0]
		for _, syn := range bio.RGeneticCode[protein[i]] {
			ci, _ := bio.CodonIndex(syn)
			if p := c.table.m.At(ri, ci); p > 0 {
				codons = append(codons, ci)
				w = append(w, p)
			}
		}

		if prev >= 0 {
			ctx := c.pairs.RawRowView(prev)
			sum := 0.0
			for _, ci := range codons {
				sum += ctx[ci]
			}
			if sum > 0 {
				for k, ci := range codons {
					w[k] = (1-c.smoothing)*ctx[ci]/sum + c.smoothing*w[k]
				}
			}
		}

		k := int(distuv.NewCategorical(w, c.src).Rand())
		prev = codons[k]
		b.WriteString(bio.Codons[prev])
	}
	return b.String(), nil
}
