// Package codon splits nucleotide sequences into codons and counts
// codon usage.
package codon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLength is returned when a nucleotide sequence cannot be
// split into codons.
var ErrInvalidLength = errors.New("sequence length must be a positive multiple of 3")

// Sequence is a nucleotide sequence split into codons. It is not
// modified after creation.
type Sequence struct {
	codons []string
}

// New splits a nucleotide sequence into codons.
func New(seq string) (*Sequence, error) {
	if len(seq) == 0 || len(seq)%3 != 0 {
		return nil, fmt.Errorf("%w, not %d", ErrInvalidLength, len(seq))
	}
	cs := &Sequence{codons: make([]string, 0, len(seq)/3)}
	for i := 0; i < len(seq); i += 3 {
		cs.codons = append(cs.codons, seq[i:i+3])
	}
	return cs, nil
}

// Codons returns the codons in sequence order.
func (cs *Sequence) Codons() []string {
	return append([]string(nil), cs.codons...)
}

// Codon returns codon number i.
func (cs *Sequence) Codon(i int) string {
	return cs.codons[i]
}

// Len returns the number of codons.
func (cs *Sequence) Len() int {
	return len(cs.codons)
}

// String returns the nucleotide sequence.
func (cs *Sequence) String() string {
	return strings.Join(cs.codons, "")
}
