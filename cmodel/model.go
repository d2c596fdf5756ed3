// Package cmodel implements codon models. A codon model generates a
// coding nucleotide sequence for a protein sequence by choosing one
// of the synonymous codons for every residue.
package cmodel

import (
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/bio"
)

var log = logging.MustGetLogger("cmodel")

var (
	// ErrUnknownResidue is returned if a protein sequence contains
	// anything but the 20 canonical amino acids.
	ErrUnknownResidue = errors.New("unknown residue")
	// ErrUnencodableResidue is returned if there is no codon usage
	// data for a residue.
	ErrUnencodableResidue = errors.New("no codon usage data for residue")
	// ErrRoundTrip is returned by the generative model if it could
	// not produce a sequence translating to the input protein.
	ErrRoundTrip = errors.New("generated sequence doesn't translate to the protein")
)

// Model generates coding sequences for protein sequences. The
// returned sequence is exactly three times longer than the protein
// and translates back to it.
type Model interface {
	GenerateSequence(protein string) (string, error)
}

var (
	_ Model = (*Independent)(nil)
	_ Model = (*Top)(nil)
	_ Model = (*Generative)(nil)
)

// residueIndex returns the residue index for the protein character
// at position pos.
func residueIndex(aa byte, pos int) (int, error) {
	ri, ok := bio.ResidueIndex(aa)
	if !ok {
		return 0, fmt.Errorf("%w %q at position %d", ErrUnknownResidue, aa, pos)
	}
	return ri, nil
}
