package cmodel

import (
	"errors"
	"fmt"

	"bitbucket.org/Davydov/espresso/bio"
)

// DefaultMaxAttempts is the default number of decoding attempts of
// a generative model.
const DefaultMaxAttempts = 10

// Decoder produces a candidate coding sequence for a protein. The
// output is not required to be correct; Generative checks it.
type Decoder interface {
	Decode(protein string) (string, error)
}

// Generative is a model built on top of a decoder, e.g. a trained
// sequence model. Every candidate is translated back and compared to
// the protein; the decoder is called again if they differ.
type Generative struct {
	decoder     Decoder
	maxAttempts int
}

// NewGenerative creates a generative model. If maxAttempts is not
// positive, DefaultMaxAttempts is used.
func NewGenerative(d Decoder, maxAttempts int) *Generative {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generative{decoder: d, maxAttempts: maxAttempts}
}

// GenerateSequence decodes the protein until the result translates
// back to the protein or the number of attempts is exhausted.
func (g *Generative) GenerateSequence(protein string) (string, error) {
	for i := 0; i < len(protein); i++ {
		if _, err := residueIndex(protein[i], i); err != nil {
			return "", err
		}
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		nseq, err := g.decoder.Decode(protein)
		if err != nil {
			if errors.Is(err, ErrUnknownResidue) || errors.Is(err, ErrUnencodableResidue) {
				return "", err
			}
			log.Debugf("Decoding attempt %d failed: %v", attempt, err)
			continue
		}
		if translatesTo(nseq, protein) {
			return nseq, nil
		}
		log.Debugf("Decoding attempt %d doesn't translate to the protein", attempt)
	}
	return "", fmt.Errorf("%w (%d attempts, protein length %d)", ErrRoundTrip, g.maxAttempts, len(protein))
}

// translatesTo checks that a nucleotide sequence encodes exactly the
// protein, without stop codons.
func translatesTo(nseq, protein string) bool {
	if len(nseq) != 3*len(protein) {
		return false
	}
	for i := 0; i < len(protein); i++ {
		if bio.TranslateCodon(nseq[3*i:3*i+3]) != protein[i] {
			return false
		}
	}
	return true
}
