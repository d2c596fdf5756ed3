package codon

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/bio"
)

var log = logging.MustGetLogger("codon")

// Usage stores raw codon counts, codon string is the key.
type Usage map[string]int

// PairUsage stores counts of adjacent codon pairs, the first index
// is the preceding codon index, the second is the following one.
type PairUsage [bio.NCodon][bio.NCodon]int

// Total returns the sum of all the counts.
func (u Usage) Total() (n int) {
	for _, c := range u {
		n += c
	}
	return
}

// Validate checks that all the keys are codons and all the counts
// are non-negative.
func (u Usage) Validate() error {
	for codon, c := range u {
		if _, ok := bio.CodonIndex(codon); !ok {
			return fmt.Errorf("unknown codon %q in codon usage", codon)
		}
		if c < 0 {
			return fmt.Errorf("negative count %d for codon %s", c, codon)
		}
	}
	return nil
}

// ReadUsage reads codon usage in JSON format, i.e. {"AAA": 123, ...}.
func ReadUsage(rd io.Reader) (Usage, error) {
	var u Usage
	if err := json.NewDecoder(rd).Decode(&u); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Write writes codon usage in JSON format with codons sorted
// alphabetically.
func (u Usage) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(u)
}

// Count computes codon usage and codon pair usage of coding
// sequences. Codons containing anything but A, T, C or G are
// skipped, they also break the pair chain.
func Count(seqs bio.Sequences) (Usage, *PairUsage, error) {
	u := make(Usage, bio.NCodon)
	pairs := &PairUsage{}
	skipped := 0

	for _, seq := range seqs {
		cs, err := New(seq.Sequence)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", seq.Name, err)
		}
		prev := -1
		for _, codon := range cs.codons {
			ci, ok := bio.CodonIndex(codon)
			if !ok {
				skipped++
				prev = -1
				continue
			}
			u[codon]++
			if prev >= 0 {
				pairs[prev][ci]++
			}
			prev = ci
		}
	}
	if skipped > 0 {
		log.Warningf("Skipped %d ambiguous codons", skipped)
	}
	log.Debugf("Counted %d codons in %d sequences", u.Total(), len(seqs))
	return u, pairs, nil
}
