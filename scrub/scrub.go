// Package scrub removes unwanted features from coding sequences by
// resampling the codons they overlap.
package scrub

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/cmodel"
	"bitbucket.org/Davydov/espresso/codon"
	"bitbucket.org/Davydov/espresso/motif"
)

var log = logging.MustGetLogger("scrub")

// DefaultMaxIterations is the number of resampling passes used when
// Scrubber.MaxIterations is not set.
const DefaultMaxIterations = 50

// prefixLength is the length of the sequence prefix reported in
// IterationLimitError.
const prefixLength = 24

// ErrIterationLimit is matched by IterationLimitError.
var ErrIterationLimit = errors.New("maximum number of iterations reached")

// IterationLimitError is returned if the sequence still has unwanted
// features after the last allowed resampling pass.
type IterationLimitError struct {
	// MaxIterations is the number of passes performed.
	MaxIterations int
	// Prefix is the beginning of the last candidate sequence.
	Prefix string
	// Constraints is the number of detectors.
	Constraints int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("reached maximum allowed iterations %d when encoding a sequence starting with %s with %d constraints",
		e.MaxIterations, e.Prefix, e.Constraints)
}

// Is makes errors.Is(err, ErrIterationLimit) work.
func (e *IterationLimitError) Is(target error) bool {
	return target == ErrIterationLimit
}

// Scrubber resamples the codons overlapping positions reported by
// the detectors until none of them reports anything. Only flagged
// codons are changed; there is no backtracking.
type Scrubber struct {
	// Avoid is the list of unwanted features.
	Avoid []motif.Detector
	// Model generates replacement codons.
	Model cmodel.Model
	// MaxIterations is the maximum number of resampling passes,
	// DefaultMaxIterations if not positive.
	MaxIterations int
}

// New creates a new Scrubber with the default number of iterations.
func New(model cmodel.Model, avoid ...motif.Detector) *Scrubber {
	return &Scrubber{Avoid: avoid, Model: model, MaxIterations: DefaultMaxIterations}
}

func (s *Scrubber) maxIterations() int {
	if s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

// IdentifyCodonsToResample returns sorted indices of the codons
// overlapping any detected position. Positions outside of the
// sequence are ignored.
func (s *Scrubber) IdentifyCodonsToResample(seq string) []int {
	positions := motif.Union(seq, s.Avoid...)
	seen := make(map[int]bool, len(positions))
	codons := make([]int, 0, len(positions))
	ncodons := len(seq) / 3
	for _, pos := range positions {
		ci := pos / 3
		if pos < 0 || ci >= ncodons {
			log.Warningf("Position %d is outside of the sequence", pos)
			continue
		}
		if !seen[ci] {
			seen[ci] = true
			codons = append(codons, ci)
		}
	}
	sort.Ints(codons)
	return codons
}

// ResampleSequence replaces every codon flagged by
// IdentifyCodonsToResample with a codon generated by the model for
// the same residue. Other codons are kept.
func (s *Scrubber) ResampleSequence(seq string) (string, error) {
	cs, err := codon.New(seq)
	if err != nil {
		return "", err
	}

	resample := s.IdentifyCodonsToResample(seq)
	var b strings.Builder
	b.Grow(len(seq))
	next := 0
	for i := 0; i < cs.Len(); i++ {
		c := cs.Codon(i)
		if next < len(resample) && resample[next] == i {
			next++
			aa := bio.TranslateCodon(c)
			nc, err := s.Model.GenerateSequence(string(aa))
			if err != nil {
				return "", fmt.Errorf("codon %d (%s): %w", i, c, err)
			}
			if len(nc) != 3 {
				return "", fmt.Errorf("codon %d (%s): model returned %q instead of a codon", i, c, nc)
			}
			c = nc
		}
		b.WriteString(c)
	}
	return b.String(), nil
}

// Scrub performs up to MaxIterations resampling passes and returns
// the sequence after the first pass which leaves no unwanted
// features. If all passes fail, *IterationLimitError is returned.
func (s *Scrubber) Scrub(seq string) (string, error) {
	maxIter := s.maxIterations()
	for iter := 1; iter <= maxIter; iter++ {
		var err error
		seq, err = s.ResampleSequence(seq)
		if err != nil {
			return "", err
		}
		left := s.IdentifyCodonsToResample(seq)
		if len(left) == 0 {
			log.Debugf("Sequence is clean after %d iteration(s)", iter)
			return seq, nil
		}
		log.Debugf("Iteration %d: %d codon(s) to resample", iter, len(left))
	}

	prefix := seq
	if len(prefix) > prefixLength {
		prefix = prefix[:prefixLength]
	}
	return "", &IterationLimitError{
		MaxIterations: maxIter,
		Prefix:        prefix,
		Constraints:   len(s.Avoid),
	}
}
