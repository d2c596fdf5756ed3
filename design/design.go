package design

import (
	"math/rand/v2"
	"time"

	"bitbucket.org/Davydov/espresso/motif"
	"bitbucket.org/Davydov/espresso/scrub"
)

// DesignCodingSequence encodes the protein with the model.
func (r *Registry) DesignCodingSequence(protein string, key ModelKey, src rand.Source) (string, error) {
	m, err := r.Model(key, src)
	if err != nil {
		return "", err
	}
	return m.GenerateSequence(protein)
}

// ScrubSequence resamples codons of nseq with the model until none of
// the avoid motifs occur.
func (r *Registry) ScrubSequence(nseq string, avoid []string, key ModelKey, src rand.Source) (string, error) {
	m, err := r.Model(key, src)
	if err != nil {
		return "", err
	}
	detectors := make([]motif.Detector, len(avoid))
	for i, a := range avoid {
		detectors[i] = motif.AvoidMotif(a)
	}
	return scrub.New(m, detectors...).Scrub(nseq)
}

func timeSource() rand.Source {
	return rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
}

// DesignCodingSequence encodes the protein with a built-in model.
func DesignCodingSequence(protein string, key ModelKey) (string, error) {
	return Default().DesignCodingSequence(protein, key, timeSource())
}

// ScrubSequence removes the avoid motifs from nseq using a built-in
// model.
func ScrubSequence(nseq string, avoid []string, key ModelKey) (string, error) {
	return Default().ScrubSequence(nseq, avoid, key, timeSource())
}
