package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/cmodel"
	"bitbucket.org/Davydov/espresso/codon"
	"bitbucket.org/Davydov/espresso/design"
	"bitbucket.org/Davydov/espresso/store"
	"bitbucket.org/Davydov/espresso/usageplot"
)

// inputSequences returns a single sequence from the command line or
// reads FASTA.
func inputSequences(seq, fn string) (bio.Sequences, error) {
	if seq != "" {
		return bio.Sequences{{Name: "sequence", Sequence: strings.ToUpper(seq)}}, nil
	}
	return readSequences(fn)
}

// failed returns an error if some of the records failed.
func failed(summary *Summary) error {
	if summary.Failed > 0 {
		return fmt.Errorf("%d out of %d record(s) failed", summary.Failed, len(summary.Records))
	}
	return nil
}

// checkModel fails early for unknown model keys.
func checkModel(r *design.Registry, key string) error {
	_, err := r.Model(key, rand.NewPCG(0, 0))
	if errors.Is(err, design.ErrModelNotFound) {
		log.Noticef("Available models: %s", strings.Join(r.Keys(), ", "))
	}
	return err
}

func runDesign(summary *Summary) error {
	ms := newModelSettings(*designModel)
	r, err := ms.registry()
	if err != nil {
		return err
	}
	if err := checkModel(r, ms.key); err != nil {
		return err
	}
	summary.Model = ms.key
	log.Infof("Using model %s", ms.key)

	seqs, err := inputSequences(*designProtein, *designFileName)
	if err != nil {
		return err
	}
	log.Infof("Read %d protein(s)", len(seqs))

	results, errs := process(seqs, *seed, func(seq bio.Sequence, src rand.Source) (string, error) {
		m, err := r.Model(ms.key, src)
		if err != nil {
			return "", err
		}
		// a terminal stop is not a residue
		return m.GenerateSequence(strings.TrimSuffix(seq.Sequence, string(bio.Stop)))
	})
	if err := writeSequences(collect(seqs, results, errs, summary), *width); err != nil {
		return err
	}
	return failed(summary)
}

func runScrub(summary *Summary) error {
	ms := newModelSettings(*scrubModel)
	r, err := ms.registry()
	if err != nil {
		return err
	}
	if err := checkModel(r, ms.key); err != nil {
		return err
	}
	summary.Model = ms.key

	proto, err := newScrubSettings().scrubber()
	if err != nil {
		return err
	}
	summary.Constraints = len(proto.Avoid)

	seqs, err := inputSequences(*scrubSequence, *scrubFileName)
	if err != nil {
		return err
	}
	log.Infof("Read %d coding sequence(s)", len(seqs))

	results, errs := process(seqs, *seed, func(seq bio.Sequence, src rand.Source) (string, error) {
		m, err := r.Model(ms.key, src)
		if err != nil {
			return "", err
		}
		s := *proto
		s.Model = m
		return s.Scrub(seq.Sequence)
	})
	if err := writeSequences(collect(seqs, results, errs, summary), *width); err != nil {
		return err
	}
	return failed(summary)
}

func runLearn(summary *Summary) error {
	if *dbFileName != "" && *learnName == "" {
		return errors.New("--name is required to save a table to the database")
	}
	seqs, err := readSequences(*learnFileName)
	if err != nil {
		return err
	}
	u, pu, err := codon.Count(seqs)
	if err != nil {
		return err
	}
	log.Infof("Counted %d codons in %d sequence(s)", u.Total(), len(seqs))
	for _, seq := range seqs {
		summary.Records = append(summary.Records, RecordSummary{Name: seq.Name, Length: len(seq.Sequence)})
	}

	w := os.Stdout
	if *outF != "" {
		w, err = os.Create(*outF)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	if err := u.Write(w); err != nil {
		return err
	}

	if *dbFileName == "" {
		return nil
	}
	if _, err := cmodel.NewTable(u); err != nil {
		return err
	}
	s, err := store.Open(*dbFileName)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.SaveUsage(*learnName, u); err != nil {
		return err
	}
	if err := s.SavePairs(*learnName, pu); err != nil {
		return err
	}
	summary.Model = *learnName
	log.Noticef("Saved %s to %s", *learnName, *dbFileName)
	return nil
}

// tabler is implemented by the models backed by a usage table.
type tabler interface {
	Table() *cmodel.Table
}

func runModels() error {
	r, err := newModelSettings("").registry()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "model\ttype\tmean entropy")
	for _, key := range r.Keys() {
		m, err := r.Model(key, rand.NewPCG(0, 0))
		if err != nil {
			return err
		}
		entropy := "-"
		if t, ok := m.(tabler); ok {
			entropy = fmt.Sprintf("%.3f", t.Table().MeanEntropy())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, modelType(m), entropy)
	}
	return tw.Flush()
}

// modelType returns a short model description.
func modelType(m cmodel.Model) string {
	switch m.(type) {
	case *cmodel.Independent:
		return "independent"
	case *cmodel.Top:
		return "top"
	case *cmodel.Generative:
		return "generative"
	}
	return fmt.Sprintf("%T", m)
}

func runPlot() error {
	r, err := newModelSettings(*plotModel).registry()
	if err != nil {
		return err
	}
	m, err := r.Model(*plotModel, rand.NewPCG(0, 0))
	if err != nil {
		return err
	}
	t, ok := m.(tabler)
	if !ok {
		return fmt.Errorf("model %s has no codon usage table", *plotModel)
	}
	title := *plotTitle
	if title == "" {
		title = *plotModel
	}
	p, err := usageplot.Plot(t.Table(), title)
	if err != nil {
		return err
	}
	if err := usageplot.Save(p, *plotOut); err != nil {
		return err
	}
	log.Noticef("Saved plot to %s", *plotOut)
	return nil
}
