package main

import (
	"math/rand/v2"
	"runtime"
	"sync"

	"bitbucket.org/Davydov/espresso/bio"
)

// task transforms one input sequence.
type task func(seq bio.Sequence, src rand.Source) (string, error)

// process runs the task for every sequence using GOMAXPROCS workers.
// Every record gets its own random source derived from the seed and
// the record number, so the output does not depend on the number of
// workers. Results keep the input order.
func process(seqs bio.Sequences, seed int64, f task) ([]string, []error) {
	results := make([]string, len(seqs))
	errs := make([]error, len(seqs))
	tasks := make(chan int, len(seqs))
	var wg sync.WaitGroup

	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)
		go func() {
			for i := range tasks {
				src := rand.NewPCG(uint64(seed), uint64(i))
				results[i], errs[i] = f(seqs[i], src)
			}
			wg.Done()
		}()
	}

	for i := range seqs {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
	return results, errs
}

// collect fills the summary and returns the successful records.
func collect(seqs bio.Sequences, results []string, errs []error, summary *Summary) bio.Sequences {
	out := make(bio.Sequences, 0, len(seqs))
	for i, seq := range seqs {
		rs := RecordSummary{Name: seq.Name}
		if errs[i] != nil {
			log.Errorf("%s: %v", seq.Name, errs[i])
			rs.Error = errs[i].Error()
			summary.Failed++
		} else {
			rs.Length = len(results[i])
			out = append(out, bio.Sequence{Name: seq.Name, Sequence: results[i]})
		}
		summary.Records = append(summary.Records, rs)
	}
	return out
}
