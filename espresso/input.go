package main

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"bitbucket.org/Davydov/espresso/bio"
)

// readSequences reads FASTA from a file, gzipped if the name ends with
// .gz, or from stdin if the name is empty or "-".
func readSequences(fn string) (bio.Sequences, error) {
	var rd io.Reader = os.Stdin
	if fn != "" && fn != "-" {
		f, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rd = f
		if strings.HasSuffix(fn, ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return nil, err
			}
			defer gz.Close()
			rd = gz
		}
	} else {
		log.Info("Reading sequences from stdin")
	}
	return bio.ParseFasta(rd)
}

// writeSequences writes FASTA to the --out file or stdout.
func writeSequences(seqs bio.Sequences, width int) error {
	var w io.Writer = os.Stdout
	if *outF != "" {
		f, err := os.Create(*outF)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		if _, err := bw.WriteString(s.FASTA(width)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
