package bio

const (
	// NCodon is the number of codons including stop codons.
	NCodon = 64
	// NResidue is the number of canonical amino acids.
	NResidue = 20
	// Residues lists the canonical amino acids in the residue index
	// order.
	Residues = "ACDEFGHIKLMNPQRSTVWY"
)

var (
	// alphabet is the nucleotide order used to enumerate codons.
	alphabet = [...]byte{'A', 'T', 'C', 'G'}
	// Codons lists all the codons in the codon index order
	// (AAA, AAT, AAC, AAG, ATA, ...).
	Codons [NCodon]string
	// StopCodons lists the stop codons of the standard code.
	StopCodons []string

	codonNum   = make(map[string]int, NCodon)
	residueNum [256]int8
)

func init() {
	i := 0
	for _, c1 := range alphabet {
		for _, c2 := range alphabet {
			for _, c3 := range alphabet {
				codon := string([]byte{c1, c2, c3})
				Codons[i] = codon
				codonNum[codon] = i
				if IsStopCodon(codon) {
					StopCodons = append(StopCodons, codon)
				}
				i++
			}
		}
	}

	for j := range residueNum {
		residueNum[j] = -1
	}
	for j := 0; j < len(Residues); j++ {
		residueNum[Residues[j]] = int8(j)
	}

	RGeneticCode = make(map[byte][]string, NResidue+1)
	for _, codon := range Codons {
		aa := GeneticCode[codon]
		RGeneticCode[aa] = append(RGeneticCode[aa], codon)
	}
}

// CodonIndex returns the index (0-63) of a codon.
func CodonIndex(codon string) (int, bool) {
	i, ok := codonNum[codon]
	return i, ok
}

// ResidueIndex returns the index (0-19) of a canonical amino acid.
func ResidueIndex(aa byte) (int, bool) {
	i := residueNum[aa]
	return int(i), i >= 0
}
