package design

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/bio"
	"bitbucket.org/Davydov/espresso/cmodel"
	"bitbucket.org/Davydov/espresso/codon"
	"bitbucket.org/Davydov/espresso/scrub"
	"bitbucket.org/Davydov/espresso/store"
)

func init() {
	logging.SetLevel(logging.ERROR, "design")
	logging.SetLevel(logging.ERROR, "scrub")
	logging.SetLevel(logging.ERROR, "store")
}

const protein1 = "MSKGEELFTGVVPILVELDGDVNGHKFSVSGEGEGDATYGKLTLKFICTTGKLPVPWPTLVTTLTYGVQCFSRYPDHMKQHDFFKSAMPEGYVQERTIFFKDDGNYKTRAEVKFEGDTLVNRIELKGIDFKEDGNILGHKLEYNYNSHNVYIMADKQKNGIKVNFKIRHNIEDGSVQLADHYQQNTPIGDGPVLLPDNHYLSTQSALSKDPNEKRDHMVLLEFVTAAGITHGMDELYK"

func TestBuiltin(tst *testing.T) {
	if names := BuiltinNames(); !reflect.DeepEqual(names, []string{EC, SC, YL}) {
		tst.Error("Wrong built-in tables:", names)
	}
	keys := Default().Keys()
	exp := []string{"ec", "ec-top", "sc", "sc-top", "yl", "yl-top"}
	if !reflect.DeepEqual(keys, exp) {
		tst.Error("Expected", exp, "got", keys)
	}
	for _, name := range BuiltinNames() {
		t, err := BuiltinTable(name)
		if err != nil {
			tst.Fatal(err)
		}
		for _, aa := range []byte(bio.Residues) {
			if !t.Encodable(aa) {
				tst.Errorf("Residue %c is not encodable with %s", aa, name)
			}
		}
	}
	if _, err := BuiltinTable("hs"); !errors.Is(err, ErrModelNotFound) {
		tst.Error("Expected ErrModelNotFound, got", err)
	}
}

func TestDesignMet(tst *testing.T) {
	for _, key := range Default().Keys() {
		nseq, err := Default().DesignCodingSequence("MMM", key, rand.NewPCG(1, 2))
		if err != nil {
			tst.Fatal(key, err)
		}
		if nseq != "ATGATGATG" {
			tst.Errorf("%s: expected ATGATGATG, got %s", key, nseq)
		}
	}
}

func TestDesignCodingSequence(tst *testing.T) {
	for _, key := range []string{SC, EC, YL, "sc-top"} {
		nseq, err := DesignCodingSequence(protein1, key)
		if err != nil {
			tst.Fatal(key, err)
		}
		if !strings.HasPrefix(nseq, "ATG") || len(nseq) != 3*len(protein1) {
			tst.Error("Wrong sequence:", nseq)
		}
		if p, err := bio.Translate(nseq); err != nil || p != protein1 {
			tst.Error("Wrong translation:", p, err)
		}
	}
	if _, err := DesignCodingSequence("MX", SC); !errors.Is(err, cmodel.ErrUnknownResidue) {
		tst.Error("Expected ErrUnknownResidue, got", err)
	}
}

func TestTopIsDeterministic(tst *testing.T) {
	a, _ := Default().DesignCodingSequence(protein1, "ec-top", rand.NewPCG(1, 1))
	b, _ := Default().DesignCodingSequence(protein1, "ec-top", rand.NewPCG(2, 2))
	if a != b || a == "" {
		tst.Error("Top model depends on the random source")
	}
	// CTG is the most used leucine codon in E. coli
	if a[3*6:3*7] != "CTG" {
		tst.Error("Expected CTG for L, got", a[3*6:3*7])
	}
}

func TestModelNotFound(tst *testing.T) {
	if _, err := DesignCodingSequence("MMM", "foo"); !errors.Is(err, ErrModelNotFound) {
		tst.Error("Expected ErrModelNotFound, got", err)
	}
	if _, err := ScrubSequence("ATG", []string{"A"}, "foo"); !errors.Is(err, ErrModelNotFound) {
		tst.Error("Expected ErrModelNotFound, got", err)
	}
}

func TestScrubSequence(tst *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		nseq, err := Default().ScrubSequence("AAAAAT", []string{"AAAAA", "GAAC"}, SC, rand.NewPCG(seed, 0))
		if err != nil {
			tst.Fatal(err)
		}
		if nseq != "AAGAAT" {
			tst.Error("Expected AAGAAT, got", nseq)
		}
	}
	nseq, err := ScrubSequence("ATGAAAAAATAA", []string{"AAAAA"}, YL)
	if err != nil {
		tst.Fatal(err)
	}
	if strings.Contains(nseq, "AAAAA") || nseq[:3] != "ATG" || nseq[9:] != "TAA" {
		tst.Error("Wrong scrubbed sequence:", nseq)
	}
	if _, err := ScrubSequence("ATGA", []string{"A"}, SC); !errors.Is(err, codon.ErrInvalidLength) {
		tst.Error("Expected ErrInvalidLength, got", err)
	}
	if _, err := ScrubSequence("ATGATG", []string{"ATG"}, SC); !errors.Is(err, scrub.ErrIterationLimit) {
		tst.Error("Expected ErrIterationLimit, got", err)
	}
}

func TestLoadStore(tst *testing.T) {
	s, err := store.Open(filepath.Join(tst.TempDir(), "models.db"))
	if err != nil {
		tst.Fatal(err)
	}
	defer s.Close()

	seqs := bio.Sequences{
		{Name: "a", Sequence: "ATGAAAGCTTTAGGT"},
		{Name: "b", Sequence: "ATGAAGGCATAA"},
	}
	u, pu, err := codon.Count(seqs)
	if err != nil {
		tst.Fatal(err)
	}
	if err := s.SaveUsage("mine", u); err != nil {
		tst.Fatal(err)
	}
	if err := s.SavePairs("mine", pu); err != nil {
		tst.Fatal(err)
	}
	if err := s.SaveUsage("nopairs", u); err != nil {
		tst.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadStore(s); err != nil {
		tst.Fatal(err)
	}
	exp := []string{"mine", "mine-ctx", "mine-top", "nopairs", "nopairs-top"}
	if keys := r.Keys(); !reflect.DeepEqual(keys, exp) {
		tst.Error("Expected", exp, "got", keys)
	}
	for _, key := range exp {
		nseq, err := r.DesignCodingSequence("MKA", key, rand.NewPCG(3, 4))
		if err != nil {
			tst.Fatal(key, err)
		}
		if p, _ := bio.Translate(nseq); p != "MKA" {
			tst.Error(key, "wrong translation:", p)
		}
	}
	// no tryptophan codons in the training set
	if _, err := r.DesignCodingSequence("MW", "mine", rand.NewPCG(3, 4)); !errors.Is(err, cmodel.ErrUnencodableResidue) {
		tst.Error("Expected ErrUnencodableResidue, got", err)
	}
}

func TestNewBuiltinRegistry(tst *testing.T) {
	r1, err := NewBuiltinRegistry()
	if err != nil {
		tst.Fatal(err)
	}
	r2, _ := NewBuiltinRegistry()
	if r1 == r2 || r1 == Default() {
		tst.Fatal("Registry is shared")
	}
	t, _ := BuiltinTable(SC)
	r1.RegisterTable("extra", t)
	for _, r := range []*Registry{r2, Default()} {
		if _, err := r.Model("extra", rand.NewPCG(1, 1)); !errors.Is(err, ErrModelNotFound) {
			tst.Error("Model registered in another registry:", err)
		}
	}
	if !reflect.DeepEqual(r2.Keys(), Default().Keys()) {
		tst.Error("Built-in registries differ:", r2.Keys(), Default().Keys())
	}
}
