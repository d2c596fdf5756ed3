package codon

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/bio"
)

func init() {
	logging.SetLevel(logging.ERROR, "codon")
}

func TestNewRoundTrip(tst *testing.T) {
	for _, s := range []string{"ATG", "ATGATGATG", "AAAAAT", "NNNACG"} {
		cs, err := New(s)
		if err != nil {
			tst.Fatal("Error creating sequence:", err)
		}
		if cs.String() != s {
			tst.Errorf("Joined codons %s differ from %s", cs.String(), s)
		}
		if strings.Join(cs.Codons(), "") != s {
			tst.Error("Codons() doesn't cover the sequence:", cs.Codons())
		}
		if cs.Len() != len(s)/3 {
			tst.Errorf("Expected %d codons, got %d", len(s)/3, cs.Len())
		}
	}
}

func TestNewPartition(tst *testing.T) {
	cs, err := New("AAAAAT")
	if err != nil {
		tst.Fatal(err)
	}
	if cs.Codon(0) != "AAA" || cs.Codon(1) != "AAT" {
		tst.Error("Wrong codons:", cs.Codons())
	}
}

func TestNewInvalidLength(tst *testing.T) {
	for _, s := range []string{"", "A", "AT", "ATGA", "ATGAT"} {
		_, err := New(s)
		if !errors.Is(err, ErrInvalidLength) {
			tst.Errorf("New(%q) returned %v, expected ErrInvalidLength", s, err)
		}
	}
}

func TestCodonsIsACopy(tst *testing.T) {
	cs, _ := New("ATGAAA")
	codons := cs.Codons()
	codons[0] = "TTT"
	if cs.Codon(0) != "ATG" {
		tst.Error("Sequence was modified through Codons()")
	}
}

func TestCount(tst *testing.T) {
	seqs := bio.Sequences{
		{Name: "a", Sequence: "ATGAAAAAGAAA"},
		{Name: "b", Sequence: "ATGNNNAAA"},
	}
	u, pairs, err := Count(seqs)
	if err != nil {
		tst.Fatal(err)
	}
	if u["ATG"] != 2 || u["AAA"] != 3 || u["AAG"] != 1 {
		tst.Error("Wrong counts:", u)
	}
	if _, ok := u["NNN"]; ok {
		tst.Error("Ambiguous codon is counted")
	}
	if u.Total() != 6 {
		tst.Error("Wrong total:", u.Total())
	}
	atg, _ := bio.CodonIndex("ATG")
	aaa, _ := bio.CodonIndex("AAA")
	aag, _ := bio.CodonIndex("AAG")
	if pairs[atg][aaa] != 1 || pairs[aaa][aag] != 1 || pairs[aag][aaa] != 1 {
		tst.Error("Wrong pair counts")
	}

	if _, _, err := Count(bio.Sequences{{Name: "bad", Sequence: "ATGA"}}); !errors.Is(err, ErrInvalidLength) {
		tst.Error("Expected ErrInvalidLength, got", err)
	}
}

func TestUsageJSON(tst *testing.T) {
	u := Usage{"AAA": 10, "AAG": 3, "TAA": 1}
	var b bytes.Buffer
	if err := u.Write(&b); err != nil {
		tst.Fatal(err)
	}
	out := b.String()
	if !(strings.Index(out, "AAA") < strings.Index(out, "AAG") && strings.Index(out, "AAG") < strings.Index(out, "TAA")) {
		tst.Error("Codons are not sorted:", out)
	}
	u2, err := ReadUsage(&b)
	if err != nil {
		tst.Fatal(err)
	}
	if len(u2) != 3 || u2["AAA"] != 10 || u2["AAG"] != 3 || u2["TAA"] != 1 {
		tst.Error("Usage changed after writing and reading:", u2)
	}
}

func TestReadUsageErrors(tst *testing.T) {
	for _, in := range []string{`{"AAX": 1}`, `{"AAA": -1}`, `[1, 2]`, `{`} {
		if _, err := ReadUsage(strings.NewReader(in)); err == nil {
			tst.Errorf("ReadUsage(%s) didn't fail", in)
		}
	}
}
