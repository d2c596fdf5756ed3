/*
Espresso designs coding sequences for proteins using codon usage
models, and scrubs coding sequences from unwanted motifs.

Encoding a protein with the yeast codon usage:

	espresso design --model sc --protein MSKGEELFTG

Encoding all proteins of a FASTA file with the most frequent codons:

	espresso design --model ec-top proteins.fst

Removing BsaI sites and a poly-A stretch:

	espresso scrub --enzyme BsaI --avoid AAAAA genes.fst

New codon usage tables are learned from coding sequences and kept in a
database:

	espresso --db models.db learn --name mine genes.fst
	espresso --db models.db design --model mine-ctx proteins.fst

To see all the options run:

	espresso --help
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/design"
	"bitbucket.org/Davydov/espresso/motif"
	"bitbucket.org/Davydov/espresso/scrub"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("espresso")
var formatter = logging.MustStringFormatter(`%{message}`)

// loggers are all the package loggers controlled by --loglevel.
var loggers = []string{"espresso", "design", "scrub", "cmodel", "codon", "store"}

// command-line options
var (
	// application
	app = kingpin.New("espresso", "coding sequence designer").Version(version)

	// technical
	dbFileName = app.Flag("db", "database with learned codon usage tables").String()
	nThreads   = app.Flag("nt", "number of threads to use").Int()
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()

	// input/output
	outF     = app.Flag("out", "write sequences to a file instead of stdout").Short('o').String()
	width    = app.Flag("width", "FASTA line width").Default("60").Int()
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json run summary to a file").String()

	// design
	designCmd      = app.Command("design", "encode proteins")
	designModel    = designCmd.Flag("model", "codon model").Default(design.SC).String()
	designProtein  = designCmd.Flag("protein", "protein sequence (instead of FASTA)").String()
	designFileName = designCmd.Arg("fasta", "protein sequences (.gz is supported)").String()

	// scrub
	scrubCmd      = app.Command("scrub", "remove motifs from coding sequences")
	scrubModel    = scrubCmd.Flag("model", "codon model used for resampling").Default(design.SC).String()
	avoid         = scrubCmd.Flag("avoid", "motif to avoid (repeatable)").Strings()
	avoidPattern  = scrubCmd.Flag("pattern", "regular expression to avoid (repeatable)").Strings()
	enzymes       = scrubCmd.Flag("enzyme", enzymeHelp()).Strings()
	iterations    = scrubCmd.Flag("iter", "maximum number of resampling iterations").Default(fmt.Sprint(scrub.DefaultMaxIterations)).Int()
	scrubSequence = scrubCmd.Flag("nucleotide", "coding sequence (instead of FASTA)").String()
	scrubFileName = scrubCmd.Arg("fasta", "coding sequences (.gz is supported)").String()

	// learn
	learnCmd      = app.Command("learn", "count codons in coding sequences")
	learnName     = learnCmd.Flag("name", "table name in the database").String()
	learnFileName = learnCmd.Arg("fasta", "coding sequences (.gz is supported)").Required().String()

	// models
	modelsCmd = app.Command("models", "list available models")

	// plot
	plotCmd   = app.Command("plot", "plot codon usage of a model")
	plotModel = plotCmd.Flag("model", "codon model").Default(design.SC).String()
	plotTitle = plotCmd.Flag("title", "plot title, model name by default").String()
	plotOut   = plotCmd.Flag("image", "image file (png, svg, pdf, ...)").Default("usage.png").String()
)

// enzymeHelp lists the known enzymes in the --enzyme help.
func enzymeHelp() string {
	return "restriction enzyme site to avoid on both strands (repeatable): " +
		strings.Join(motif.EnzymeNames(), ", ")
}

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	startTime := time.Now()

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range loggers {
		logging.SetLevel(level, l)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)

	runtime.GOMAXPROCS(*nThreads)
	effectiveNThreads := runtime.GOMAXPROCS(0)
	log.Infof("Using threads: %d.", effectiveNThreads)

	summary := &Summary{
		CallSummary: CallSummary{
			Version:     version,
			CommandLine: os.Args,
			Seed:        *seed,
			NThreads:    effectiveNThreads,
			Command:     cmd,
		},
	}

	switch cmd {
	case designCmd.FullCommand():
		err = runDesign(summary)
	case scrubCmd.FullCommand():
		err = runScrub(summary)
	case learnCmd.FullCommand():
		err = runLearn(summary)
	case modelsCmd.FullCommand():
		err = runModels()
	case plotCmd.FullCommand():
		err = runPlot()
	}

	deltaT := time.Since(startTime)
	log.Infof("Running time: %v", deltaT)
	summary.TotalTime = deltaT.Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			if err := os.WriteFile(*jsonF, j, 0666); err != nil {
				log.Error("Error creating json output file:", err)
			}
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
