package main

import (
	"fmt"
	"strings"

	"bitbucket.org/Davydov/espresso/design"
	"bitbucket.org/Davydov/espresso/motif"
	"bitbucket.org/Davydov/espresso/scrub"
	"bitbucket.org/Davydov/espresso/store"
)

// modelSettings stores settings for creating models.
type modelSettings struct {
	key        string
	dbFileName string
}

// newModelSettings initializes modelSettings from the command line
// parameters (global variables).
func newModelSettings(key string) *modelSettings {
	return &modelSettings{
		key:        key,
		dbFileName: *dbFileName,
	}
}

// registry returns the built-in models and the models from the
// database if it is set.
func (ms *modelSettings) registry() (*design.Registry, error) {
	r, err := design.NewBuiltinRegistry()
	if err != nil || ms.dbFileName == "" {
		return r, err
	}
	s, err := store.Open(ms.dbFileName)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err := r.LoadStore(s); err != nil {
		return nil, err
	}
	return r, nil
}

// scrubSettings stores settings for creating scrubbers.
type scrubSettings struct {
	avoid         []string
	patterns      []string
	enzymes       []string
	maxIterations int
}

// newScrubSettings initializes scrubSettings from the command line
// parameters (global variables).
func newScrubSettings() *scrubSettings {
	return &scrubSettings{
		avoid:         *avoid,
		patterns:      *avoidPattern,
		enzymes:       *enzymes,
		maxIterations: *iterations,
	}
}

// detectors creates all the motif detectors.
func (ss *scrubSettings) detectors() ([]motif.Detector, error) {
	var ds []motif.Detector
	for _, m := range ss.avoid {
		log.Infof("Avoiding motif %s", strings.ToUpper(m))
		ds = append(ds, motif.AvoidMotif(strings.ToUpper(m)))
	}
	for _, p := range ss.patterns {
		ap, err := motif.NewAvoidPattern(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p, err)
		}
		log.Infof("Avoiding pattern %s", ap)
		ds = append(ds, ap)
	}
	for _, e := range ss.enzymes {
		site, err := motif.Enzyme(e)
		if err != nil {
			return nil, err
		}
		log.Infof("Avoiding %s site %s", e, site)
		ds = append(ds, site)
	}
	if len(ds) == 0 {
		log.Warning("Nothing to avoid")
	}
	return ds, nil
}

// scrubber creates a new scrubber without a model.
func (ss *scrubSettings) scrubber() (*scrub.Scrubber, error) {
	ds, err := ss.detectors()
	if err != nil {
		return nil, err
	}
	return &scrub.Scrubber{Avoid: ds, MaxIterations: ss.maxIterations}, nil
}
