// Package design picks codon models by name and designs or scrubs
// coding sequences with them.
package design

import (
	"embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/espresso/cmodel"
	"bitbucket.org/Davydov/espresso/codon"
	"bitbucket.org/Davydov/espresso/store"
)

var log = logging.MustGetLogger("design")

//go:embed data/*.json
var data embed.FS

// Built-in codon usage tables.
const (
	// Saccharomyces cerevisiae
	SC = "sc"
	// Escherichia coli K-12
	EC = "ec"
	// Yarrowia lipolytica
	YL = "yl"
)

// Key suffixes for model variants.
const (
	TopSuffix     = "-top"
	ContextSuffix = "-ctx"
)

// ErrModelNotFound is returned for model keys which were never
// registered.
var ErrModelNotFound = errors.New("model not found")

// ModelKey is a registered model name.
type ModelKey = string

// Factory creates a model instance drawing from src. Models which do
// not sample ignore src.
type Factory func(src rand.Source) cmodel.Model

// Registry maps model keys to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[ModelKey]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ModelKey]Factory)}
}

// Register adds or replaces a model factory.
func (r *Registry) Register(key ModelKey, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		log.Warningf("Replacing model %s", key)
	}
	r.factories[key] = f
}

// RegisterTable registers the independent model as key and the top
// model as key-top.
func (r *Registry) RegisterTable(key ModelKey, t *cmodel.Table) {
	base := cmodel.NewIndependent(t, rand.NewPCG(0, 0))
	r.Register(key, func(src rand.Source) cmodel.Model {
		return base.WithSource(src)
	})
	top := cmodel.NewTop(t)
	r.Register(key+TopSuffix, func(rand.Source) cmodel.Model {
		return top
	})
}

// RegisterContext registers a generative model decoding with codon
// pair weights as key-ctx.
func (r *Registry) RegisterContext(key ModelKey, t *cmodel.Table, pu *codon.PairUsage) {
	r.Register(key+ContextSuffix, func(src rand.Source) cmodel.Model {
		ctx := cmodel.NewContext(t, pu, cmodel.DefaultSmoothing, src)
		return cmodel.NewGenerative(ctx, cmodel.DefaultMaxAttempts)
	})
}

// Model creates a model instance for the key.
func (r *Registry) Model(key ModelKey, src rand.Source) (cmodel.Model, error) {
	r.mu.RLock()
	f, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, key)
	}
	return f(src), nil
}

// Keys returns all the registered keys sorted alphabetically.
func (r *Registry) Keys() []ModelKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]ModelKey, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadStore registers every table from the store. Tables with codon
// pair counts also get a context model.
func (r *Registry) LoadStore(s *store.Store) error {
	names, err := s.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		u, err := s.LoadUsage(name)
		if err != nil {
			return err
		}
		t, err := cmodel.NewTable(u)
		if err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
		r.RegisterTable(name, t)

		pu, err := s.LoadPairs(name)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Debugf("No codon pairs for %s", name)
		case err != nil:
			return err
		default:
			r.RegisterContext(name, t, pu)
		}
		log.Infof("Loaded model %s from the store", name)
	}
	return nil
}

// BuiltinTable returns one of the embedded usage tables.
func BuiltinTable(name string) (*cmodel.Table, error) {
	f, err := data.Open(path.Join("data", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	defer f.Close()
	u, err := codon.ReadUsage(f)
	if err != nil {
		return nil, err
	}
	return cmodel.NewTable(u)
}

// BuiltinNames returns names of the embedded usage tables.
func BuiltinNames() []string {
	entries, _ := data.ReadDir("data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}

// NewBuiltinRegistry creates a new registry with the built-in
// models.
func NewBuiltinRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, name := range BuiltinNames() {
		t, err := BuiltinTable(name)
		if err != nil {
			return nil, fmt.Errorf("built-in table %s: %w", name, err)
		}
		r.RegisterTable(name, t)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry with the built-in models. The
// tables are parsed on the first call.
func Default() *Registry {
	defaultOnce.Do(func() {
		var err error
		defaultRegistry, err = NewBuiltinRegistry()
		if err != nil {
			// embedded data is broken
			panic(err)
		}
	})
	return defaultRegistry
}
