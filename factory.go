package exprtree

import (
	"log/slog"
	"sync"
	"weak"
)

// Bounds of the constants a Factory preallocates. Constant(v) for v in
// [MinPredefined, MaxPredefined] always returns the same node.
const (
	MinPredefined = -5
	MaxPredefined = 256
)

// Factory creates Constant and Variable nodes, reusing a node for the same
// value or name while any tree still holds it. The cache holds weak pointers,
// so it never keeps a node alive by itself. Small constants are the exception:
// they are allocated once and live as long as the factory.
//
// When a lookup finds an entry whose node has been collected, the entry is
// replaced. Entries for keys that are never requested again stay in the cache
// until Sweep is called.
//
// A Factory is safe for concurrent use.
type Factory struct {
	mu        sync.Mutex
	constants map[int]weak.Pointer[Constant]
	variables map[string]weak.Pointer[Variable]

	predefined [MaxPredefined - MinPredefined + 1]*Constant

	log     *slog.Logger
	metrics *factoryMetrics
}

// NewFactory creates a factory with its small constants preallocated.
func NewFactory(opts ...FactoryOption) *Factory {
	f := Factory{
		constants: make(map[int]weak.Pointer[Constant]),
		variables: make(map[string]weak.Pointer[Variable]),
		log:       slog.Default(),
	}
	for i := range f.predefined {
		f.predefined[i] = newConstant(i + MinPredefined)
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case logopt:
			if opt.l != nil {
				f.log = opt.l
			}
		case meteropt:
			if opt.m == nil {
				continue
			}
			m, err := newFactoryMetrics(opt.m)
			if err != nil {
				f.log.Warn("factory metrics disabled", slog.Any("error", err))
				continue
			}
			f.metrics = m
		default:
			panic("exprtree: unknown option type")
		}
	}
	if f.metrics == nil {
		f.metrics = noopFactoryMetrics()
	}
	return &f
}

// Constant returns a node for the value v.
func (f *Factory) Constant(v int) *Constant {
	if MinPredefined <= v && v <= MaxPredefined {
		f.metrics.hit(kindConstant)
		return f.predefined[v-MinPredefined]
	}
	f.mu.Lock()
	c, hit, evicted := intern(f.constants, v, newConstant)
	f.mu.Unlock()
	f.record(kindConstant, slog.Int("value", v), hit, evicted)
	return c
}

// Variable returns a node for the variable named name.
func (f *Factory) Variable(name string) *Variable {
	f.mu.Lock()
	v, hit, evicted := intern(f.variables, name, newVariable)
	f.mu.Unlock()
	f.record(kindVariable, slog.String("name", name), hit, evicted)
	return v
}

// Sweep removes every cache entry whose node has been collected and returns
// the number removed. Preallocated constants are never removed.
func (f *Factory) Sweep() int {
	f.mu.Lock()
	nc := sweep(f.constants)
	nv := sweep(f.variables)
	f.mu.Unlock()
	f.metrics.evicted(kindConstant, nc)
	f.metrics.evicted(kindVariable, nv)
	f.log.Debug("factory sweep", slog.Int("constants", nc), slog.Int("variables", nv))
	return nc + nv
}

// FactoryStats describes the contents of a factory's caches.
type FactoryStats struct {
	// Predefined is the number of preallocated constants.
	Predefined int
	// Constants is the number of cached dynamic constant entries, including
	// entries whose nodes have been collected but not yet removed.
	Constants int
	// Variables is the same as Constants, for variables.
	Variables int
}

// Stats reports the sizes of the factory's caches.
func (f *Factory) Stats() FactoryStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FactoryStats{
		Predefined: len(f.predefined),
		Constants:  len(f.constants),
		Variables:  len(f.variables),
	}
}

func (f *Factory) record(kind string, key slog.Attr, hit, evicted bool) {
	if evicted {
		f.metrics.evicted(kind, 1)
		f.log.Debug("factory replaced expired entry", slog.String("kind", kind), key)
	}
	if hit {
		f.metrics.hit(kind)
		return
	}
	f.metrics.miss(kind)
	f.log.Debug("factory created node", slog.String("kind", kind), key)
}

// intern returns the live node cached under k, or caches and returns a new
// node from mk. An expired entry for k is dropped before the new node is
// stored. The caller must hold the factory's lock.
func intern[K comparable, T any](m map[K]weak.Pointer[T], k K, mk func(K) *T) (node *T, hit, evicted bool) {
	if wp, ok := m[k]; ok {
		if p := wp.Value(); p != nil {
			return p, true, false
		}
		delete(m, k)
		evicted = true
	}
	p := mk(k)
	m[k] = weak.Make(p)
	return p, false, evicted
}

// sweep deletes expired entries from m. The caller must hold the factory's
// lock.
func sweep[K comparable, T any](m map[K]weak.Pointer[T]) int {
	n := 0
	for k, wp := range m {
		if wp.Value() == nil {
			delete(m, k)
			n++
		}
	}
	return n
}

func newVariable(name string) *Variable {
	return &Variable{name: name}
}
