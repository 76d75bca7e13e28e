package resolve

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"vindur/diag"
)

// Extractor builds record for module source. Chain includes path itself.
type Extractor func(path string, src []byte, chain *Chain) (*Record, error)

type entry struct {
	state  State
	record *Record
	err    error
}

// Cache memoizes extraction records by absolute module path for a single
// compilation run. It is safe for concurrent use. Concurrent extraction of the
// same module is not coalesced: the first finished result is kept and
// returned to everybody.
type Cache struct {
	loader Loader
	log    *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
	loads   atomic.Int64
}

// NewCache creates empty cache reading modules with loader.
func NewCache(loader Loader, log *zap.Logger) *Cache {
	if loader == nil {
		loader = OSLoader{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		loader:  loader,
		log:     log.Named("resolve"),
		entries: make(map[string]*entry),
	}
}

// Loader returns source provider of the cache.
func (c *Cache) Loader() Loader {
	return c.loader
}

// Get returns record for module at path, extracting it on first request.
// Reference to a module which is already being resolved on the chain is a
// structural error. Failures are cached as well, except for cycles which
// depend on the chain.
func (c *Cache) Get(path string, chain *Chain, extract Extractor) (*Record, error) {
	if chain.Contains(path) {
		return nil, cycleError(chain, path)
	}

	c.mu.Lock()
	e, ok := c.entries[path]
	switch {
	case ok && e.state == StateDone:
		c.mu.Unlock()
		c.log.Debug("Module cache hit", zap.String("path", path), zap.Bool("failed", e.err != nil))
		return e.record, e.err
	case ok:
		c.log.Debug("Module is being extracted concurrently", zap.String("path", path))
	default:
		c.entries[path] = &entry{state: StatePending}
	}
	c.mu.Unlock()

	rec, err := c.load(path, chain, extract)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok = c.entries[path]
	if ok && e.state == StateDone {
		return e.record, e.err
	}
	if errors.Is(err, ErrCycle) {
		if ok {
			delete(c.entries, path)
		}
		return nil, err
	}
	if !ok {
		e = &entry{}
		c.entries[path] = e
	}
	e.state, e.record, e.err = StateDone, rec, err
	return rec, err
}

func (c *Cache) load(path string, chain *Chain, extract Extractor) (*Record, error) {
	c.loads.Add(1)
	c.log.Debug("Extracting module", zap.String("path", path), zap.Int("depth", len(chain.Paths())))

	src, err := c.loader.ReadFile(path)
	if err != nil {
		return nil, &diag.Error{Kind: diag.KindUnresolved, Message: "unable to read module: " + err.Error(), Position: diag.Position{File: path}}
	}
	rec, err := extract(path, src, chain.Push(path))
	if err != nil {
		return nil, err
	}
	c.log.Debug("Module extracted", zap.String("path", path), zap.Int("rules", len(rec.Rules)), zap.Strings("symbols", rec.Symbols()))
	return rec, nil
}

// State returns extraction state of module at path.
func (c *Cache) State(path string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok {
		return 0, false
	}
	return e.state, true
}

// Loads returns number of module extractions performed.
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}

// Clear forgets everything, next run starts from scratch.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.loads.Store(0)
}
