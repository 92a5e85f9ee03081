// Package trainingctx keeps the assistant's training material ready for prompt
// construction. Active training documents are partitioned by category into a
// Bundle and indexed for similarity search; the result is cached for a TTL and
// rebuilt lazily on the next read after it expires or is invalidated.
//
// Concurrency:
//   - Concurrent cold readers share one rebuild (singleflight).
//   - Invalidate bumps a generation counter. A rebuild that started before the
//     invalidation still answers its own callers but is not stored, so the next
//     read observes the write that triggered the invalidation. The generation
//     check and the store happen under the same lock as Invalidate.
package trainingctx

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/search"
)

// DefaultTTL is how long a built bundle is served before it is rebuilt.
const DefaultTTL = 30 * time.Minute

const bundleKey = "bundle"

// Bundle is the training material grouped by category, each group in store
// order (most recently updated first).
type Bundle struct {
	Policies  []domain.AiTrainingDoc
	Biography []domain.AiTrainingDoc
	Speeches  []domain.AiTrainingDoc
	FAQs      []domain.AiTrainingDoc
	BuiltAt   time.Time
}

// Empty reports whether the bundle holds no material at all.
func (b Bundle) Empty() bool {
	return len(b.Policies)+len(b.Biography)+len(b.Speeches)+len(b.FAQs) == 0
}

// Match is one similarity hit.
type Match struct {
	Doc     domain.AiTrainingDoc `json:"doc"`
	Snippet string               `json:"snippet"`
	Score   float64              `json:"score"`
}

// Loader returns the active training documents.
type Loader func(ctx context.Context) ([]domain.AiTrainingDoc, error)

// DBLoader loads active documents from the store.
func DBLoader(db *gorm.DB) Loader {
	return func(ctx context.Context) ([]domain.AiTrainingDoc, error) {
		return repo.ListTrainingDocs(ctx, db, "")
	}
}

type entry struct {
	bundle Bundle
	index  search.Index
	byID   map[string]domain.AiTrainingDoc
}

// Cache serves Bundles built from a Loader.
type Cache struct {
	store *cache.Cache
	ttl   time.Duration
	load  Loader
	group singleflight.Group
	now   func() time.Time

	mu  sync.Mutex // guards gen changes against a concurrent store
	gen atomic.Uint64
	// storeHook runs while a rebuilt entry is about to be stored. Tests only.
	storeHook func()
}

// New returns a Cache that rebuilds from load at most once per ttl.
// A non-positive ttl selects DefaultTTL.
func New(load Loader, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		load:  load,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the current bundle, building it when the cache is cold.
func (c *Cache) Get(ctx context.Context) (Bundle, error) {
	e, err := c.entry(ctx)
	if err != nil {
		return Bundle{}, err
	}
	return e.bundle, nil
}

// Similar ranks the active documents against q and returns at most k matches.
func (c *Cache) Similar(ctx context.Context, q string, k int) ([]Match, error) {
	e, err := c.entry(ctx)
	if err != nil {
		return nil, err
	}
	hits := e.index.TopK(q, k)
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		if d, ok := e.byID[h.ID]; ok {
			out = append(out, Match{Doc: d, Snippet: h.Snippet, Score: h.Score})
		}
	}
	return out, nil
}

// Invalidate drops the cached bundle. The next Get rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen.Add(1)
	c.store.Delete(bundleKey)
	c.mu.Unlock()
	cacheInvalidations.Inc()
}

// BuiltAt returns when the cached bundle was built, or the zero time when
// nothing is cached.
func (c *Cache) BuiltAt() time.Time {
	if x, ok := c.store.Get(bundleKey); ok {
		return x.(*entry).bundle.BuiltAt
	}
	return time.Time{}
}

func (c *Cache) entry(ctx context.Context) (*entry, error) {
	if x, ok := c.store.Get(bundleKey); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return x.(*entry), nil
	}
	cacheLookups.WithLabelValues("miss").Inc()

	gen := c.gen.Load()
	v, err, _ := c.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		docs, err := c.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		e := build(docs, c.now())
		c.storeIfCurrent(gen, e)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

// storeIfCurrent caches e unless an invalidation happened after gen was read.
func (c *Cache) storeIfCurrent(gen uint64, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		return
	}
	if c.storeHook != nil {
		c.storeHook()
	}
	c.store.Set(bundleKey, e, c.ttl)
}

// build partitions docs by category and indexes them.
func build(docs []domain.AiTrainingDoc, now time.Time) *entry {
	e := &entry{
		bundle: Bundle{BuiltAt: now},
		byID:   make(map[string]domain.AiTrainingDoc, len(docs)),
	}
	idxDocs := make([]search.Document, 0, len(docs))
	for _, d := range docs {
		if !d.IsActive {
			continue
		}
		switch d.Category {
		case domain.CategoryPolicy:
			e.bundle.Policies = append(e.bundle.Policies, d)
		case domain.CategoryBiography:
			e.bundle.Biography = append(e.bundle.Biography, d)
		case domain.CategorySpeech:
			e.bundle.Speeches = append(e.bundle.Speeches, d)
		case domain.CategoryFAQ:
			e.bundle.FAQs = append(e.bundle.FAQs, d)
		default:
			continue
		}
		e.byID[d.ID] = d
		idxDocs = append(idxDocs, search.Document{ID: d.ID, Title: d.Title, Text: d.Content})
	}
	e.index = search.NewIndex(idxDocs)
	return e
}
