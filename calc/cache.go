package calc

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// programCache stores compiled programs keyed by an xxh3 hash of the
// source text and the names of its rewrites. When full it is emptied
// rather than evicting individual entries.
type programCache struct {
	limit   int
	entries sync.Map // key -> *compiled
	count   atomic.Int64
}

// compiled is one cache entry. The program is built at most once.
type compiled struct {
	once    sync.Once
	program *vm.Program
	err     error
}

func newProgramCache(limit int) *programCache {
	return &programCache{limit: limit}
}

func cacheKey(source string, rewriters []Rewriter) string {
	h := xxh3.HashString(rewriteKey(rewriters) + "\x00" + source)

	return strconv.FormatUint(h, 36)
}

// load returns the entry for key, creating it when absent.
func (c *programCache) load(key string) (entry *compiled, hit bool) {
	if c.limit <= 0 {
		return new(compiled), false
	}

	if v, ok := c.entries.Load(key); ok {
		return v.(*compiled), true
	}

	if c.count.Load() >= int64(c.limit) {
		c.clear()
	}

	v, loaded := c.entries.LoadOrStore(key, new(compiled))
	if !loaded {
		c.count.Add(1)
	}

	return v.(*compiled), loaded
}

func (c *programCache) clear() {
	c.entries.Clear()
	c.count.Store(0)
}

// Len returns the number of cached programs.
func (c *programCache) Len() int {
	return int(c.count.Load())
}

// compile returns the program for source with rewriters applied, compiling
// it on first use.
func (e *Engine) compile(
	ctx context.Context,
	source string,
	rewriters []Rewriter,
) (*vm.Program, error) {
	key := cacheKey(source, rewriters)
	entry, hit := e.cache.load(key)

	e.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		opts := e.options()

		for _, r := range rewriters {
			opts = append(opts, expr.Patch(&rewriteVisitor{Rewriter: r, logger: e.logger}))
		}

		opts = append(opts,
			expr.Patch(guardVisitor{}),
			expr.Patch(floatVisitor{}),
		)

		entry.program, entry.err = expr.Compile(source, opts...)
		if entry.err != nil {
			entry.err = ErrEvaluate.Wrap(entry.err).With(
				slog.String("source", source),
				slog.String("rewrites", rewriteKey(rewriters)))
		}
	})

	return entry.program, entry.err
}
