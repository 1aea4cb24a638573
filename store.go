package particlestore

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/container"
	"github.com/hupe1980/particlestore/internal/conv"
	"github.com/hupe1980/particlestore/internal/resource"
	"github.com/hupe1980/particlestore/particles"
	"github.com/hupe1980/particlestore/snapshot"
)

// StepFunc processes the particles of one block.
// Each invocation receives a Sets over a distinct block.
type StepFunc func(ctx context.Context, sets *particles.Sets) error

// Store owns one container per registered particle type and shares a
// resource budget between them.
type Store struct {
	mu        sync.RWMutex
	types     map[string]*container.Container
	resources *resource.Controller
	opts      options
	closed    bool
}

// New creates an empty Store.
func New(optFns ...Option) *Store {
	o := applyOptions(optFns)
	return &Store{
		types: make(map[string]*container.Container),
		resources: resource.NewController(resource.Config{
			MemoryLimitBytes:   o.memoryLimit,
			MaxWorkers:         int64(o.maxWorkers),
			IOLimitBytesPerSec: o.ioLimit,
		}),
		opts: o,
	}
}

// RegisterType creates the container for a new particle type.
func (s *Store) RegisterType(name string, info *attribute.Info) error {
	err := s.registerType(name, info)
	s.opts.logger.LogRegister(context.Background(), name, infoLen(info), err)
	return err
}

func (s *Store) registerType(name string, info *attribute.Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, ok := s.types[name]; ok {
		return ErrTypeExists
	}

	copts := []container.Option{
		container.WithResourceController(s.resources),
		container.WithLogger(s.opts.logger.WithType(name).Logger),
	}
	if s.opts.offHeap {
		copts = append(copts, container.WithOffHeap())
	}
	c, err := container.New(info, s.opts.blockCapacity, copts...)
	if err != nil {
		return translateError(err)
	}
	s.types[name] = c
	return nil
}

func infoLen(info *attribute.Info) int {
	if info == nil {
		return 0
	}
	return info.Len()
}

// Types returns the registered particle type names in sorted order.
func (s *Store) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Container returns the container of a registered particle type.
func (s *Store) Container(name string) (*container.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	c, ok := s.types[name]
	if !ok {
		return nil, &ErrUnknownType{Name: name}
	}
	return c, nil
}

// Add activates n new particles of the given type, initialised to the
// attribute defaults, and returns a Sets selecting exactly them. On error,
// particles activated before the failure remain active.
func (s *Store) Add(ctx context.Context, name string, n int) (*particles.Sets, error) {
	sets, err := s.add(ctx, name, n)
	s.opts.logger.LogAdd(ctx, name, n, len(setsOf(sets)), err)
	return sets, err
}

func (s *Store) add(ctx context.Context, name string, n int) (*particles.Sets, error) {
	if n < 0 {
		return nil, ErrInvalidArgument
	}
	c, err := s.Container(name)
	if err != nil {
		return nil, err
	}

	spans, err := c.Grow(ctx, n)
	if allocated := freshBlocks(spans); allocated > 0 {
		s.opts.metricsCollector.RecordBlockAlloc(allocated, int64(allocated*c.BlockSize()))
	}
	if err != nil {
		return nil, translateError(err)
	}

	members := make([]particles.Set, 0, len(spans))
	for _, span := range spans {
		end, err := conv.IntToUint32(span.Start + span.Len)
		if err != nil {
			return nil, translateError(err)
		}
		pindices := make([]uint32, 0, span.Len)
		for p := end - uint32(span.Len); p < end; p++ {
			pindices = append(pindices, p)
		}
		members = append(members, particles.NewSetUnchecked(span.Block, pindices))
	}
	sets, err := particles.NewSets(name, c.Info(), members)
	return sets, translateError(err)
}

func freshBlocks(spans []container.Span) int {
	n := 0
	for _, span := range spans {
		if span.Fresh {
			n++
		}
	}
	return n
}

func setsOf(sets *particles.Sets) []particles.Set {
	if sets == nil {
		return nil
	}
	return sets.Sets()
}

// ActiveSets selects every occupied slot of every block of the type.
func (s *Store) ActiveSets(name string) (*particles.Sets, error) {
	c, err := s.Container(name)
	if err != nil {
		return nil, err
	}

	blocks := c.Blocks()
	members := make([]particles.Set, 0, len(blocks))
	for _, b := range blocks {
		set, err := particles.ActiveSet(b)
		if err != nil {
			return nil, err
		}
		members = append(members, set)
	}
	sets, err := particles.NewSets(name, c.Info(), members)
	return sets, translateError(err)
}

// Step calls fn once per non-empty block of the type, concurrently up to the
// configured worker limit. The first error cancels the context passed to the
// remaining calls and is returned.
func (s *Store) Step(ctx context.Context, name string, fn StepFunc) error {
	start := time.Now()
	blocks, total, err := s.step(ctx, name, fn)
	elapsed := time.Since(start)

	s.opts.metricsCollector.RecordBulkWrite(total, elapsed, err)
	s.opts.logger.LogStep(ctx, name, blocks, total, elapsed, err)
	return err
}

func (s *Store) step(ctx context.Context, name string, fn StepFunc) (int, int, error) {
	if fn == nil {
		return 0, 0, ErrInvalidArgument
	}
	c, err := s.Container(name)
	if err != nil {
		return 0, 0, err
	}

	info := c.Info()
	var work []*particles.Sets
	total := 0
	for _, b := range c.Blocks() {
		if b.IsEmpty() {
			continue
		}
		set, err := particles.ActiveSet(b)
		if err != nil {
			return 0, 0, err
		}
		sets, err := particles.NewSets(name, info, []particles.Set{set})
		if err != nil {
			return 0, 0, translateError(err)
		}
		work = append(work, sets)
		total += sets.Size()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.resources.MaxWorkers())
	logger := s.opts.logger.WithType(name)
	for _, sets := range work {
		g.Go(func() error {
			if err := s.resources.AcquireWorker(gctx); err != nil {
				return err
			}
			defer s.resources.ReleaseWorker()

			l := logger.WithBlock(sets.Sets()[0].Block().ID()).WithCount(sets.Size())
			if err := fn(gctx, sets); err != nil {
				l.ErrorContext(gctx, "block step failed", "error", err)
				return err
			}
			l.DebugContext(gctx, "block stepped")
			return nil
		})
	}
	return len(work), total, translateError(g.Wait())
}

// Snapshot writes the active particles of the type to w.
func (s *Store) Snapshot(ctx context.Context, name string, w io.Writer) error {
	start := time.Now()
	cw := &countingWriter{w: w}
	err := s.snapshot(ctx, name, cw)

	s.opts.metricsCollector.RecordSnapshot(cw.n, time.Since(start), err)
	s.opts.logger.LogSnapshot(ctx, name, cw.n, err)
	return err
}

func (s *Store) snapshot(ctx context.Context, name string, w io.Writer) error {
	c, err := s.Container(name)
	if err != nil {
		return err
	}
	return translateError(snapshot.Write(ctx, w, name, c,
		snapshot.WithCompression(s.opts.compression),
		snapshot.WithResourceController(s.resources),
		snapshot.WithLogger(s.opts.logger.Logger),
	))
}

// Restore reads a snapshot from r and appends its particles to the type it
// was written from. Unregistered types are registered with the snapshot's
// schema; registered types must have an equal schema.
func (s *Store) Restore(ctx context.Context, r io.Reader) error {
	snap, err := snapshot.Read(ctx, r,
		snapshot.WithResourceController(s.resources),
		snapshot.WithLogger(s.opts.logger.Logger),
	)
	if err != nil {
		s.opts.logger.LogRestore(ctx, "", 0, err)
		return translateError(err)
	}

	err = s.restore(snap)
	s.opts.logger.LogRestore(ctx, snap.TypeName, snap.Len(), err)
	return err
}

func (s *Store) restore(snap *snapshot.Snapshot) error {
	c, err := s.Container(snap.TypeName)
	if err != nil {
		if err := s.registerType(snap.TypeName, snap.Info); err != nil {
			return err
		}
		if c, err = s.Container(snap.TypeName); err != nil {
			return err
		}
	}
	return translateError(snap.Restore(c))
}

// MemoryUsage returns the column memory currently held by all blocks.
func (s *Store) MemoryUsage() int64 {
	return s.resources.MemoryUsage()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
