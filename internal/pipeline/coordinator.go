// Package pipeline implements the concurrent search core of spec.md 4.B
// and 4.E: a producer (fed by internal/walker) hands one file at a time
// to two scanning workers via a semaphore chain, and a consumer merges
// their partial results into a shared internal/store.Store while the UI
// reads it live.
package pipeline

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/gquere/ngp/internal/matcher"
	"github.com/gquere/ngp/internal/store"
	"github.com/gquere/ngp/internal/walker"
)

// coordinator owns the semaphore chain and the current-file handoff
// state described in spec.md 4.E / 5. It replaces ngp.c's process-wide
// sem_t globals with explicit, per-run state (Design Notes 9).
type coordinator struct {
	slotFree  *semaphore.Weighted
	workReady [2]*semaphore.Weighted
	workDone  [2]*semaphore.Weighted

	current       fileJob
	workerResults [2]workerResult
}

func newCoordinator(ctx context.Context) *coordinator {
	c := &coordinator{
		slotFree: semaphore.NewWeighted(1), // initial value 1: free
	}
	for i := 0; i < 2; i++ {
		c.workReady[i] = semaphore.NewWeighted(1)
		c.workDone[i] = semaphore.NewWeighted(1)
		// Both start at 0 (not signaled): pre-acquire the single unit of
		// weight so the first real wait blocks until a Release happens.
		c.workReady[i].Acquire(ctx, 1)
		c.workDone[i].Acquire(ctx, 1)
	}
	return c
}

// Run drives the full pipeline for one search: it walks root, scans
// every eligible file, and appends results into st, setting st Done when
// the walk and all in-flight files have been merged. Run blocks until
// the search completes or ctx is canceled.
func Run(ctx context.Context, root string, m matcher.Matcher, opts walker.Options, st *store.Store) {
	paths := walker.Walk(ctx, root, opts)
	c := newCoordinator(ctx)

	workerDone := make(chan struct{}, 2)
	go func() { c.worker(ctx, m, 0); workerDone <- struct{}{} }()
	go func() { c.worker(ctx, m, 1); workerDone <- struct{}{} }()

	consumerDone := make(chan struct{})
	go func() { c.consumer(ctx, st); close(consumerDone) }()

	c.produce(ctx, paths)

	<-consumerDone
	<-workerDone
	<-workerDone
}

// produce is the "walker/scanner entry" of spec.md 4.E step 1-2: for
// each path it acquires the single pipeline slot, maps the file, and
// releases both workers onto it. Once paths is exhausted it hands the
// workers a poison fileJob so they (and the consumer) can exit.
func (c *coordinator) produce(ctx context.Context, paths <-chan string) {
	for {
		select {
		case path, ok := <-paths:
			if !ok {
				if c.slotFree.Acquire(ctx, 1) != nil {
					return
				}
				c.current = fileJob{}
				c.workReady[0].Release(1)
				c.workReady[1].Release(1)
				return
			}

			if c.slotFree.Acquire(ctx, 1) != nil {
				return
			}

			job, ok := openAndMap(path)
			if !ok {
				c.slotFree.Release(1)
				continue
			}

			c.current = job
			c.workReady[0].Release(1)
			c.workReady[1].Release(1)

		case <-ctx.Done():
			return
		}
	}
}

// worker implements spec.md 4.E step 3: wait for a published file, scan
// its half, publish the result, repeat. It exits on the poison job or on
// context cancellation.
func (c *coordinator) worker(ctx context.Context, m matcher.Matcher, half int) {
	for {
		if c.workReady[half].Acquire(ctx, 1) != nil {
			return
		}

		job := c.current
		if job.path == "" {
			c.workerResults[half] = workerResult{}
			c.workDone[half].Release(1)
			return
		}

		c.workerResults[half] = scanHalf(job, half, m)
		c.workDone[half].Release(1)
	}
}

// consumer implements spec.md 4.E step 4: wait for both workers, merge
// their results into the store under a single append per file (so the
// UI never observes a header without its lines), unmap, and free the
// slot for the next file. It marks st Done once it observes the poison
// job.
func (c *coordinator) consumer(ctx context.Context, st *store.Store) {
	for {
		if c.workDone[0].Acquire(ctx, 1) != nil {
			return
		}
		if c.workDone[1].Acquire(ctx, 1) != nil {
			return
		}

		job := c.current
		if job.path == "" {
			st.SetDone()
			return
		}

		r0 := c.workerResults[0]
		r1 := c.workerResults[1]

		if len(r0.entries) > 0 || len(r1.entries) > 0 {
			lines := make([]store.Entry, 0, len(r0.entries)+len(r1.entries))
			lines = append(lines, r0.entries...)
			for _, e := range r1.entries {
				e.Line += r0.lineCount
				lines = append(lines, e)
			}
			st.AppendFile(job.path, lines)
		}

		job.data.Unmap()
		c.slotFree.Release(1)
	}
}
