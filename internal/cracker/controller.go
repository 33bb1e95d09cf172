// Package cracker implements the worker pool and controller that drive a
// candidate.Strategy against a probe.Target: sharding the candidate space
// across N workers, collecting the first match, and reporting batched
// progress back to the caller.
package cracker

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"archivecrack/internal/candidate"
	"archivecrack/internal/probe"
)

// progressCounter is the single shared, designated-reporter progress total
// described by §4.7: workers add to it in batches rather than on every
// attempt, to keep the atomic off the hot path.
type progressCounter struct{ v atomic.Uint64 }

func (p *progressCounter) add(delta uint64) { p.v.Add(delta) }
func (p *progressCounter) load() uint64      { return p.v.Load() }
func (p *progressCounter) store(v uint64)    { p.v.Store(v) }

// stopFlag is set exactly once, by the controller, on receipt of the first
// match (§4.8). Workers only read it; they never set it themselves.
type stopFlag struct{ v atomic.Bool }

func (s *stopFlag) isSet() bool { return s.v.Load() }
func (s *stopFlag) set()        { s.v.Store(true) }

// Outcome classifies how a Start call ended.
type Outcome int

const (
	// NotFound means every worker exhausted its shard of the candidate
	// space without a match, the target's format was not recognized, or the
	// caller cancelled ctx before any match.
	NotFound Outcome = iota
	// Found means a worker located a password that fully decrypted the
	// target.
	Found
	// Fatal means a precondition failed before, or an unrecoverable error
	// occurred during, the search — a malformed archive, an unreadable
	// dictionary, an overflowing candidate count, and so on.
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Fatal:
		return "fatal"
	default:
		return "not_found"
	}
}

// Result is the terminal outcome of a Start call.
type Result struct {
	Outcome  Outcome
	Password string
	Err      error
}

// Cracker coordinates a fixed candidate.Strategy against a single target
// file using a fixed number of workers. A Cracker is single-use: construct a
// new one per search.
type Cracker struct {
	strategy candidate.Strategy
	path     string
	workers  int

	total     uint64
	haveTotal bool

	tested progressCounter
}

// New constructs a Cracker. workers is clamped to at least 1.
func New(strategy candidate.Strategy, path string, workers int) *Cracker {
	if workers <= 0 {
		workers = 1
	}
	return &Cracker{strategy: strategy, path: path, workers: workers}
}

// Count returns the total candidate-space size for this Cracker's strategy,
// computing and caching it on first call. This is the same precondition
// check Start performs before spawning any worker, exposed so callers can
// size a progress bar or fail fast without starting a search.
func (c *Cracker) Count() (uint64, error) {
	if c.haveTotal {
		return c.total, nil
	}
	total, err := candidate.Count(c.strategy)
	if err != nil {
		return 0, err
	}
	c.total = total
	c.haveTotal = true
	return total, nil
}

// TestedCount returns the number of candidates tested so far, as of the most
// recent batch report. It is safe to call concurrently with Start.
func (c *Cracker) TestedCount() uint64 {
	return c.tested.load()
}

// Start runs the search to completion. Fatal preconditions — an invalid
// strategy, an overflowing candidate count, an unreadable target, a
// malformed or unencrypted ZIP target — are detected and returned before any
// worker is spawned (§7: S4, S5). RAR, 7z and PDF targets are not checked
// for encryption up front. An unrecognized target format is not fatal: per §4.5 it ends the
// search with NotFound directly, since no worker has a Prober to construct.
func (c *Cracker) Start(ctx context.Context) (Result, error) {
	total, err := c.Count()
	if err != nil {
		return Result{Outcome: Fatal, Err: err}, err
	}

	format, err := probe.Sniff(c.path)
	if err != nil {
		return Result{Outcome: Fatal, Err: err}, err
	}
	if format == probe.Unknown {
		c.tested.store(total)
		return Result{Outcome: NotFound}, nil
	}

	target, err := probe.Open(format, c.path)
	if err != nil {
		if err == probe.ErrUnsupportedFormat {
			c.tested.store(total)
			return Result{Outcome: NotFound}, nil
		}
		return Result{Outcome: Fatal, Err: err}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	resultCh := make(chan workerOutcome, 1)
	var stop stopFlag

	for i := 0; i < c.workers; i++ {
		workerIndex := i
		g.Go(func() error {
			return runWorkerCtx(gctx, target, c.strategy, workerIndex, c.workers, format, &c.tested, &stop, resultCh)
		})
	}

	doneCh := make(chan struct{})
	go func() {
		// g.Wait's error is surfaced separately below; this goroutine only
		// signals that every worker has returned, win or lose.
		_ = g.Wait()
		close(doneCh)
	}()

	select {
	case res := <-resultCh:
		stop.set()
		<-doneCh
		if err := g.Wait(); err != nil {
			return Result{Outcome: Fatal, Err: err}, err
		}
		return Result{Outcome: Found, Password: res.password}, nil

	case <-doneCh:
		select {
		case res := <-resultCh:
			if err := g.Wait(); err != nil {
				return Result{Outcome: Fatal, Err: err}, err
			}
			return Result{Outcome: Found, Password: res.password}, nil
		default:
		}
		if err := g.Wait(); err != nil {
			return Result{Outcome: Fatal, Err: err}, err
		}
		if ctx.Err() != nil {
			// The caller cancelled: workers stopped early, so the batched
			// counter is left as it stands.
			return Result{Outcome: NotFound}, nil
		}
		// Every worker exhausted its shard with nothing ever sent on
		// resultCh: the batched counter may still be short of `total` by up
		// to one batch per worker, so pin it to the known total (§8, S2).
		c.tested.store(total)
		return Result{Outcome: NotFound}, nil
	}
}
