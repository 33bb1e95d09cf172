package cracker

import (
	"context"

	"archivecrack/internal/candidate"
	"archivecrack/internal/probe"
)

// shardStream wraps a full, independent candidate.Stream and exposes only
// the candidates at positions where position%n == index. Each worker owns
// one shardStream over its own Stream instance (its own dictionary file
// handle, or its own Generator), rather than sharing a single Stream across
// goroutines — this mirrors the original implementation's
// filter_for_worker_index wrapping a fully independent per-worker iterator.
type shardStream struct {
	underlying candidate.Stream
	n          int
	index      int
	pos        uint64
}

func newShardStream(underlying candidate.Stream, n, index int) *shardStream {
	return &shardStream{underlying: underlying, n: n, index: index}
}

func (s *shardStream) Next() (string, bool) {
	for {
		cand, ok := s.underlying.Next()
		if !ok {
			return "", false
		}
		mine := int(s.pos%uint64(s.n)) == s.index
		s.pos++
		if mine {
			return cand, true
		}
	}
}

func (s *shardStream) Total() uint64 { return s.underlying.Total() }

// workerOutcome is what a single worker goroutine reports back to Start
// after its shard is exhausted or a match is found.
type workerOutcome struct {
	found    bool
	password string
}

// runWorkerCtx drains one worker's shard of the candidate space against its
// own Prober, checking stop (and ctx, cancelled by the errgroup on a
// sibling's fatal error) before every attempt so a match or a fatal failure
// elsewhere ends this one promptly. Only the designated reporter
// (workerIndex == 0) ever touches tested, adding a batched delta every
// batch*workerCount candidates it itself tests (§4.7: "only worker 1 ...
// updates the shared tested counter" — every other worker keeps no count at
// all and never writes to the shared atomic). It returns as soon as
// it finds a match, its shard is exhausted, or stop/ctx fires.
func runWorkerCtx(
	ctx context.Context,
	target probe.Target,
	strategy candidate.Strategy,
	workerIndex, workerCount int,
	format probe.Format,
	tested *progressCounter,
	stop *stopFlag,
	resultCh chan<- workerOutcome,
) error {
	stream, _, err := candidate.NewStream(strategy)
	if err != nil {
		return err
	}
	shard := newShardStream(stream, workerCount, workerIndex)

	prober, err := target.NewProber()
	if err != nil {
		return err
	}
	defer prober.Close()

	batch := probe.Batch(format)
	threshold := uint64(batch * workerCount)
	var sinceReport uint64

	for {
		if stop.isSet() || ctx.Err() != nil {
			return nil
		}

		password, ok := shard.Next()
		if !ok {
			return nil
		}

		verdict, err := prober.Try(password)
		if err != nil {
			return err
		}

		if workerIndex == 0 {
			sinceReport++
			if sinceReport >= threshold {
				tested.add(threshold)
				sinceReport = 0
			}
		}

		if verdict == probe.Match {
			select {
			case resultCh <- workerOutcome{found: true, password: password}:
			default:
			}
			return nil
		}
	}
}
