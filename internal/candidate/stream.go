// Package candidate implements the lazy candidate-password streams: the
// indexed lexicographic generator over a charset, and the dictionary file
// reader, unified behind a single Stream interface and a Strategy tagged
// variant that picks between them.
package candidate

// Stream is a lazy, finite, non-restartable sequence of password candidates
// with a known total length. It is exclusively owned by the goroutine that
// calls Next.
type Stream interface {
	// Next returns the next candidate and true, or "" and false once the
	// stream is exhausted.
	Next() (string, bool)
	// Total returns the total number of candidates this stream will ever
	// produce, computed once up front.
	Total() uint64
}
