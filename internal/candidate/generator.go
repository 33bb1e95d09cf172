package candidate

import (
	"archivecrack/internal/errs"
)

// Generator is the lazy lexicographic enumerator of all strings over a
// charset with length in [minLen, maxLen]. Enumeration is length-major then
// lexicographic under the charset's own order, with the rightmost position
// incrementing fastest (base-|charset| positional counting).
//
// A Generator is not safe for concurrent use; each worker must own its own
// instance (call NewGenerator once per worker).
type Generator struct {
	charset    []rune
	index      map[rune]int // charset[i] -> i, precomputed for O(1) increment
	first      rune
	last       rune
	maxLen     int
	buf        []rune
	generated  uint64
	total      uint64
}

// CountGenerated computes Σ_{L=min..max} |charset|^L with checked arithmetic.
// Overflow of the uint64 range is reported as an ArithmeticOverflow error.
func CountGenerated(charsetLen, minLen, maxLen int) (uint64, error) {
	if charsetLen <= 0 {
		return 0, errs.New(errs.ArgumentInvalid, "charset must be non-empty")
	}
	if minLen <= 0 || maxLen <= 0 || minLen > maxLen {
		return 0, errs.New(errs.ArgumentInvalid, "require 1 <= min_len <= max_len")
	}

	var total uint64
	for l := minLen; l <= maxLen; l++ {
		pow, ok := checkedPow(uint64(charsetLen), uint(l))
		if !ok {
			return 0, errs.New(errs.ArithmeticOverflow, "candidate space exceeds uint64 range")
		}
		sum, ok := checkedAdd(total, pow)
		if !ok {
			return 0, errs.New(errs.ArithmeticOverflow, "candidate space exceeds uint64 range")
		}
		total = sum
	}
	return total, nil
}

func checkedPow(base uint64, exp uint) (uint64, bool) {
	result := uint64(1)
	for i := uint(0); i < exp; i++ {
		next, ok := checkedMul(result, base)
		if !ok {
			return 0, false
		}
		result = next
	}
	return result, true
}

func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func checkedAdd(a, b uint64) (uint64, bool) {
	r := a + b
	if r < a {
		return 0, false
	}
	return r, true
}

// NewGenerator constructs a Generator for the given (already normalized)
// charset and length range. charset must be non-empty and ordered; callers
// normalize via charset.Build before calling this.
func NewGenerator(cs []rune, minLen, maxLen int) (*Generator, error) {
	if len(cs) == 0 {
		return nil, errs.New(errs.ArgumentInvalid, "charset must be non-empty")
	}
	if minLen <= 0 || maxLen <= 0 || minLen > maxLen {
		return nil, errs.New(errs.ArgumentInvalid, "require 1 <= min_len <= max_len")
	}

	total, err := CountGenerated(len(cs), minLen, maxLen)
	if err != nil {
		return nil, err
	}

	idx := make(map[rune]int, len(cs))
	for i, r := range cs {
		idx[r] = i
	}

	buf := make([]rune, minLen)
	for i := range buf {
		buf[i] = cs[0]
	}

	return &Generator{
		charset: cs,
		index:   idx,
		first:   cs[0],
		last:    cs[len(cs)-1],
		maxLen:  maxLen,
		buf:     buf,
		total:   total,
	}, nil
}

// Total implements Stream.
func (g *Generator) Total() uint64 { return g.total }

// Next implements Stream, applying the §4.2 transition rules: the first call
// returns the initial buffer; every later call first advances it one step
// (rightmost non-last position increments, positions to its right reset; if
// the whole buffer is already charset[last], the buffer grows by one
// position) and then returns it.
func (g *Generator) Next() (string, bool) {
	if len(g.buf) > g.maxLen {
		return "", false
	}
	if g.generated == g.total {
		return "", false
	}

	if g.generated == 0 {
		g.generated++
		return string(g.buf), true
	}

	g.advance()
	g.generated++
	return string(g.buf), true
}

func (g *Generator) advance() {
	// Find the rightmost position that is not charset[last].
	at := -1
	for i := len(g.buf) - 1; i >= 0; i-- {
		if g.buf[i] != g.last {
			at = i
			break
		}
	}

	if at == -1 {
		// Whole buffer is charset[last]: grow by one length and reset.
		g.buf = make([]rune, len(g.buf)+1)
		for i := range g.buf {
			g.buf[i] = g.first
		}
		return
	}

	cur := g.index[g.buf[at]]
	g.buf[at] = g.charset[cur+1]
	for i := at + 1; i < len(g.buf); i++ {
		g.buf[i] = g.first
	}
}
