// Package charset maps named character classes to their ordered contents
// and normalizes a selection of classes plus custom characters into the
// single deduplicated, code-point-sorted sequence the generator enumerates
// over.
package charset

import (
	"sort"

	"archivecrack/internal/errs"
)

// Class is one of the four named character classes a Generated strategy can
// draw from.
type Class int

const (
	Digits Class = iota
	Lower
	Upper
	Special
)

// digits returns the ordered digit characters 0-9.
func digits() []rune {
	r := make([]rune, 0, 10)
	for c := '0'; c <= '9'; c++ {
		r = append(r, c)
	}
	return r
}

// lower returns the ordered lowercase ASCII letters a-z.
func lower() []rune {
	r := make([]rune, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		r = append(r, c)
	}
	return r
}

// upper returns the ordered uppercase ASCII letters A-Z.
func upper() []rune {
	r := make([]rune, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		r = append(r, c)
	}
	return r
}

// special returns the fixed special-character set in the literal order the
// spec documents: a leading space, then "-=!@#$%^&*_+<>/?.;:{}".
func special() []rune {
	return []rune(" -=!@#$%^&*_+<>/?.;:{}")
}

// Contents returns the ordered characters for a named class.
func Contents(c Class) []rune {
	switch c {
	case Digits:
		return digits()
	case Lower:
		return lower()
	case Upper:
		return upper()
	case Special:
		return special()
	default:
		return nil
	}
}

// Build collects the selected classes (in the order given) plus any custom
// characters, deduplicates while keeping first occurrence, then sorts the
// result ascending by code point. This sorted order is the charset's
// enumeration order. An empty result is rejected.
func Build(classes []Class, custom []rune) ([]rune, error) {
	seen := make(map[rune]bool, 96)
	out := make([]rune, 0, 96)

	add := func(rs []rune) {
		for _, r := range rs {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}

	for _, c := range classes {
		add(Contents(c))
	}
	add(custom)

	if len(out) == 0 {
		return nil, errs.New(errs.ArgumentInvalid, "charset must contain at least one character")
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
