package candidate

import (
	"archivecrack/internal/charset"
	"archivecrack/internal/errs"
)

// Kind tags which variant a Strategy holds.
type Kind int

const (
	KindDictionary Kind = iota
	KindGenerated
)

// Strategy is the tagged variant consumed by the cracker: either a
// dictionary file or a charset-driven length-bounded generator.
type Strategy struct {
	Kind Kind

	// Dictionary fields.
	Path string

	// Generated fields.
	Classes []charset.Class
	Custom  []rune
	MinLen  int
	MaxLen  int
}

// Dictionary builds a Strategy that reads candidates from the lines of path.
func Dictionary(path string) Strategy {
	return Strategy{Kind: KindDictionary, Path: path}
}

// Generated builds a Strategy that enumerates the normalized union of
// classes and custom over [minLen, maxLen].
func Generated(classes []charset.Class, custom []rune, minLen, maxLen int) Strategy {
	return Strategy{Kind: KindGenerated, Classes: classes, Custom: custom, MinLen: minLen, MaxLen: maxLen}
}

// NewStream constructs the concrete Stream for a Strategy and returns it
// along with the precomputed total candidate count. For Generated
// strategies the charset is normalized (deduplicated, sorted) first.
func NewStream(s Strategy) (Stream, uint64, error) {
	switch s.Kind {
	case KindDictionary:
		if s.Path == "" {
			return nil, 0, errs.New(errs.ArgumentInvalid, "dictionary path must be set")
		}
		d, err := NewDictionary(s.Path)
		if err != nil {
			return nil, 0, err
		}
		return d, d.Total(), nil

	case KindGenerated:
		cs, err := charset.Build(s.Classes, s.Custom)
		if err != nil {
			return nil, 0, err
		}
		g, err := NewGenerator(cs, s.MinLen, s.MaxLen)
		if err != nil {
			return nil, 0, err
		}
		return g, g.Total(), nil

	default:
		return nil, 0, errs.New(errs.ArgumentInvalid, "unknown strategy kind")
	}
}

// Count returns the total candidate count for a Strategy without
// constructing a full Stream (no file handle is opened for Generated
// strategies; for Dictionary strategies the file is scanned once).
func Count(s Strategy) (uint64, error) {
	switch s.Kind {
	case KindDictionary:
		if s.Path == "" {
			return 0, errs.New(errs.ArgumentInvalid, "dictionary path must be set")
		}
		return CountLines(s.Path)
	case KindGenerated:
		cs, err := charset.Build(s.Classes, s.Custom)
		if err != nil {
			return 0, err
		}
		return CountGenerated(len(cs), s.MinLen, s.MaxLen)
	default:
		return 0, errs.New(errs.ArgumentInvalid, "unknown strategy kind")
	}
}
