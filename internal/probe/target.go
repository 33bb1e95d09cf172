package probe

import "errors"

// Target is constructed once by the controller after sniffing the file's
// format, and handed to every worker to build its own Prober.
type Target interface {
	NewProber() (Prober, error)
}

// ErrUnsupportedFormat is returned by Open when the sniffed format has no
// adapter. Per §4.5 this is deliberately not an errs.Error/Fatal: "Unsupported
// types cause the worker to terminate without a match and without error" —
// callers should treat it as an immediate NotFound, not a fatal condition.
var ErrUnsupportedFormat = errors.New("unsupported or unrecognized archive format")

// Open dispatches on the sniffed format and constructs the right Target.
func Open(format Format, path string) (Target, error) {
	switch format {
	case FormatZip:
		return OpenZipTarget(path)
	case FormatRar:
		return OpenRarTarget(path)
	case FormatSevenZip:
		return OpenSevenZipTarget(path)
	case FormatPDF:
		return OpenPDFTarget(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}
