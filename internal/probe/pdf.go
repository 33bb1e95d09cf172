package probe

import (
	"bytes"
	"os"

	pdflib "seehuhn.de/go/pdf"

	"archivecrack/internal/errs"
)

// PDFTarget holds the raw bytes of a PDF file, read once and shared by every
// worker's prober. There is no separable fast-reject for PDF encryption either: the
// password feeds directly into the standard security handler's key
// derivation, and the only reliable confirmation is successfully opening
// the document and reading its cross-reference structure.
type PDFTarget struct {
	data []byte
}

func OpenPDFTarget(path string) (*PDFTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.Io, "read pdf target", err)
	}
	return &PDFTarget{data: data}, nil
}

func (t *PDFTarget) NewProber() (Prober, error) {
	return &pdfProber{data: t.data}, nil
}

type pdfProber struct {
	data []byte
}

func (p *pdfProber) Close() error { return nil }

// Try attempts to open the document with password as both user and owner
// password candidate, then reads the trailer dictionary to confirm the
// security handler actually accepted the key (rather than merely not
// erroring immediately).
func (p *pdfProber) Try(password string) (Verdict, error) {
	r := bytes.NewReader(p.data)
	doc, err := pdflib.NewReader(r, int64(len(p.data)), &pdflib.ReaderOptions{
		Password: password,
	})
	if err != nil {
		return Mismatch, nil
	}
	if doc.Trailer == nil {
		return Mismatch, nil
	}
	return Match, nil
}
