package probe

import (
	"github.com/gabriel-vasile/mimetype"

	"archivecrack/internal/errs"
)

// Sniff detects the target's format from its magic bytes, mirroring the
// original implementation's use of a content-type sniffing library rather
// than trusting the file extension.
func Sniff(path string) (Format, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Unknown, errs.Wrap(errs.Io, "sniff target", err)
	}

	for m := mt; m != nil; m = m.Parent() {
		switch m.String() {
		case "application/zip":
			return FormatZip, nil
		case "application/vnd.rar", "application/x-rar-compressed":
			return FormatRar, nil
		case "application/x-7z-compressed":
			return FormatSevenZip, nil
		case "application/pdf":
			return FormatPDF, nil
		}
	}
	return Unknown, nil
}
