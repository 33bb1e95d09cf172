package probe

import (
	"bytes"
	"crypto/sha1"
	"io"
	"os"

	yzip "github.com/yeka/zip"
	"golang.org/x/crypto/pbkdf2"

	"archivecrack/internal/errs"
)

// ZipTarget is the shared, immutable view of a ZIP file built once by the
// controller before workers are spawned. It determines whether entry 0 is
// AES- or ZipCrypto-encrypted and holds whichever backing store each mode
// needs: a read-only in-memory buffer for ZipCrypto (reused by every
// worker), or nothing at all for AES, where each worker opens its own
// buffered file handle instead.
type ZipTarget struct {
	path    string
	aes     bool
	aesInfo AesInfo
	// zipBytes is populated only for the ZipCrypto path, where per-attempt
	// cost is dominated by reading the entry rather than by I/O, so the
	// whole archive is loaded once and shared read-only across workers.
	zipBytes []byte
}

// OpenZipTarget inspects entry 0 of the ZIP at path and classifies its
// encryption. An unencrypted entry 0 is a fatal UnsupportedOrUnencrypted
// error, matching §4.6: "If the archive is not encrypted, report a fatal
// strategy error."
func OpenZipTarget(path string) (*ZipTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.Io, "read zip target", err)
	}

	info, err := parseZipEntryZero(data)
	if err != nil {
		return nil, err
	}
	if !info.encrypted {
		return nil, errs.New(errs.UnsupportedOrUnencrypted, "zip entry 0 is not encrypted")
	}

	if info.aes {
		return &ZipTarget{path: path, aes: true, aesInfo: info.aesInfo}, nil
	}
	return &ZipTarget{path: path, aes: false, zipBytes: data}, nil
}

// NewProber builds a per-worker Prober bound to this target.
func (t *ZipTarget) NewProber() (Prober, error) {
	if t.aes {
		f, err := os.Open(t.path)
		if err != nil {
			return nil, errs.Wrap(errs.Io, "open zip target", err)
		}
		return &zipProber{file: f, aes: true, aesInfo: t.aesInfo}, nil
	}
	return &zipProber{zipBytes: t.zipBytes, aes: false}, nil
}

// zipProber implements Prober for a single worker's ZIP attempts. A fresh
// yeka/zip reader is constructed on every Try call: the underlying library
// is not safe to reuse across repeated SetPassword/Open cycles on the same
// *zip.File, so each attempt gets its own reader over the shared backing
// store (a cheap re-parse of the central directory, not a re-read of
// file content).
type zipProber struct {
	aes     bool
	aesInfo AesInfo

	// AES path.
	file *os.File

	// ZipCrypto path.
	zipBytes []byte
}

func (p *zipProber) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

func (p *zipProber) Try(password string) (Verdict, error) {
	if p.aes {
		if !aesFastAccept(password, p.aesInfo) {
			return Mismatch, nil
		}
		stat, err := p.file.Stat()
		if err != nil {
			return Mismatch, nil
		}
		return p.confirm(password, p.file, stat.Size())
	}

	return p.confirm(password, bytes.NewReader(p.zipBytes), int64(len(p.zipBytes)))
}

// aesFastAccept performs the §4.6 PBKDF2 fast reject: derive
// DerivedKeyLength bytes via PBKDF2-HMAC-SHA1(password, salt, 1000
// iterations) and compare the last 2 bytes against the stored verifier.
// Returning false here means a full decrypt would also fail; it never
// produces a false negative.
func aesFastAccept(password string, info AesInfo) bool {
	derived := pbkdf2.Key([]byte(password), info.Salt, 1000, info.DerivedKeyLength, sha1.New)
	got := derived[len(derived)-2:]
	return got[0] == info.Verifier[0] && got[1] == info.Verifier[1]
}

// zipReaderAt is the minimal interface yeka/zip needs: ReaderAt plus a
// known size.
type zipReaderAt interface {
	io.ReaderAt
}

func (p *zipProber) confirm(password string, r zipReaderAt, size int64) (Verdict, error) {
	zr, err := yzip.NewReader(r, size)
	if err != nil {
		return Mismatch, nil
	}
	if len(zr.File) == 0 {
		return Mismatch, nil
	}
	f := zr.File[0]
	f.SetPassword(password)

	rc, err := f.Open()
	if err != nil {
		return Mismatch, nil
	}
	_, copyErr := io.Copy(io.Discard, rc)
	closeErr := rc.Close()
	if copyErr != nil || closeErr != nil {
		return Mismatch, nil
	}
	return Match, nil
}
