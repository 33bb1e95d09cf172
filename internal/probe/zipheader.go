package probe

import (
	"encoding/binary"

	"archivecrack/internal/errs"
)

// zipEntryInfo describes how entry 0 of a ZIP archive is encrypted, parsed
// directly from the central directory and local file header rather than
// through a higher-level ZIP library, so the AES fast-reject handshake data
// (salt, password-verification bytes, key length) can be extracted without
// touching ciphertext.
type zipEntryInfo struct {
	encrypted bool
	aes       bool
	aesInfo   AesInfo
}

// AesInfo is the ZIP AES handshake data described in §3: key length, the
// 2-byte password-verification value, the salt, and the derived key length
// PBKDF2 must produce.
type AesInfo struct {
	AESKeyBits        int
	Verifier          [2]byte
	Salt              []byte
	DerivedKeyLength  int
}

const (
	sigEOCD          = 0x06054b50
	sigCentralDir    = 0x02014b50
	sigLocalHeader   = 0x04034b50
	extraIDAES       = 0x9901
	methodAES        = 99
)

// parseZipEntryZero scans zipBytes and returns encryption info for entry 0
// (the first entry in the central directory, in on-disk order). If the
// entry is not encrypted, encrypted is false and no error is returned: the
// caller turns that into a Fatal(UnsupportedOrUnencrypted).
func parseZipEntryZero(zipBytes []byte) (*zipEntryInfo, error) {
	if len(zipBytes) < 22 {
		return nil, errs.New(errs.MalformedArchive, "zip file too small")
	}

	eocd := findEOCD(zipBytes)
	if eocd == -1 {
		return nil, errs.New(errs.MalformedArchive, "end of central directory not found")
	}

	numEntries := binary.LittleEndian.Uint16(zipBytes[eocd+10:])
	cdOffset := binary.LittleEndian.Uint32(zipBytes[eocd+16:])
	if numEntries == 0 {
		return nil, errs.New(errs.MalformedArchive, "zip has no entries")
	}
	if uint64(cdOffset) >= uint64(len(zipBytes)) {
		return nil, errs.New(errs.MalformedArchive, "invalid central directory offset")
	}

	offset := uint64(cdOffset)
	if offset+46 > uint64(len(zipBytes)) {
		return nil, errs.New(errs.MalformedArchive, "truncated central directory")
	}
	if binary.LittleEndian.Uint32(zipBytes[offset:]) != sigCentralDir {
		return nil, errs.New(errs.MalformedArchive, "invalid central directory entry")
	}

	flag := binary.LittleEndian.Uint16(zipBytes[offset+8:])
	method := binary.LittleEndian.Uint16(zipBytes[offset+10:])
	fileNameLen := binary.LittleEndian.Uint16(zipBytes[offset+28:])
	extraLen := binary.LittleEndian.Uint16(zipBytes[offset+30:])
	localHeaderOffset := binary.LittleEndian.Uint32(zipBytes[offset+42:])

	encrypted := flag&0x01 != 0
	if !encrypted {
		return &zipEntryInfo{encrypted: false}, nil
	}

	_ = fileNameLen
	_ = extraLen

	if method != methodAES {
		// Legacy ZipCrypto: no handshake data needed.
		return &zipEntryInfo{encrypted: true, aes: false}, nil
	}

	info, err := extractAESInfo(zipBytes, localHeaderOffset)
	if err != nil {
		return nil, err
	}
	return &zipEntryInfo{encrypted: true, aes: true, aesInfo: *info}, nil
}

// extractAESInfo reads the local file header at localHeaderOffset, locates
// the AES extra field (0x9901) to get the key strength, then reads the
// salt and 2-byte password-verification value from the start of the
// entry's data region.
func extractAESInfo(zipBytes []byte, localHeaderOffset uint32) (*AesInfo, error) {
	off := uint64(localHeaderOffset)
	if off+30 > uint64(len(zipBytes)) {
		return nil, errs.New(errs.MalformedArchive, "invalid local header offset")
	}
	if binary.LittleEndian.Uint32(zipBytes[off:]) != sigLocalHeader {
		return nil, errs.New(errs.MalformedArchive, "invalid local file header")
	}

	fileNameLen := uint64(binary.LittleEndian.Uint16(zipBytes[off+26:]))
	extraLen := uint64(binary.LittleEndian.Uint16(zipBytes[off+28:]))

	extraStart := off + 30 + fileNameLen
	extraEnd := extraStart + extraLen
	if extraEnd > uint64(len(zipBytes)) {
		return nil, errs.New(errs.MalformedArchive, "truncated local header extra field")
	}

	strength := 0
	p := extraStart
	for p+4 <= extraEnd {
		id := binary.LittleEndian.Uint16(zipBytes[p:])
		size := uint64(binary.LittleEndian.Uint16(zipBytes[p+2:]))
		dataStart := p + 4
		if dataStart+size > extraEnd {
			break
		}
		if id == extraIDAES && size >= 7 {
			strength = int(zipBytes[dataStart+4])
		}
		p = dataStart + size
	}
	if strength == 0 {
		return nil, errs.New(errs.MalformedArchive, "AES extra field not found")
	}

	keyBits := 0
	switch strength {
	case 1:
		keyBits = 128
	case 2:
		keyBits = 192
	case 3:
		keyBits = 256
	default:
		return nil, errs.New(errs.MalformedArchive, "unrecognized AES strength")
	}

	saltLen := keyBits / 16
	dataStart := extraStart + extraLen
	if dataStart+uint64(saltLen)+2 > uint64(len(zipBytes)) {
		return nil, errs.New(errs.MalformedArchive, "truncated AES entry data")
	}

	salt := make([]byte, saltLen)
	copy(salt, zipBytes[dataStart:dataStart+uint64(saltLen)])

	var verifier [2]byte
	copy(verifier[:], zipBytes[dataStart+uint64(saltLen):dataStart+uint64(saltLen)+2])

	return &AesInfo{
		AESKeyBits:       keyBits,
		Verifier:         verifier,
		Salt:             salt,
		DerivedKeyLength: 2*(keyBits/8) + 2,
	}, nil
}

// findEOCD searches backwards for the End Of Central Directory signature.
func findEOCD(zipBytes []byte) int {
	for i := len(zipBytes) - 22; i >= 0; i-- {
		if binary.LittleEndian.Uint32(zipBytes[i:]) == sigEOCD {
			return i
		}
	}
	return -1
}
