package candidate

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"archivecrack/internal/errs"
)

// Dictionary streams the lines of a file in file order, stripping one
// trailing LF and one optional preceding CR per line. Reading errors below
// record granularity end the stream silently rather than surfacing a fatal
// error: the cracker treats this as exhaustion of the worker's shard.
type Dictionary struct {
	f     *os.File
	r     *bufio.Reader
	total uint64
}

// CountLines scans the file at path and counts lines the same way the
// Dictionary stream will emit them: one per LF, plus one more if the file
// is non-empty and does not end with a trailing LF.
func CountLines(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errs.Wrap(errs.Io, "open dictionary", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	var count uint64
	var sawAny bool
	var endedWithNewline bool
	for {
		chunk, err := r.ReadSlice('\n')
		if len(chunk) > 0 {
			sawAny = true
		}
		if err == nil {
			count++
			endedWithNewline = true
			continue
		}
		if err == bufio.ErrBufferFull {
			// Line longer than the buffer: keep scanning for its newline.
			endedWithNewline = false
			for {
				chunk, err = r.ReadSlice('\n')
				if err == nil {
					count++
					endedWithNewline = true
					break
				}
				if err == bufio.ErrBufferFull {
					continue
				}
				break
			}
			if err == io.EOF {
				break
			}
			continue
		}
		if err == io.EOF {
			endedWithNewline = len(chunk) == 0
			break
		}
		return 0, errs.Wrap(errs.Io, "read dictionary", err)
	}
	if sawAny && !endedWithNewline {
		count++
	}
	return count, nil
}

// NewDictionary opens path and precomputes the total line count.
func NewDictionary(path string) (*Dictionary, error) {
	total, err := CountLines(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Io, "open dictionary", err)
	}
	return &Dictionary{
		f:     f,
		r:     bufio.NewReaderSize(f, 64*1024),
		total: total,
	}, nil
}

// Total implements Stream.
func (d *Dictionary) Total() uint64 { return d.total }

// Next implements Stream, stripping one trailing LF and one optional
// preceding CR. A read error ends the stream (returns false) without
// surfacing an error to the caller.
func (d *Dictionary) Next() (string, bool) {
	line, err := d.r.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return "", false
	}
	if err != nil && err != io.EOF {
		return "", false
	}
	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line), true
}

// Close releases the underlying file handle.
func (d *Dictionary) Close() error {
	if d.f == nil {
		return nil
	}
	return d.f.Close()
}
