package mochizuki

import (
	"bytes"
	"unicode/utf8"
)

var lineTerminator = []byte("\r\n")

// LineFramer turns an arbitrarily-chunked byte stream into complete protocol
// lines. Bytes after the last CRLF are buffered until the rest of the line
// arrives. Each framer is owned by a single session and is not safe for
// concurrent use.
type LineFramer struct {
	buf []byte
}

// Feed appends a chunk to the internal buffer and returns every
// fully-terminated line, in arrival order, with the CRLF removed. Segments
// that do not decode as UTF-8 are discarded and counted in dropped; a bad
// segment never affects the framing of the lines after it.
//
// No line length limit is enforced.
func (f *LineFramer) Feed(chunk []byte) (lines []string, dropped int) {
	f.buf = append(f.buf, chunk...)
	for {
		i := bytes.Index(f.buf, lineTerminator)
		if i < 0 {
			return lines, dropped
		}
		seg := f.buf[:i]
		f.buf = f.buf[i+len(lineTerminator):]
		if !utf8.Valid(seg) {
			dropped++
			continue
		}
		lines = append(lines, string(seg))
	}
}

// Pending returns the number of buffered bytes that do not yet form a
// complete line.
func (f *LineFramer) Pending() int {
	return len(f.buf)
}
