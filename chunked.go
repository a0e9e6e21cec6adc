package httpmsg

import (
	"bytes"

	"github.com/violet-web/httpmsg/internal/hexconv"
	"github.com/violet-web/httpmsg/status"
)

type chunkedState uint8

const (
	eChunkSize chunkedState = iota + 1
	eChunkData
	eChunkDataEnd
	eTrailer
)

// maxChunkSizeDigits bounds the hexadecimal chunk size at 8 digits, which tops out
// at 4GiB-1 per chunk. Longer sizes are junk in practice.
const maxChunkSizeDigits = 8

// chunkedReader consumes a chunked transfer coding stream: a sequence of
// size-prefixed chunks followed by a zero chunk and an optional trailer section.
// Chunk data is recorded into the log as body spans; the framing around it is
// consumed and discarded.
type chunkedReader struct {
	state     chunkedState
	remaining int
}

func newChunkedReader() *chunkedReader {
	return &chunkedReader{state: eChunkSize}
}

func (r *chunkedReader) feed(p *parser, data []byte) (done bool, rest []byte, err error) {
	for len(data) > 0 {
		switch r.state {
		case eChunkSize:
			line, rest, more, err := p.fetchLine(data, p.cfg.Message.MaxHeaderLineLength)
			if err != nil {
				return false, nil, err
			}
			if more {
				return false, nil, nil
			}

			size, err := parseChunkSize(line)
			if err != nil {
				return false, nil, err
			}

			if size == 0 {
				r.state = eTrailer
			} else {
				r.remaining = size
				r.state = eChunkData
			}

			data = rest
		case eChunkData:
			from := p.log.Len()
			left, rest := p.log.FeedLength(data, r.remaining)
			if err = p.recordBody(from, p.log.Len()-from); err != nil {
				return false, nil, err
			}

			r.remaining = left
			if left == 0 {
				r.state = eChunkDataEnd
			}

			data = rest
		case eChunkDataEnd:
			line, rest, more, err := p.fetchLine(data, p.cfg.Message.MaxHeaderLineLength)
			if err != nil {
				return false, nil, err
			}
			if more {
				return false, nil, nil
			}

			if len(line) != 0 {
				return false, nil, status.ErrBadChunk
			}

			r.state = eChunkSize
			data = rest
		case eTrailer:
			line, rest, more, err := p.fetchLine(data, p.cfg.Message.MaxHeaderLineLength)
			if err != nil {
				return false, nil, err
			}
			if more {
				return false, nil, nil
			}

			if len(line) == 0 {
				return true, rest, nil
			}

			if err = p.hdr.base().addTrailer(line); err != nil {
				return false, nil, err
			}

			if p.hdr.base().Trailers.Len() > p.cfg.Message.MaxHeaders {
				return false, nil, status.ErrTooManyHeaders
			}

			data = rest
		}
	}

	return false, nil, nil
}

// parseChunkSize parses the hexadecimal size token of a chunk line. Chunk
// extensions past a semicolon are tolerated and discarded.
func parseChunkSize(line []byte) (int, error) {
	if idx := bytes.IndexByte(line, ';'); idx != -1 {
		line = line[:idx]
	}

	line = trimOWS(line)
	if len(line) == 0 || len(line) > maxChunkSizeDigits {
		return 0, status.ErrBadChunk
	}

	var size int
	for _, char := range line {
		value, ok := hexconv.Parse(char)
		if !ok {
			return 0, status.ErrBadChunk
		}

		size = size<<4 | int(value)
	}

	return size, nil
}
