package httpmsg

import (
	"github.com/violet-web/httpmsg/config"
	"github.com/violet-web/httpmsg/internal/arena"
	"github.com/violet-web/httpmsg/status"
)

// header is what the machine drives: request and response heads share everything
// but the start line grammar and the body-presence rules.
type header interface {
	base() *Header
	parseStartLine(line []byte) error
	hasBody() bool
}

// bodyReader consumes body bytes according to one framing strategy. It reports done
// once the body, trailers included where applicable, has been fully consumed. The
// strategy is selected once per message and discarded on completion.
type bodyReader interface {
	feed(p *parser, data []byte) (done bool, rest []byte, err error)
}

// span marks a body byte range within the log.
type span struct {
	from, to int
}

// parser is the message state machine both specializations share. It consumes
// chunks, returns the unconsumed leftover and never retains input: everything
// consumed is copied into the log.
type parser struct {
	cfg *config.Config
	hdr header
	log arena.Arena

	state    State
	reader   bodyReader
	spans    []span
	bodySize int
	stitched []byte
	failure  error
}

func newParser(cfg *config.Config, hdr header) parser {
	if cfg == nil {
		cfg = config.Default()
	}

	return parser{
		cfg:   cfg,
		hdr:   hdr,
		log:   arena.New(cfg.Message.BufferPrealloc),
		state: StateStart,
	}
}

// Feed consumes the next chunk of the stream. The returned leftover is non-empty
// only when the message completed mid-chunk: whatever follows the message belongs
// to the next one. A completed parser passes input through untouched, and a failed
// one keeps returning the very same error no matter what is fed.
func (p *parser) Feed(data []byte) (rest []byte, err error) {
	if p.failure != nil {
		return nil, p.failure
	}

	if p.state == StateStart && len(data) > 0 {
		data, err = p.feedStart(data)
		if err != nil {
			return nil, p.fail(err)
		}
	}

	if p.state == StateHeaders && len(data) > 0 {
		data, err = p.feedFields(data)
		if err != nil {
			return nil, p.fail(err)
		}
	}

	if p.state == StateBody && len(data) > 0 {
		data, err = p.feedBody(data)
		if err != nil {
			return nil, p.fail(err)
		}
	}

	return data, nil
}

// Close marks the end of the stream. A parser still waiting for a start line
// completes as an empty stream, a close-delimited body gets finalized, and a
// completed parser stays completed. Anything else is a premature close: the parser
// turns Incomplete, returns status.ErrPrematureClose and keeps doing so.
func (p *parser) Close() error {
	if p.failure != nil {
		return p.failure
	}

	switch {
	case p.state == StateStart:
		p.state = StateEnd
	case p.state == StateBody && p.reader == nil:
		p.state = StateEnd
	case p.state == StateEnd:
		// nothing to finalize
	default:
		p.state = StateIncomplete
		p.failure = status.ErrPrematureClose
		return p.failure
	}

	return nil
}

// State returns the lifecycle stage the parser is in.
func (p *parser) State() State {
	return p.state
}

// HeadersComplete reports whether the whole header section has been consumed, i.e.
// the start line, the fields and the framing are all settled.
func (p *parser) HeadersComplete() bool {
	return p.state == StateBody || p.state == StateEnd
}

// Complete reports whether the whole message has been consumed.
func (p *parser) Complete() bool {
	return p.state == StateEnd
}

// Body returns the decoded body consumed so far. Fixed-length and close-delimited
// bodies are a single zero-copy view into the log; a chunked one is stitched from
// its chunk spans on the first call and cached.
func (p *parser) Body() []byte {
	switch len(p.spans) {
	case 0:
		return nil
	case 1:
		s := p.spans[0]
		return p.log.Slice(s.from, s.to)
	}

	if len(p.stitched) != p.bodySize {
		p.stitched = make([]byte, 0, p.bodySize)
		for _, s := range p.spans {
			p.stitched = append(p.stitched, p.log.Slice(s.from, s.to)...)
		}
	}

	return p.stitched
}

func (p *parser) feedStart(data []byte) ([]byte, error) {
	for len(data) > 0 {
		line, rest, more, err := p.fetchLine(data, p.cfg.Message.MaxStartLineLength)
		if err != nil {
			return nil, err
		}

		if more {
			return nil, nil
		}

		data = rest
		if len(line) == 0 {
			// a bare CRLF ahead of the start line; skipped
			continue
		}

		if err := p.hdr.parseStartLine(line); err != nil {
			return nil, err
		}

		p.state = StateHeaders
		break
	}

	return data, nil
}

func (p *parser) feedFields(data []byte) ([]byte, error) {
	base := p.hdr.base()

	for len(data) > 0 {
		line, rest, more, err := p.fetchLine(data, p.cfg.Message.MaxHeaderLineLength)
		if err != nil {
			return nil, err
		}

		if more {
			return nil, nil
		}

		data = rest
		if len(line) == 0 {
			// the blank line: the header section is over
			if err := base.resolveFraming(); err != nil {
				return nil, err
			}

			return data, p.enterBody()
		}

		if err := base.addField(line); err != nil {
			return nil, err
		}

		if base.Fields.Len() > p.cfg.Message.MaxHeaders {
			return nil, status.ErrTooManyHeaders
		}
	}

	return data, nil
}

// enterBody installs the body strategy the resolved framing dictates, or completes
// the message on the spot when no body is to follow.
func (p *parser) enterBody() error {
	if !p.hdr.hasBody() {
		p.state = StateEnd
		return nil
	}

	base := p.hdr.base()
	switch base.framing {
	case FramingChunked:
		p.reader = newChunkedReader()
		p.state = StateBody
	case FramingLength:
		if base.contentLength > p.cfg.Body.MaxLength {
			return status.ErrBodyTooLarge
		}

		if base.contentLength == 0 {
			p.state = StateEnd
			return nil
		}

		p.reader = &lengthReader{remaining: base.contentLength}
		p.state = StateBody
	default:
		// close-delimited: no reader, everything until the end of the stream is
		// the body
		p.state = StateBody
	}

	return nil
}

func (p *parser) feedBody(data []byte) ([]byte, error) {
	if p.reader == nil {
		from := p.log.Len()
		if err := p.recordBody(from, len(data)); err != nil {
			return nil, err
		}

		p.log.Append(data)
		return nil, nil
	}

	done, rest, err := p.reader.feed(p, data)
	if err != nil {
		return nil, err
	}

	if done {
		p.reader = nil
		p.state = StateEnd
	}

	return rest, nil
}

// fetchLine pulls the next line off the log, CRLF chomped. more reports that the
// line hasn't arrived in full yet; the limit is enforced on both the pending tail
// and the completed line.
func (p *parser) fetchLine(data []byte, limit int) (line, rest []byte, more bool, err error) {
	line, rest = p.log.FeedLine(data)
	if line == nil {
		if len(p.log.Pending()) > limit {
			return nil, nil, false, status.ErrTooLongLine
		}

		return nil, nil, true, nil
	}

	line = line[:len(line)-2]
	if len(line) > limit {
		return nil, nil, false, status.ErrTooLongLine
	}

	return line, rest, false, nil
}

// recordBody extends the latest body span or opens a new one, guarding the overall
// body size limit.
func (p *parser) recordBody(from, n int) error {
	if n == 0 {
		return nil
	}

	if p.bodySize+n > p.cfg.Body.MaxLength {
		return status.ErrBodyTooLarge
	}

	p.bodySize += n
	if last := len(p.spans) - 1; last >= 0 && p.spans[last].to == from {
		p.spans[last].to = from + n
		return nil
	}

	p.spans = append(p.spans, span{from: from, to: from + n})

	return nil
}

func (p *parser) fail(err error) error {
	p.state = StateIncomplete
	p.failure = err

	return err
}

// restart rewinds the machine to parse another message head. The log is kept as is:
// views into already archived heads must stay valid.
func (p *parser) restart(hdr header) {
	p.hdr = hdr
	p.state = StateStart
	p.reader = nil
	p.spans = nil
	p.bodySize = 0
	p.stitched = nil
}
