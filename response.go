package httpmsg

import (
	"github.com/indigo-web/utils/uf"
	"github.com/violet-web/httpmsg/config"
	"github.com/violet-web/httpmsg/proto"
	"github.com/violet-web/httpmsg/status"
)

// ResponseHeader is the head of a response: the status line triplet plus everything
// Header carries. It also knows the request it answers, as the body-presence rules
// depend on the request method.
type ResponseHeader struct {
	Header
	// Proto is the protocol version from the status line.
	Proto proto.Proto
	// Code is the numeric status code.
	Code status.Code
	// Status is the reason phrase, verbatim. May contain spaces.
	Status status.Status

	request *RequestHeader
}

// NewResponseHeader returns a head bound to the request it is answering. A nil
// request is allowed; the method-based body rules are simply skipped then.
func NewResponseHeader(request *RequestHeader) *ResponseHeader {
	return &ResponseHeader{Header: newHeader(), request: request}
}

func (r *ResponseHeader) base() *Header {
	return &r.Header
}

// parseStartLine consumes the status line: protocol version, the numeric code and
// the reason phrase, which is the whole remainder and may contain spaces.
func (r *ResponseHeader) parseStartLine(line []byte) error {
	line = trimTrailingWS(line)

	protoToken, rest, ok := cutSpace(line)
	if !ok || len(protoToken) == 0 {
		return status.ErrBadStartLine
	}

	codeToken, phrase, ok := cutSpace(rest)
	if !ok {
		return status.ErrBadStartLine
	}

	code, err := parseCode(codeToken)
	if err != nil {
		return err
	}

	r.Proto = proto.FromBytes(protoToken)
	r.Code = code
	r.Status = status.Status(uf.B2S(phrase))
	if r.Proto == proto.HTTP10 {
		r.keepAlive = false
	}

	return nil
}

// hasBody reports whether a body follows the head. Responses to HEAD and CONNECT
// never carry one, nor do 1xx, 204 and 304 responses. Past those rules chunked
// framing always implies a body, a fixed length implies one when positive, and no
// signal at all means the body lasts until the stream closes.
func (r *ResponseHeader) hasBody() bool {
	if r.request != nil && r.request.Method.BodylessResponse() {
		return false
	}

	if !status.BodyAllowed(r.Code) {
		return false
	}

	switch r.framing {
	case FramingChunked:
		return true
	case FramingLength:
		return r.contentLength > 0
	default:
		return true
	}
}

// interim reports whether the head is a 1xx preamble the real response follows
// after. 101 is not among those: switching protocols terminates the exchange.
func (r *ResponseHeader) interim() bool {
	return status.Informational(r.Code) && r.Code != status.SwitchingProtocols
}

func parseCode(token []byte) (status.Code, error) {
	if len(token) == 0 {
		return 0, status.ErrBadStartLine
	}

	var code uint16
	for _, char := range token {
		if char < '0' || char > '9' {
			return 0, status.ErrBadStartLine
		}

		code = code*10 + uint16(char-'0')
		if code > 999 {
			return 0, status.ErrBadStartLine
		}
	}

	return status.Code(code), nil
}

// ResponseParser incrementally parses a single response off a stream of chunks,
// transparently absorbing interim 1xx heads along the way.
//
// A parser serves exactly one exchange and is not safe for concurrent use.
type ResponseParser struct {
	parser
	response *ResponseHeader
	interim  []*ResponseHeader
	request  *RequestHeader
}

// NewResponseParser returns a parser in the Start state. The request head the
// response answers drives the body-presence rules and may be nil when unknown. A
// nil cfg means defaults.
func NewResponseParser(cfg *config.Config, request *RequestHeader) *ResponseParser {
	p := &ResponseParser{response: NewResponseHeader(request), request: request}
	p.parser = newParser(cfg, p.response)

	return p
}

// Feed passes the chunk down to the message machine. Whenever an interim head
// completes, it is archived and the machine restarts on the spot, so a single
// chunk may carry a whole chain of 100 Continue heads and still end inside the
// actual response.
func (p *ResponseParser) Feed(data []byte) (rest []byte, err error) {
	rest, err = p.parser.Feed(data)
	if err != nil {
		return nil, err
	}

	for p.parser.Complete() && p.response.interim() {
		p.interim = append(p.interim, p.response)
		p.response = NewResponseHeader(p.request)
		p.parser.restart(p.response)

		rest, err = p.parser.Feed(rest)
		if err != nil {
			return nil, err
		}
	}

	return rest, nil
}

// Header exposes the response head. Interim 1xx heads never show up here: they are
// archived aside and accessible via Interim.
func (p *ResponseParser) Header() *ResponseHeader {
	return p.response
}

// Interim returns the archived 1xx heads that preceded the response, in their
// arrival order.
func (p *ResponseParser) Interim() []*ResponseHeader {
	return p.interim
}
