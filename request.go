package httpmsg

import (
	"github.com/indigo-web/utils/uf"
	"github.com/violet-web/httpmsg/config"
	"github.com/violet-web/httpmsg/method"
	"github.com/violet-web/httpmsg/proto"
	"github.com/violet-web/httpmsg/status"
)

// RequestHeader is the head of a request: the request line triplet plus everything
// Header carries.
type RequestHeader struct {
	Header
	// Method is the recognized request method. Extension methods are tolerated and
	// reported as method.Unknown.
	Method method.Method
	// Target is the request target, verbatim.
	Target string
	// Proto is the protocol version from the request line. Versions other than 1.0
	// and 1.1 come through as proto.Unknown and obey 1.1 rules.
	Proto proto.Proto
}

func NewRequestHeader() *RequestHeader {
	return &RequestHeader{Header: newHeader()}
}

func (r *RequestHeader) base() *Header {
	return &r.Header
}

// parseStartLine consumes the request line: method, target and protocol version
// separated by single spaces. Trailing whitespace is forgiven, a missing component
// is not.
func (r *RequestHeader) parseStartLine(line []byte) error {
	line = trimTrailingWS(line)

	methodToken, rest, ok := cutSpace(line)
	if !ok || len(methodToken) == 0 {
		return status.ErrBadStartLine
	}

	target, protoToken, ok := cutSpace(rest)
	if !ok || len(target) == 0 || len(protoToken) == 0 {
		return status.ErrBadStartLine
	}

	r.Method = method.Parse(uf.B2S(methodToken))
	r.Target = uf.B2S(target)
	r.Proto = proto.FromBytes(protoToken)
	if r.Proto == proto.HTTP10 {
		r.keepAlive = false
	}

	return nil
}

// hasBody reports whether a body follows the head. For requests only an explicit
// length signal implies one: with no signal at all the request ends right at the
// blank line.
func (r *RequestHeader) hasBody() bool {
	return r.framing != FramingClose
}

// RequestParser incrementally parses a single request off a stream of chunks.
//
// A parser serves exactly one message and is not safe for concurrent use; a
// connection loop constructs the next one once the current message completes.
type RequestParser struct {
	parser
	request *RequestHeader
}

// NewRequestParser returns a parser in the Start state. A nil cfg means defaults.
func NewRequestParser(cfg *config.Config) *RequestParser {
	p := &RequestParser{request: NewRequestHeader()}
	p.parser = newParser(cfg, p.request)

	return p
}

// Header exposes the request head. The start line triplet and the framing are
// settled once HeadersComplete reports true.
func (p *RequestParser) Header() *RequestHeader {
	return p.request
}
