package httpmsg

import (
	"bytes"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	"github.com/violet-web/httpmsg/kv"
	"github.com/violet-web/httpmsg/status"
	"golang.org/x/net/http/httpguts"
)

// Header is the common part of request and response heads: the field collection,
// the trailers, and everything the framing scan derives from them.
type Header struct {
	// Fields are the header fields in their wire order, repeated keys included.
	// Lookups are case-insensitive.
	Fields *kv.Storage
	// Trailers are fields arriving past a chunked body. Stays empty until the
	// message completes.
	Trailers *kv.Storage

	framing         Framing
	contentLength   int
	contentType     string
	contentEncoding string
	keepAlive       bool
}

func newHeader() Header {
	return Header{
		Fields:   kv.New(),
		Trailers: kv.New(),
		// every message is expected to keep the connection alive unless proven
		// otherwise by the protocol version or the framing scan
		keepAlive: true,
	}
}

// Framing tells how the end of the body is determined. Meaningful once the header
// section is complete.
func (h *Header) Framing() Framing {
	return h.framing
}

// ContentLength returns the accepted Content-Length value. Zero both when the field
// was absent and when it literally announced zero; Framing disambiguates.
func (h *Header) ContentLength() int {
	return h.contentLength
}

// ContentType returns the Content-Type field value, verbatim.
func (h *Header) ContentType() string {
	return h.contentType
}

// ContentEncoding returns the Content-Encoding field value, verbatim.
func (h *Header) ContentEncoding() string {
	return h.contentEncoding
}

// KeepAlive reports whether the connection may be reused for another message once
// this one completes.
func (h *Header) KeepAlive() bool {
	return h.keepAlive
}

// addField consumes a single header field line, CRLF already chomped.
func (h *Header) addField(line []byte) error {
	if line[0] == ' ' || line[0] == '\t' {
		// obs-fold: the line continues the value of the preceding field
		value := uf.B2S(trimOWS(line))
		if !httpguts.ValidHeaderFieldValue(value) || !h.Fields.FoldLast(value) {
			return status.ErrBadHeaderLine
		}

		return nil
	}

	key, value, ok := splitField(line)
	if !ok {
		return status.ErrBadHeaderLine
	}

	h.Fields.Add(key, value)

	return nil
}

// addTrailer is addField's counterpart for the trailer section.
func (h *Header) addTrailer(line []byte) error {
	if line[0] == ' ' || line[0] == '\t' {
		value := uf.B2S(trimOWS(line))
		if !httpguts.ValidHeaderFieldValue(value) || !h.Trailers.FoldLast(value) {
			return status.ErrBadHeaderLine
		}

		return nil
	}

	key, value, ok := splitField(line)
	if !ok {
		return status.ErrBadHeaderLine
	}

	h.Trailers.Add(key, value)

	return nil
}

// resolveFraming performs the single in-order scan over the accumulated fields once
// the blank line arrives, settling the framing mode, the content length, content
// metadata and the keep-alive flag.
func (h *Header) resolveFraming() error {
	for _, pair := range h.Fields.Unwrap() {
		switch {
		case strcomp.EqualFold(pair.Key, "content-length"):
			if err := h.acceptContentLength(pair.Value); err != nil {
				return err
			}
		case strcomp.EqualFold(pair.Key, "transfer-encoding"):
			if httpguts.HeaderValuesContainsToken([]string{pair.Value}, "chunked") {
				h.framing = FramingChunked
			}
		case strcomp.EqualFold(pair.Key, "content-type"):
			h.contentType = pair.Value
		case strcomp.EqualFold(pair.Key, "content-encoding"):
			h.contentEncoding = pair.Value
		case strcomp.EqualFold(pair.Key, "connection"):
			if httpguts.HeaderValuesContainsToken([]string{pair.Value}, "keep-alive") {
				h.keepAlive = true
			} else if httpguts.HeaderValuesContainsToken([]string{pair.Value}, "close") {
				h.keepAlive = false
			}
		}
	}

	if h.framing == FramingClose {
		// nothing but the end of the connection separates this message from the
		// next one, so there is no next one
		h.keepAlive = false
	}

	return nil
}

// acceptContentLength applies the repetition policy: chunked framing beats any
// length, the first accepted value wins, and a conflicting repetition poisons the
// whole message. Malformed values are rejected even where the policy would ignore
// them.
func (h *Header) acceptContentLength(value string) error {
	length, err := parseContentLength(value)
	if err != nil {
		return err
	}

	switch h.framing {
	case FramingChunked:
		// Transfer-Encoding has the priority, the length is ignored
	case FramingLength:
		if length != h.contentLength {
			return status.ErrBadContentLength
		}
	default:
		h.framing = FramingLength
		h.contentLength = length
	}

	return nil
}

// 18 digits always fit into a 64-bit int, anything beyond is rejected without
// looking.
const maxContentLengthDigits = 18

func parseContentLength(value string) (int, error) {
	if len(value) == 0 || len(value) > maxContentLengthDigits {
		return 0, status.ErrBadContentLength
	}

	var length int
	for i := 0; i < len(value); i++ {
		char := value[i]
		if char < '0' || char > '9' {
			return 0, status.ErrBadContentLength
		}

		length = length*10 + int(char-'0')
	}

	return length, nil
}

// splitField cuts a header field line into its validated key and value. The key is
// taken as-is, so whitespace smuggled before the colon fails the validation. The
// value is stripped of optional whitespace on both sides.
func splitField(line []byte) (key, value string, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return "", "", false
	}

	key = uf.B2S(line[:colon])
	value = uf.B2S(trimOWS(line[colon+1:]))
	if !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
		return "", "", false
	}

	return key, value, true
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

func trimTrailingWS(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

func cutSpace(b []byte) (before, after []byte, found bool) {
	sp := bytes.IndexByte(b, ' ')
	if sp == -1 {
		return b, nil, false
	}

	return b[:sp], b[sp+1:], true
}
