// Package httpmsg implements incremental parsing of HTTP/1.x messages. The parser
// is symmetric: requests and responses are driven by the same machinery, which makes
// it serve clients, servers and proxies alike. Bytes are fed in chunks of whatever
// size the connection produced, and everything fed lands in a single append-only
// log, so header fields and the body are zero-copy views into it.
//
// One parser handles exactly one message. Whatever is left unconsumed after the
// message completes is returned back and belongs to the next one, which is how
// pipelining works.
package httpmsg

// State is the lifecycle stage of a message parser.
type State uint8

const (
	// StateStart: waiting for the start line. Bare CRLFs arriving before it are
	// tolerated and skipped.
	StateStart State = iota + 1
	// StateHeaders: consuming header field lines until the blank one.
	StateHeaders
	// StateBody: consuming the body according to the resolved framing.
	StateBody
	// StateEnd: the message is complete and the parser became a no-op.
	StateEnd
	// StateIncomplete: the stream ended or failed mid-message. Terminal as well.
	StateIncomplete
)

// Framing tells how the end of a message body is determined.
type Framing uint8

const (
	// FramingClose: no length signal was found in the header section. The body, if
	// the message may carry one at all, lasts until the connection closes.
	FramingClose Framing = iota
	// FramingLength: Content-Length announces the exact body length.
	FramingLength
	// FramingChunked: Transfer-Encoding carries the chunked token.
	FramingChunked
)
