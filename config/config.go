package config

type (
	Message struct {
		// BufferPrealloc is the initial capacity of the log accumulating the raw message.
		BufferPrealloc int
		// MaxStartLineLength limits the length of the start line, CRLF excluded.
		MaxStartLineLength int
		// MaxHeaderLineLength limits the length of a single header field line, CRLF
		// excluded. Folded continuations are limited each on their own, trailer field
		// lines obey the same limit.
		MaxHeaderLineLength int
		// MaxHeaders limits the number of header fields a single message may carry.
		// Folded continuations don't add up. Trailers are counted apart, yet against
		// the same limit.
		MaxHeaders int
	}

	Body struct {
		// MaxLength limits the length of a message body in bytes. For chunked messages
		// the limit applies to the decoded data, chunk framing excluded.
		MaxLength int
		// DecodedBufferPrealloc is the initial capacity of the buffer, used to store a
		// body passed through a content decoder.
		DecodedBufferPrealloc int
	}
)

// Config holds settings used across the parser, mainly restrictions and pre-allocations.
//
// Always modify defaults (returned via Default()) instead of initializing the config
// manually, as zero-valued limits reject just about any message.
type Config struct {
	Message Message
	Body    Body
}

// Default returns the default config. The limits are initially well-balanced and
// pretty permitting.
func Default() *Config {
	return &Config{
		Message: Message{
			BufferPrealloc:     2 * 1024,
			MaxStartLineLength: 16 * 1024, // tolerant enough, most web entities limit it by 4-8kb
			// there also might be extremely long cookies
			MaxHeaderLineLength: 16 * 1024,
			MaxHeaders:          100,
		},
		Body: Body{
			MaxLength:             512 * 1024 * 1024, // 512 megabytes
			DecodedBufferPrealloc: 1024,
		},
	}
}
