// Package codec ships decoders for the common content codings. A Registry
// instantiates them lazily per token, so a message parser pays only for the
// codings it actually meets.
package codec

import (
	"io"
)

// Decoder decompresses a single coding. Reset rebinds it to a new source,
// letting one instance serve any number of messages in sequence.
type Decoder interface {
	io.Reader
	Reset(src io.Reader) error
}

// Codec couples a coding token with a decoder factory.
type Codec interface {
	// Token returns the coding token associated with the codec itself.
	Token() string
	New() Decoder
}

var _ Codec = baseCodec{}

type instantiator = func() Decoder

type baseCodec struct {
	token   string
	newInst instantiator
}

func newBaseCodec(token string, newInst instantiator) baseCodec {
	return baseCodec{
		token:   token,
		newInst: newInst,
	}
}

func (b baseCodec) Token() string {
	return b.token
}

func (b baseCodec) New() Decoder {
	return b.newInst()
}
