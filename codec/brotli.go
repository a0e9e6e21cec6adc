package codec

import (
	"io"

	"github.com/andybalholm/brotli"
)

func NewBrotli() Codec {
	return newBaseCodec("br", func() Decoder {
		return &brotliDecoder{reader: brotli.NewReader(nil)}
	})
}

type brotliDecoder struct {
	reader *brotli.Reader
}

func (b *brotliDecoder) Read(p []byte) (n int, err error) {
	return b.reader.Read(p)
}

func (b *brotliDecoder) Reset(src io.Reader) error {
	return b.reader.Reset(src)
}
