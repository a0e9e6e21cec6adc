package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func NewGZIP() Codec {
	return newBaseCodec("gzip", func() Decoder {
		return &gzipDecoder{reader: new(gzip.Reader)}
	})
}

type gzipDecoder struct {
	reader *gzip.Reader
}

func (g *gzipDecoder) Read(p []byte) (n int, err error) {
	return g.reader.Read(p)
}

func (g *gzipDecoder) Reset(src io.Reader) error {
	return g.reader.Reset(src)
}
