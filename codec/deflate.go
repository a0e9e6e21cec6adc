package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
)

func NewDeflate() Codec {
	return newBaseCodec("deflate", func() Decoder {
		return &deflateDecoder{reader: flate.NewReader(nil)}
	})
}

type deflateDecoder struct {
	reader io.ReadCloser
}

func (d *deflateDecoder) Read(p []byte) (n int, err error) {
	return d.reader.Read(p)
}

func (d *deflateDecoder) Reset(src io.Reader) error {
	return d.reader.(flate.Resetter).Reset(src, nil)
}
