package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func NewZSTD() Codec {
	return newBaseCodec("zstd", func() Decoder {
		r, err := zstd.NewReader(nil)
		if err != nil {
			panic(err)
		}

		return &zstdDecoder{reader: r}
	})
}

type zstdDecoder struct {
	reader *zstd.Decoder
}

func (z *zstdDecoder) Read(p []byte) (n int, err error) {
	return z.reader.Read(p)
}

func (z *zstdDecoder) Reset(src io.Reader) error {
	return z.reader.Reset(src)
}
