package httpmsg

import (
	"bytes"
	"io"

	"github.com/indigo-web/utils/strcomp"
	json "github.com/json-iterator/go"
	"github.com/violet-web/httpmsg/codec"
	"github.com/violet-web/httpmsg/mime"
	"github.com/violet-web/httpmsg/status"
)

// JSON unmarshals the body into the model. The message must carry an
// application/json Content-Type.
func (p *parser) JSON(model any) error {
	if !mime.Complies(mime.JSON, p.hdr.base().ContentType()) {
		return status.ErrUnsupportedMediaType
	}

	iterator := json.ConfigDefault.BorrowIterator(p.Body())
	iterator.ReadVal(model)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// DecodedBody returns the body with its Content-Encoding undone. Bodies with no
// coding, or an identity one, come back as is. The decoded size obeys the same
// limit as the framed body.
func (p *parser) DecodedBody(codecs *codec.Registry) ([]byte, error) {
	token := p.hdr.base().ContentEncoding()
	if len(token) == 0 || strcomp.EqualFold(token, "identity") {
		return p.Body(), nil
	}

	dec := codecs.Get(token)
	if dec == nil {
		return nil, status.ErrUnsupportedEncoding
	}

	if err := dec.Reset(bytes.NewReader(p.Body())); err != nil {
		return nil, err
	}

	limited := io.LimitedReader{R: dec, N: int64(p.cfg.Body.MaxLength) + 1}
	out := bytes.NewBuffer(make([]byte, 0, p.cfg.Body.DecodedBufferPrealloc))
	if _, err := out.ReadFrom(&limited); err != nil {
		return nil, err
	}

	if out.Len() > p.cfg.Body.MaxLength {
		return nil, status.ErrBodyTooLarge
	}

	return out.Bytes(), nil
}
