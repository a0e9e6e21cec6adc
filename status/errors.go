package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadStartLine     = NewError(BadRequest, "malformed start line")
	ErrBadHeaderLine    = NewError(BadRequest, "malformed header line")
	ErrBadChunk         = NewError(BadRequest, "malformed chunk-encoded data")
	ErrBadContentLength = NewError(BadRequest, "bad content-length value")
	ErrPrematureClose   = NewError(BadRequest, "the stream ended in the middle of a message")

	ErrTooLongLine    = NewError(RequestHeaderFieldsTooLarge, "the line exceeds the length limit")
	ErrTooManyHeaders = NewError(RequestHeaderFieldsTooLarge, "too many header fields")
	ErrBodyTooLarge   = NewError(RequestEntityTooLarge, "the body exceeds the length limit")

	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrUnsupportedEncoding  = NewError(UnsupportedMediaType, "the content encoding is not supported")
)
