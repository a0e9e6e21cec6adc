// Package msggen renders wire-format messages for tests and benchmarks.
package msggen

import (
	"strconv"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/violet-web/httpmsg/kv"
)

// Headers returns n-1 filler fields of realistic size plus a Host field.
func Headers(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Host", "localhost")
}

// RandomHeaders returns n fields with unpredictable names.
func RandomHeaders(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n; i++ {
		hdrs.Add(uniuri.NewLen(16), "some value")
	}

	return hdrs
}

// HeadersBlock renders the field section, without the terminating blank line.
func HeadersBlock(hdrs *kv.Storage) (buff []byte) {
	fields := hdrs.Iter()
	for {
		pair, cont := fields.Next()
		if !cont {
			return buff
		}

		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}
}

// Request renders a whole GET request head for the URI.
func Request(uri string, hdrs *kv.Storage) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// Response renders a whole response head.
func Response(code int, hdrs *kv.Storage) (response []byte) {
	response = append(response, "HTTP/1.1 "+strconv.Itoa(code)+" Whatever\r\n"...)
	response = append(response, HeadersBlock(hdrs)...)

	return append(response, '\r', '\n')
}

// Chunked renders the pieces as a chunked stream, one chunk per piece, with the
// terminating zero chunk included.
func Chunked(pieces ...string) (body []byte) {
	for _, piece := range pieces {
		body = append(body, strconv.FormatInt(int64(len(piece)), 16)+"\r\n"+piece+"\r\n"...)
	}

	return append(body, "0\r\n\r\n"...)
}
