package mime

import "strings"

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	XML            MIME = "text/xml"
	JSON           MIME = "application/json"
	YAML           MIME = "application/yaml"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
	Multipart      MIME = "multipart/form-data"
)

// Complies returns whether two MIMEs are compatible. Media type parameters of the
// second one, if any, are cut off beforehand. Empty MIME is considered compatible
// with any other MIME.
func Complies(mime MIME, with string) bool {
	if sep := strings.IndexByte(with, ';'); sep != -1 {
		with = strings.TrimRight(with[:sep], " \t")
	}

	return len(with) == 0 || with == mime
}
