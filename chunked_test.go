package httpmsg

import (
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/stretchr/testify/require"
	"github.com/violet-web/httpmsg/config"
	"github.com/violet-web/httpmsg/internal/msggen"
	"github.com/violet-web/httpmsg/status"
)

const chunkedHead = "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n"

const wikiStream = "4\r\nWiki\r\n6\r\npedia \r\nE\r\nin \r\n\r\nchunks.\r\n0\r\n\r\n"

const wikiBody = "Wikipedia in \r\n\r\nchunks."

func TestChunkedBody(t *testing.T) {
	t.Run("whole stream at once", func(t *testing.T) {
		p := NewRequestParser(nil)
		rest, err := p.Feed([]byte(chunkedHead + wikiStream))
		require.NoError(t, err)
		require.Empty(t, rest)
		require.True(t, p.Complete())
		require.Equal(t, wikiBody, string(p.Body()))
	})

	t.Run("fuzz by chunk sizes", func(t *testing.T) {
		raw := []byte(chunkedHead + wikiStream)

		for i := 1; i < len(raw); i++ {
			p := NewRequestParser(nil)
			rest := feedPartially(t, p, raw, i)
			require.Empty(t, rest, i)
			require.True(t, p.Complete(), i)
			require.Equal(t, wikiBody, string(p.Body()), i)
		}
	})

	t.Run("lowercase size digits", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "e\r\nin \r\n\r\nchunks.\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, p.Complete())
		require.Equal(t, "in \r\n\r\nchunks.", string(p.Body()))
	})

	t.Run("chunk extensions are discarded", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "4;name=value\r\nWiki\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, p.Complete())
		require.Equal(t, "Wiki", string(p.Body()))
	})

	t.Run("pipelining past the terminal chunk", func(t *testing.T) {
		next := "GET /next HTTP/1.1\r\n\r\n"
		p := NewRequestParser(nil)
		rest, err := p.Feed([]byte(chunkedHead + wikiStream + next))
		require.NoError(t, err)
		require.True(t, p.Complete())
		require.Equal(t, next, string(rest))
	})

	t.Run("missing data-end crlf", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "4\r\nWikiXY\r\n"))
		require.ErrorIs(t, err, status.ErrBadChunk)
	})

	t.Run("junk in the size line", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "Z\r\nWiki\r\n"))
		require.ErrorIs(t, err, status.ErrBadChunk)
	})

	t.Run("empty size line", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "\r\nWiki\r\n"))
		require.ErrorIs(t, err, status.ErrBadChunk)
	})

	t.Run("size line with too many digits", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "123456789\r\n"))
		require.ErrorIs(t, err, status.ErrBadChunk)
	})

	t.Run("body over the length limit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.MaxLength = 10

		p := NewRequestParser(cfg)
		_, err := p.Feed(append([]byte(chunkedHead), msggen.Chunked("hello", "world", "!")...))
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})
}

func TestChunkedTrailers(t *testing.T) {
	t.Run("plain trailers", func(t *testing.T) {
		p := NewRequestParser(nil)
		raw := chunkedHead + "4\r\nWiki\r\n0\r\nX-Checksum: abc\r\nX-Stamp: def\r\n\r\n"
		rest, err := p.Feed([]byte(raw))
		require.NoError(t, err)
		require.Empty(t, rest)
		require.True(t, p.Complete())

		head := p.Header()
		require.Equal(t, "abc", head.Trailers.Value("x-checksum"))
		require.Equal(t, "def", head.Trailers.Value("x-stamp"))
		require.False(t, head.Fields.Has("x-checksum"))
	})

	t.Run("folded trailer", func(t *testing.T) {
		p := NewRequestParser(nil)
		raw := chunkedHead + "4\r\nWiki\r\n0\r\nX-Note: part one\r\n part two\r\n\r\n"
		_, err := p.Feed([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, "part one part two", p.Header().Trailers.Value("x-note"))
	})

	t.Run("folded trailer survives any split", func(t *testing.T) {
		raw := []byte(chunkedHead + "4\r\nWiki\r\n0\r\nX-Note: part one\r\n part two\r\n\r\n")

		for i := 1; i < len(raw); i++ {
			p := NewRequestParser(nil)
			rest := feedPartially(t, p, raw, i)
			require.Empty(t, rest, i)
			require.True(t, p.Complete(), i)
			require.Equal(t, "Wiki", string(p.Body()), i)
			require.Equal(t, "part one part two", p.Header().Trailers.Value("x-note"), i)
		}
	})

	t.Run("malformed trailer", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "4\r\nWiki\r\n0\r\nbroken trailer\r\n\r\n"))
		require.ErrorIs(t, err, status.ErrBadHeaderLine)
	})

	t.Run("too many trailers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Message.MaxHeaders = 2

		p := NewRequestParser(cfg)
		raw := chunkedHead + "4\r\nWiki\r\n0\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"
		_, err := p.Feed([]byte(raw))
		require.ErrorIs(t, err, status.ErrTooManyHeaders)
	})

	t.Run("trailers split across feeds", func(t *testing.T) {
		p := NewRequestParser(nil)
		_, err := p.Feed([]byte(chunkedHead + "4\r\nWiki\r\n0\r\nX-Check"))
		require.NoError(t, err)
		require.False(t, p.Complete())

		rest, err := p.Feed([]byte("sum: abc\r\n\r\n"))
		require.NoError(t, err)
		require.Empty(t, rest)
		require.True(t, p.Complete())
		require.Equal(t, "abc", p.Header().Trailers.Value("x-checksum"))
	})
}

func TestChunkedDifferential(t *testing.T) {
	pieces := []string{"Hello", ", ", "world", "! ", strings.Repeat("ab", 32), "tail"}
	stream := msggen.Chunked(pieces...)
	expected := strings.Join(pieces, "")

	oracle := chunkedbody.NewParser(chunkedbody.DefaultSettings())
	var oracleBody []byte
	data := stream
	for {
		require.NotEmpty(t, data)
		chunk, extra, err := oracle.Parse(data, false)
		oracleBody = append(oracleBody, chunk...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data = extra
	}
	require.Equal(t, expected, string(oracleBody))

	p := NewRequestParser(nil)
	_, err := p.Feed([]byte(chunkedHead))
	require.NoError(t, err)
	rest, err := p.Feed(stream)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.True(t, p.Complete())
	require.Equal(t, expected, string(p.Body()))
}
