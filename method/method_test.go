package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, method := range List {
		assert.Equal(t, method, Parse(method.String()))
	}

	assert.Equal(t, Unknown, Parse("get"))
	assert.Equal(t, Unknown, Parse("PROPFIND"))
	assert.Equal(t, Unknown, Parse(""))
}

func TestBodylessResponse(t *testing.T) {
	assert.True(t, HEAD.BodylessResponse())
	assert.True(t, CONNECT.BodylessResponse())

	for _, method := range []Method{GET, POST, PUT, DELETE, OPTIONS, TRACE, PATCH} {
		assert.False(t, method.BodylessResponse(), method.String())
	}
}

func BenchmarkParse(b *testing.B) {
	var parsed Method

	for _, method := range List {
		b.Run(method.String(), func(b *testing.B) {
			m := method.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}
