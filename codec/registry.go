package codec

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Registry holds a codec set and a decoder instance per codec, instantiated on
// first use. Token lookup is case-insensitive.
//
// Instances are reused across Get calls, so a registry must not be shared
// between concurrently decoding parsers.
type Registry struct {
	codecs    []Codec
	instances []Decoder
}

func NewRegistry(codecs ...Codec) *Registry {
	return &Registry{
		codecs:    codecs,
		instances: make([]Decoder, len(codecs)),
	}
}

// Suite returns a registry with every codec the package ships.
func Suite() *Registry {
	return NewRegistry(NewGZIP(), NewDeflate(), NewZSTD(), NewBrotli())
}

func (r *Registry) find(token string) (int, Codec) {
	for i, entry := range r.codecs {
		if strcomp.EqualFold(entry.Token(), token) {
			return i, entry
		}
	}

	return -1, nil
}

// Get returns the decoder for the token, or nil if no codec is registered
// under it.
func (r *Registry) Get(token string) Decoder {
	idx, cd := r.find(token)
	if idx == -1 {
		return nil
	}

	inst := r.instances[idx]
	if inst == nil {
		inst = cd.New()
		r.instances[idx] = inst
	}

	return inst
}

// AcceptEncoding renders the registered tokens as an Accept-Encoding value.
func (r *Registry) AcceptEncoding() string {
	if len(r.codecs) == 0 {
		return "identity"
	}

	var b strings.Builder

	b.WriteString(r.codecs[0].Token())
	for _, c := range r.codecs[1:] {
		b.WriteString(", ")
		b.WriteString(c.Token())
	}

	return b.String()
}
