package httpmsg

// lengthReader consumes a body delimited by Content-Length. The bytes land in the
// log as a single contiguous span, so Body stays zero-copy.
type lengthReader struct {
	remaining int
}

func (r *lengthReader) feed(p *parser, data []byte) (done bool, rest []byte, err error) {
	from := p.log.Len()
	left, rest := p.log.FeedLength(data, r.remaining)
	if err = p.recordBody(from, p.log.Len()-from); err != nil {
		return false, nil, err
	}

	r.remaining = left

	return left == 0, rest, nil
}
