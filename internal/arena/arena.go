package arena

import "bytes"

var crlf = []byte("\r\n")

// Arena is an append-only byte log with a consumption cursor. Everything ever fed into it
// stays in place, so slices and strings referencing the log remain valid for the whole
// lifetime of a message. The cursor separates consumed bytes from the pending tail, which
// is an incomplete line still waiting for the rest of its data.
type Arena struct {
	memory []byte
	cursor int
}

func New(initialSpace int) Arena {
	return Arena{
		memory: make([]byte, 0, initialSpace),
	}
}

// FeedLine appends the chunk and tries to complete a CRLF-terminated line beginning at the
// cursor. On success the line (CRLF included) is returned along with the unconsumed tail of
// the chunk, and the log is truncated right past the CRLF, so the tail isn't retained twice.
// Otherwise the returned line is nil and the whole chunk is buffered as pending.
//
// The pending tail never contains a CRLF, therefore the search covers only the last pending
// byte (a possibly split CR) and the freshly appended chunk.
func (a *Arena) FeedLine(chunk []byte) (line, rest []byte) {
	searchFrom := len(a.memory) - 1
	if searchFrom < a.cursor {
		searchFrom = a.cursor
	}

	a.memory = append(a.memory, chunk...)
	idx := bytes.Index(a.memory[searchFrom:], crlf)
	if idx == -1 {
		return nil, nil
	}

	lineEnd := searchFrom + idx + 2
	tail := len(a.memory) - lineEnd
	line = a.memory[a.cursor:lineEnd]
	rest = chunk[len(chunk)-tail:]
	a.memory = a.memory[:lineEnd]
	a.cursor = lineEnd

	return line, rest
}

// FeedLength appends at most remaining bytes of the chunk, advancing the cursor past them.
// It returns the number of bytes still missing and the unconsumed tail of the chunk.
func (a *Arena) FeedLength(chunk []byte, remaining int) (left int, rest []byte) {
	if len(chunk) > remaining {
		chunk, rest = chunk[:remaining], chunk[remaining:]
	}

	a.memory = append(a.memory, chunk...)
	a.cursor = len(a.memory)

	return remaining - len(chunk), rest
}

// Append writes the chunk into the log without inspecting it. As raw writes leave no
// incomplete line behind, the cursor is advanced right away.
func (a *Arena) Append(chunk []byte) {
	a.memory = append(a.memory, chunk...)
	a.cursor = len(a.memory)
}

// Len returns the overall number of bytes held by the log.
func (a *Arena) Len() int {
	return len(a.memory)
}

// Pending returns the buffered tail of an incomplete line.
func (a *Arena) Pending() []byte {
	return a.memory[a.cursor:]
}

// Slice returns the log bytes in [from, to). The returned slice must not be modified.
func (a *Arena) Slice(from, to int) []byte {
	return a.memory[from:to]
}
