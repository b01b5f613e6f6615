package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MaxLineLength is the maximum accepted request line (16MB).
const MaxLineLength = 16 * 1024 * 1024

// ErrLineTooLong indicates a request line over MaxLineLength.
var ErrLineTooLong = errors.New("request line too long")

// Transport carries JSON-lines messages.
type Transport interface {
	// Receive returns the next non-blank line. It returns io.EOF when the
	// peer closes its side.
	Receive() ([]byte, error)

	// Send writes v as one JSON line.
	Send(v any) error
}

// LineTransport implements Transport over a reader and a writer, e.g.
// stdin and stdout.
type LineTransport struct {
	reader *bufio.Reader
	w      io.Writer
	mu     sync.Mutex
}

// NewLineTransport creates a transport reading r and writing w.
func NewLineTransport(r io.Reader, w io.Writer) *LineTransport {
	return &LineTransport{
		reader: bufio.NewReader(r),
		w:      w,
	}
}

// Receive reads the next non-blank line without its line break.
func (t *LineTransport) Receive() ([]byte, error) {
	for {
		line, err := t.readLine()
		if len(bytes.TrimSpace(line)) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (t *LineTransport) readLine() ([]byte, error) {
	var buf []byte
	for {
		chunk, err := t.reader.ReadSlice('\n')
		if len(buf)+len(chunk) > MaxLineLength {
			t.discardLine(err)
			return nil, ErrLineTooLong
		}
		buf = append(buf, chunk...)
		switch {
		case err == nil:
			return bytes.TrimRight(buf, "\r\n"), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return bytes.TrimRight(buf, "\r\n"), err
		}
	}
}

// discardLine skips the rest of an oversized line.
func (t *LineTransport) discardLine(err error) {
	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = t.reader.ReadSlice('\n')
	}
}

// Send encodes v followed by a newline.
func (t *LineTransport) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.w.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
