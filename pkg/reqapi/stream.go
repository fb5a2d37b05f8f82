package reqapi

import (
	"context"
	stderrors "errors"
	"io"
	"iter"
	"net/http"
	"strings"
	"sync"
)

var ErrEmptyStream = stderrors.New("response body is not readable")

const streamBufferSize = 4 << 10

// MessageStream is the raw reply body of a chat message. Chunks are passed
// through as received, a chunk boundary may split a multi-byte character.
type MessageStream struct {
	resp   *http.Response
	cancel context.CancelFunc
	buf    []byte

	closeOnce sync.Once
	closeErr  error
}

func newMessageStream(resp *http.Response, cancel context.CancelFunc) *MessageStream {
	return &MessageStream{
		resp:   resp,
		cancel: cancel,
		buf:    make([]byte, streamBufferSize),
	}
}

func (s *MessageStream) StatusCode() int {
	return s.resp.StatusCode
}

func (s *MessageStream) Header() http.Header {
	return s.resp.Header
}

// Recv returns the next chunk, or io.EOF once the body is exhausted.
func (s *MessageStream) Recv() (string, error) {
	for {
		n, err := s.resp.Body.Read(s.buf)
		if n > 0 {
			return string(s.buf[:n]), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *MessageStream) Read(p []byte) (int, error) {
	return s.resp.Body.Read(p)
}

// Chunks ranges over the stream until EOF. A non-EOF error is yielded once
// and ends the sequence.
func (s *MessageStream) Chunks() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			chunk, err := s.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Collect drains and closes the stream, calling fn for each chunk when set.
func (s *MessageStream) Collect(fn func(chunk string)) (string, error) {
	defer s.Close()

	var sb strings.Builder
	for chunk, err := range s.Chunks() {
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(chunk)
		if fn != nil {
			fn(chunk)
		}
	}
	return sb.String(), nil
}

// Close aborts the request if still running and releases the connection.
func (s *MessageStream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.resp.Body.Close()
	})
	return s.closeErr
}
