package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string { return fmt.Sprintf("status %d", e.code) }

func TestCustomizedErrorUnwrap(t *testing.T) {
	inner := &statusErr{code: 502}
	err := New("reqapi.Send", "send failed", inner).Code(502)

	var target *statusErr
	assert.True(t, stderrors.As(err, &target))
	assert.Equal(t, 502, target.code)
	assert.Equal(t, 502, CodeOf(err, 0))
}

func TestTraceKeepsCode(t *testing.T) {
	err := New("a", "error.notfound", nil).Code(http.StatusNotFound)
	traced := Trace("b", err)

	assert.Equal(t, http.StatusNotFound, traced.GetCode())
	assert.Contains(t, traced.Error(), "a->b")

	wrapped := Wrap(fmt.Errorf("outer: %w", err), "c", "wrapped")
	assert.Equal(t, http.StatusNotFound, wrapped.GetCode())
}

func TestMessageFallsBackToCause(t *testing.T) {
	err := New("x", "", stderrors.New("boom"))
	assert.Equal(t, "boom", err.Message())
	assert.Equal(t, 418, CodeOf(stderrors.New("plain"), 418))
}
