package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testKey struct{}

func TestResolveFuncHandlers(t *testing.T) {
	var got []string
	RegisterFunc(testKey{}, Handler[string](func(s string) { got = append(got, "a:"+s) }))
	RegisterFunc(testKey{}, Handler[int](func(int) { got = append(got, "int") }))
	RegisterFunc(testKey{}, Handler[string](func(s string) { got = append(got, "b:"+s) }))

	for _, h := range ResolveFuncHandlers[string](testKey{}) {
		h("x")
	}
	assert.Equal(t, []string{"a:x", "b:x"}, got)
	assert.Empty(t, ResolveFuncHandlers[string]("other"))
}
