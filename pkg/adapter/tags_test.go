package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsFromNames(t *testing.T) {
	names := []string{"go", "rag", " go ", "", "llm", "go", "rag"}

	freq := TagsFromNames(names, CountFrequency)
	assert.Len(t, freq, 3)
	assert.Equal(t, "go", freq[0].Name)
	assert.Equal(t, int64(3), freq[0].Count.Int())
	assert.Equal(t, "rag", freq[1].Name)
	assert.Equal(t, int64(2), freq[1].Count.Int())
	assert.Equal(t, "llm", freq[2].Name)
	assert.Equal(t, int64(1), freq[2].Count.Int())

	uniform := TagsFromNames(names, CountUniform)
	assert.Len(t, uniform, 3)
	for _, tag := range uniform {
		assert.Equal(t, int64(1), tag.Count.Int())
	}

	assert.Empty(t, TagsFromNames(nil, CountFrequency))
}

func TestParseCountPolicy(t *testing.T) {
	assert.Equal(t, CountUniform, ParseCountPolicy("Uniform"))
	assert.Equal(t, CountFrequency, ParseCountPolicy(""))
	assert.Equal(t, "frequency", CountFrequency.String())
}
