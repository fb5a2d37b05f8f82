package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenUniqIDStr(t *testing.T) {
	SetupIDWorker(1)
	a, b := GenUniqIDStr(), GenUniqIDStr()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRandomStr(t *testing.T) {
	assert.Len(t, RandomStr(32), 32)
	assert.Len(t, RandomStr(0), 0)
}

func TestParseAcceptLanguage(t *testing.T) {
	langs := ParseAcceptLanguage("en-US;q=0.8,zh-CN,fr;q=0.5")
	assert.Equal(t, []Language{
		{Tag: "zh-CN", Weight: 1},
		{Tag: "en-US", Weight: 0.8},
		{Tag: "fr", Weight: 0.5},
	}, langs)
	assert.Empty(t, ParseAcceptLanguage(""))
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "sk-ab******wxyz", MaskString("sk-abcdefghijklmnopqrstuvwxyz", 5, 4))
}
