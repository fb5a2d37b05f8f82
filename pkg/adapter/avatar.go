package adapter

import (
	"net/url"
	"strings"

	"github.com/quka-ai/quka-client/pkg/types"
)

// AvatarURL keeps an explicit avatar, otherwise derives a deterministic one
// from the seed.
func AvatarURL(base, avatar, seed string) string {
	if strings.TrimSpace(avatar) != "" {
		return avatar
	}
	if strings.TrimSpace(seed) == "" {
		seed = types.DEFAULT_AVATAR_SEED
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "seed=" + url.QueryEscape(seed)
}
