package types

const (
	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

// User is the identity the mock backend resolves from an access token.
type User struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
