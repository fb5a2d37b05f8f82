package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_PERMISSION_DENIED = "error.permission.denied"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_EXIST             = "error.exist"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"
	ERROR_INVALID_TOKEN     = "error.invalid.token"
	ERROR_STREAM_FAILED     = "error.stream.failed"

	TAGCLOUD_TITLE   = "tagcloud.title"
	TAGCLOUD_LOADING = "tagcloud.loading"
	TAGCLOUD_ERROR   = "tagcloud.error"
	TAGCLOUD_EMPTY   = "tagcloud.empty"

	MESSAGE_LOGIN_SUCCESS  = "message.login.success"
	MESSAGE_LOGOUT_SUCCESS = "message.logout.success"
	MESSAGE_FEED_EMPTY     = "message.feed.empty"
	MESSAGE_POST_STATS     = "message.post.stats"
)
