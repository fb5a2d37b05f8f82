package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/utils"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-Id"
	localizerKey    = "i18n"
)

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localizerKey, l)
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	return c.MustGet(localizerKey).(i18n.Localizer)
}

// ErrorBody is what every failed request answers with. Success bodies are
// the bare resource.
type ErrorBody struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// NewResponse reuses the caller's X-Request-Id or issues one, and echoes it.
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
	}
}

// GetLangFromRequestOrDefault maps Accept-Language onto a loaded language.
func GetLangFromRequestOrDefault(c *gin.Context) string {
	langs := utils.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if len(langs) == 0 {
		return i18n.DEFAULT_LANG
	}
	tags := make([]string, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, l.Tag)
	}
	return InjectResponseLocalizer(c).Match(tags...)
}

// APIError api响应失败
func APIError(c *gin.Context, err error) {
	c.Abort()

	body := ErrorBody{
		Code:      http.StatusInternalServerError,
		Message:   err.Error(),
		RequestID: c.GetString(RequestIDKey),
	}
	var cerr *errors.CustomizedError
	if errors.As(err, &cerr) {
		body.Code = cerr.GetCode()
		body.Message = InjectResponseLocalizer(c).Get(GetLangFromRequestOrDefault(c), cerr.Message())
	}

	c.JSON(body.Code, body)
	slog.Error("response error",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("request_id", body.RequestID),
		slog.Int("code", body.Code),
		slog.String("user", c.GetString(UserIDKey)),
		slog.String("error", err.Error()))
}

// APISuccess writes data as the body, or 204 when data is nil.
func APISuccess(c *gin.Context, data any) {
	c.Abort()
	if data == nil {
		c.Status(http.StatusNoContent)
	} else {
		c.JSON(http.StatusOK, data)
	}
	slog.Debug("request success",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("user", c.GetString(UserIDKey)))
}

// UserIDKey holds the authenticated user id in the gin context.
const UserIDKey = "user"
