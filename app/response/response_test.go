package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
)

func newEngine(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ProvideResponseLocalizer(i18n.NewLocalizer("en", "zh-CN")), NewResponse())
	engine.GET("/", h)
	return engine
}

func TestAPIErrorLocalized(t *testing.T) {
	engine := newEngine(func(c *gin.Context) {
		APIError(c, errors.New("test", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.5")
	req.Header.Set(RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "rid-1", body.RequestID)
	assert.Equal(t, "资源不存在", body.Message)
}

func TestAPIErrorPlain(t *testing.T) {
	engine := newEngine(func(c *gin.Context) {
		APIError(c, stderrors.New("boom"))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAPISuccess(t *testing.T) {
	engine := newEngine(func(c *gin.Context) {
		if c.Query("empty") != "" {
			APISuccess(c, nil)
			return
		}
		APISuccess(c, []string{"a"})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a"]`, w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?empty=1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
