package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/app/store"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/types"
)

const (
	USER_CONTEXT_KEY = "__quka.user"
	ROLE_CONTEXT_KEY = "__quka.team_role"
)

func I18n(core *core.Core) gin.HandlerFunc {
	return response.ProvideResponseLocalizer(core.Localizer())
}

func InjectUser(c *gin.Context) (types.User, bool) {
	val, ok := c.Get(USER_CONTEXT_KEY)
	if !ok {
		return types.User{}, false
	}
	user, ok := val.(types.User)
	return user, ok
}

// InjectTeamRole is the caller's role in the team named by the route, set
// by VerifyTeamPermission.
func InjectTeamRole(c *gin.Context) string {
	return c.GetString(ROLE_CONTEXT_KEY)
}

// Authorization resolves the Authorization header to a user. The value is
// the raw token, an optional "Bearer " prefix is tolerated.
func Authorization(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
		if token == "" {
			response.APIError(c, errors.New("middleware.Authorization.empty", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized))
			return
		}

		user, ok := st.UserByToken(token)
		if !ok {
			response.APIError(c, errors.New("middleware.Authorization.UserByToken", i18n.ERROR_INVALID_TOKEN, nil).Code(http.StatusUnauthorized))
			return
		}
		c.Set(USER_CONTEXT_KEY, user)
		c.Set(response.UserIDKey, user.ID)
	}
}

// VerifyTeamPermission requires the caller to hold permission in the team
// given by the :teamid route param.
func VerifyTeamPermission(core *core.Core, st *store.Store, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("teamid")
		if _, err := st.GetTeam(teamID); err != nil {
			response.APIError(c, errors.New("middleware.VerifyTeamPermission.GetTeam", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound))
			return
		}

		user, _ := InjectUser(c)
		role := st.TeamRole(teamID, user.ID)
		if !core.Srv().RBAC().CheckPermission(role, permission) {
			response.APIError(c, errors.New("middleware.VerifyTeamPermission.CheckPermission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
			return
		}
		c.Set(ROLE_CONTEXT_KEY, role)
	}
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Accept-Language, Authorization, X-Request-Id")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-Id")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

type LimiterFunc func(key string, opts ...core.LimitOption) gin.HandlerFunc

func UseLimit(appCore *core.Core, genKeyFunc func(c *gin.Context) string, opts ...core.LimitOption) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !appCore.UseLimiter(genKeyFunc(c), opts...).Allow() {
			response.APIError(c, errors.New("middleware.limiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
		}
	}
}

// Metrics times every request by its route pattern and counts failures.
func Metrics(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := c.FullPath()
		if api == "" {
			api = "unknown"
		}
		timer := core.Metrics().ApiResponseTimer(api)
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			core.Metrics().ApiErrorInc(c.Request.Method, api, status)
		}
	}
}

// Stream marks the response as a chunked plain-text stream.
func Stream(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Next()
}
