package service

import (
	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/cmd/service/handler"
	"github.com/quka-ai/quka-client/cmd/service/middleware"
	"github.com/quka-ai/quka-client/pkg/metrics"
	"github.com/quka-ai/quka-client/pkg/types"
)

func GetUserLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, func(c *gin.Context) string {
			return key + ":" + c.GetString(response.UserIDKey)
		}, opts...)
	}
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	userLimit := GetUserLimitBuilder(s.Core)
	ipLimit := GetIPLimitBuilder(s.Core)
	teamPermission := func(permission string) gin.HandlerFunc {
		return middleware.VerifyTeamPermission(s.Core, s.Store, permission)
	}

	// client path segments are escaped, route on the raw path
	s.Engine.UseRawPath = true
	s.Engine.UnescapePathValues = true

	s.Engine.Use(gin.Recovery())
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	s.Engine.Use(middleware.I18n(s.Core), response.NewResponse(), middleware.Metrics(s.Core))
	s.Engine.Use(middleware.Cors)

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(ipLimit("api"), middleware.Authorization(s.Store), userLimit("user"))
	{
		chat := apiV1.Group("/chat/sessions")
		{
			chat.GET("", s.ListChatSessions)
			chat.POST("", s.CreateChatSession)
			chat.GET("/:id", s.GetChatSession)
			chat.DELETE("/:id", s.DeleteChatSession)
			chat.POST("/:id/messages", userLimit("chat", core.WithLimit(30)), middleware.Stream, s.SendMessage)
		}

		documents := apiV1.Group("/documents")
		{
			documents.GET("/favorites", s.ListFavorites)
			documents.POST("/:id/favorite", s.ToggleFavorite)
			documents.POST("/:id/toggle-kb", s.ToggleKnowledgeBase)
			documents.GET("/:id/comments", s.ListComments)
			documents.POST("/:id/comments", userLimit("comment", core.WithLimit(20)), s.PostComment)
		}

		kb := apiV1.Group("/knowledge-base")
		{
			kb.GET("", s.GetKnowledgeBase)
			kb.PUT("", s.UpdateKnowledgeBase)
			kb.GET("/documents", s.ListKnowledgeBaseDocuments)
		}

		teams := apiV1.Group("/teams")
		{
			teams.GET("", s.ListTeams)
			teams.POST("", s.CreateTeam)
			teams.GET("/slug/:slug", s.GetTeamBySlug)

			team := teams.Group("/:teamid")
			{
				team.GET("", teamPermission(types.TEAM_ACTION_VIEW), s.GetTeam)
				team.PUT("", teamPermission(types.TEAM_ACTION_MANAGE), s.UpdateTeam)
				team.DELETE("", teamPermission(types.TEAM_ACTION_DELETE), s.DeleteTeam)
				team.GET("/check-permission", s.CheckTeamPermission)

				team.GET("/members", teamPermission(types.TEAM_ACTION_VIEW), s.ListTeamMembers)
				team.PUT("/members/:userid", teamPermission(types.TEAM_ACTION_MANAGE_MEMBER), s.UpdateTeamMember)
				team.DELETE("/members/:userid", teamPermission(types.TEAM_ACTION_MANAGE_MEMBER), s.RemoveTeamMember)

				team.GET("/spaces", teamPermission(types.TEAM_ACTION_VIEW), s.ListTeamSpaces)
				team.POST("/spaces", teamPermission(types.TEAM_ACTION_EDIT), s.CreateTeamSpace)
				team.DELETE("/spaces/:spaceid", teamPermission(types.TEAM_ACTION_MANAGE), s.DeleteTeamSpace)

				team.POST("/invites", teamPermission(types.TEAM_ACTION_MANAGE_MEMBER), s.CreateTeamInvite)
			}
		}

		community := apiV1.Group("/community")
		{
			community.GET("/tags", s.ListCommunityTags)
			community.GET("/discussions", s.ListDiscussions)
			community.POST("/discussions", userLimit("discussion", core.WithLimit(10)), s.CreateDiscussion)
		}
	}
}
