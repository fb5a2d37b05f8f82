package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/cmd/service/middleware"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

func (s *HttpSrv) ListCommunityTags(c *gin.Context) {
	response.APISuccess(c, s.Store.CommunityTags())
}

func (s *HttpSrv) ListDiscussions(c *gin.Context) {
	response.APISuccess(c, s.Store.ListDiscussions())
}

type CreateDiscussionRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" binding:"max=10"`
}

func (s *HttpSrv) CreateDiscussion(c *gin.Context) {
	var req CreateDiscussionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	user, _ := middleware.InjectUser(c)
	dto, err := s.Store.CreateDiscussion(user, types.TEAM_ROLE_MEMBER, types.CreateDiscussionRequest{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		response.APIError(c, storeError("handler.CreateDiscussion", err))
		return
	}
	response.APISuccess(c, dto)
}
