package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/cmd/service/middleware"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

func (s *HttpSrv) ListFavorites(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	response.APISuccess(c, s.Store.ListFavorites(user.ID))
}

func (s *HttpSrv) ToggleFavorite(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	res, err := s.Store.ToggleFavorite(user.ID, c.Param("id"))
	if err != nil {
		response.APIError(c, storeError("handler.ToggleFavorite", err))
		return
	}
	response.APISuccess(c, res)
}

func (s *HttpSrv) ToggleKnowledgeBase(c *gin.Context) {
	var req types.ToggleKnowledgeBaseRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := s.Store.SetKnowledgeBase(c.Param("id"), req.Enabled)
	if err != nil {
		response.APIError(c, storeError("handler.ToggleKnowledgeBase", err))
		return
	}
	response.APISuccess(c, res)
}

func (s *HttpSrv) ListComments(c *gin.Context) {
	list, err := s.Store.ListComments(c.Param("id"))
	if err != nil {
		response.APIError(c, storeError("handler.ListComments", err))
		return
	}
	response.APISuccess(c, list)
}

type PostCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parentId"`
}

func (s *HttpSrv) PostComment(c *gin.Context) {
	var req PostCommentRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	user, _ := middleware.InjectUser(c)
	comment, err := s.Store.AddComment(user, c.Param("id"), types.CreateCommentRequest{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		response.APIError(c, storeError("handler.PostComment", err))
		return
	}
	response.APISuccess(c, comment)
}

func (s *HttpSrv) GetKnowledgeBase(c *gin.Context) {
	response.APISuccess(c, s.Store.KnowledgeBase())
}

func (s *HttpSrv) UpdateKnowledgeBase(c *gin.Context) {
	var req types.KnowledgeBaseConfig
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	kb, err := s.Store.UpdateKnowledgeBaseConfig(req)
	if err != nil {
		response.APIError(c, storeError("handler.UpdateKnowledgeBase", err))
		return
	}
	response.APISuccess(c, kb)
}

func (s *HttpSrv) ListKnowledgeBaseDocuments(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	response.APISuccess(c, s.Store.ListKnowledgeBaseDocuments(user.ID))
}
