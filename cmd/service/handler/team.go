package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/core/srv"
	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/cmd/service/middleware"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

func (s *HttpSrv) ListTeams(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	response.APISuccess(c, s.Store.ListTeams(user.ID))
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

func (s *HttpSrv) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	user, _ := middleware.InjectUser(c)
	team, err := s.Store.CreateTeam(user, types.CreateTeamRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}, s.Core.Srv().RBAC().Permissions(types.TEAM_ROLE_OWNER))
	if err != nil {
		response.APIError(c, storeError("handler.CreateTeam", err))
		return
	}
	response.APISuccess(c, team)
}

func (s *HttpSrv) GetTeam(c *gin.Context) {
	team, err := s.Store.GetTeam(c.Param("teamid"))
	if err != nil {
		response.APIError(c, storeError("handler.GetTeam", err))
		return
	}
	response.APISuccess(c, team)
}

// GetTeamBySlug only answers members of the team.
func (s *HttpSrv) GetTeamBySlug(c *gin.Context) {
	team, err := s.Store.GetTeamBySlug(c.Param("slug"))
	if err != nil {
		response.APIError(c, storeError("handler.GetTeamBySlug", err))
		return
	}

	user, _ := middleware.InjectUser(c)
	if !s.Core.Srv().RBAC().CheckPermission(s.Store.TeamRole(team.ID, user.ID), types.TEAM_ACTION_VIEW) {
		response.APIError(c, errors.New("handler.GetTeamBySlug.CheckPermission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
		return
	}
	response.APISuccess(c, team)
}

func (s *HttpSrv) UpdateTeam(c *gin.Context) {
	var req types.UpdateTeamRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	team, err := s.Store.UpdateTeam(c.Param("teamid"), req)
	if err != nil {
		response.APIError(c, storeError("handler.UpdateTeam", err))
		return
	}
	response.APISuccess(c, team)
}

func (s *HttpSrv) DeleteTeam(c *gin.Context) {
	if err := s.Store.DeleteTeam(c.Param("teamid")); err != nil {
		response.APIError(c, storeError("handler.DeleteTeam", err))
		return
	}
	response.APISuccess(c, nil)
}

// CheckTeamPermission answers 204 when the caller may perform action and
// 403 otherwise.
func (s *HttpSrv) CheckTeamPermission(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		response.APIError(c, errors.New("handler.CheckTeamPermission.action", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}
	team, err := s.Store.GetTeam(c.Param("teamid"))
	if err != nil {
		response.APIError(c, storeError("handler.CheckTeamPermission.GetTeam", err))
		return
	}

	user, _ := middleware.InjectUser(c)
	if !s.Core.Srv().RBAC().CheckPermission(s.Store.TeamRole(team.ID, user.ID), action) {
		response.APIError(c, errors.New("handler.CheckTeamPermission", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListTeamMembers(c *gin.Context) {
	list, err := s.Store.ListTeamMembers(c.Param("teamid"))
	if err != nil {
		response.APIError(c, storeError("handler.ListTeamMembers", err))
		return
	}
	response.APISuccess(c, list)
}

// UpdateTeamMember changes a member's role. Permissions follow the new
// role unless the request lists them explicitly. Only the owner grants admin.
func (s *HttpSrv) UpdateTeamMember(c *gin.Context) {
	var req types.UpdateTeamMemberRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Role != "" && !srv.IsTeamRole(req.Role) {
		response.APIError(c, errors.New("handler.UpdateTeamMember.role", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	if req.Role == types.TEAM_ROLE_ADMIN && middleware.InjectTeamRole(c) != types.TEAM_ROLE_OWNER {
		response.APIError(c, errors.New("handler.UpdateTeamMember.grantAdmin", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden))
		return
	}

	permissions := req.Permissions
	if permissions == nil && req.Role != "" {
		permissions = s.Core.Srv().RBAC().Permissions(req.Role)
	}
	member, err := s.Store.UpdateTeamMember(c.Param("teamid"), c.Param("userid"), req.Role, permissions)
	if err != nil {
		response.APIError(c, storeError("handler.UpdateTeamMember", err))
		return
	}
	response.APISuccess(c, member)
}

func (s *HttpSrv) RemoveTeamMember(c *gin.Context) {
	if err := s.Store.RemoveTeamMember(c.Param("teamid"), c.Param("userid")); err != nil {
		response.APIError(c, storeError("handler.RemoveTeamMember", err))
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListTeamSpaces(c *gin.Context) {
	list, err := s.Store.ListTeamSpaces(c.Param("teamid"))
	if err != nil {
		response.APIError(c, storeError("handler.ListTeamSpaces", err))
		return
	}
	response.APISuccess(c, list)
}

type CreateTeamSpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *HttpSrv) CreateTeamSpace(c *gin.Context) {
	var req CreateTeamSpaceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	space, err := s.Store.CreateTeamSpace(c.Param("teamid"), types.CreateTeamSpaceRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.APIError(c, storeError("handler.CreateTeamSpace", err))
		return
	}
	response.APISuccess(c, space)
}

func (s *HttpSrv) DeleteTeamSpace(c *gin.Context) {
	if err := s.Store.DeleteTeamSpace(c.Param("teamid"), c.Param("spaceid")); err != nil {
		response.APIError(c, storeError("handler.DeleteTeamSpace", err))
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) CreateTeamInvite(c *gin.Context) {
	invite, err := s.Store.CreateTeamInvite(c.Param("teamid"), s.SiteURL)
	if err != nil {
		response.APIError(c, storeError("handler.CreateTeamInvite", err))
		return
	}
	response.APISuccess(c, invite)
}
