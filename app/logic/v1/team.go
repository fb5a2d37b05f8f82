package v1

import (
	"context"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/pkg/types"
)

type TeamLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewTeamLogic(ctx context.Context, core *core.Core) *TeamLogic {
	return &TeamLogic{
		ctx:  ctx,
		core: core,
	}
}

// Resolve finds a team by id, falling back to its slug.
func (l *TeamLogic) Resolve(idOrSlug string) (*types.Team, error) {
	team, err := l.core.Client().GetTeam(l.ctx, idOrSlug)
	if err == nil {
		return team, nil
	}
	team, slugErr := l.core.Client().GetTeamBySlug(l.ctx, idOrSlug)
	if slugErr != nil {
		return nil, apiError("TeamLogic.Resolve.GetTeamBySlug", slugErr)
	}
	return team, nil
}

func (l *TeamLogic) List() ([]types.Team, error) {
	list, err := l.core.Client().ListTeams(l.ctx)
	if err != nil {
		return nil, apiError("TeamLogic.List.ListTeams", err)
	}
	return list, nil
}

func (l *TeamLogic) Create(req types.CreateTeamRequest) (*types.Team, error) {
	team, err := l.core.Client().CreateTeam(l.ctx, req)
	if err != nil {
		return nil, apiError("TeamLogic.Create.CreateTeam", err)
	}
	return team, nil
}

func (l *TeamLogic) Members(teamID string) ([]types.TeamMember, error) {
	list, err := l.core.Client().ListTeamMembers(l.ctx, teamID)
	if err != nil {
		return nil, apiError("TeamLogic.Members.ListTeamMembers", err)
	}
	return list, nil
}

func (l *TeamLogic) Spaces(teamID string) ([]types.TeamSpace, error) {
	list, err := l.core.Client().ListTeamSpaces(l.ctx, teamID)
	if err != nil {
		return nil, apiError("TeamLogic.Spaces.ListTeamSpaces", err)
	}
	return list, nil
}

func (l *TeamLogic) Invite(teamID string) (*types.TeamInvite, error) {
	invite, err := l.core.Client().CreateTeamInvite(l.ctx, teamID)
	if err != nil {
		return nil, apiError("TeamLogic.Invite.CreateTeamInvite", err)
	}
	return invite, nil
}

// Can reports every action of the team that the current user may perform.
func (l *TeamLogic) Can(teamID string, actions ...string) (map[string]bool, error) {
	if len(actions) == 0 {
		actions = []string{
			types.TEAM_ACTION_VIEW,
			types.TEAM_ACTION_EDIT,
			types.TEAM_ACTION_MANAGE_MEMBER,
			types.TEAM_ACTION_MANAGE,
			types.TEAM_ACTION_DELETE,
		}
	}
	result := make(map[string]bool, len(actions))
	for _, action := range actions {
		ok, err := l.core.Client().CheckTeamPermission(l.ctx, teamID, action)
		if err != nil {
			return nil, apiError("TeamLogic.Can.CheckTeamPermission", err)
		}
		result[action] = ok
	}
	return result, nil
}

func (l *TeamLogic) Update(teamID string, req types.UpdateTeamRequest) (*types.Team, error) {
	team, err := l.core.Client().UpdateTeam(l.ctx, teamID, req)
	if err != nil {
		return nil, apiError("TeamLogic.Update.UpdateTeam", err)
	}
	return team, nil
}

func (l *TeamLogic) Delete(teamID string) error {
	if err := l.core.Client().DeleteTeam(l.ctx, teamID); err != nil {
		return apiError("TeamLogic.Delete.DeleteTeam", err)
	}
	return nil
}

func (l *TeamLogic) SetMemberRole(teamID, userID, role string) (*types.TeamMember, error) {
	member, err := l.core.Client().UpdateTeamMember(l.ctx, teamID, userID, types.UpdateTeamMemberRequest{Role: role})
	if err != nil {
		return nil, apiError("TeamLogic.SetMemberRole.UpdateTeamMember", err)
	}
	return member, nil
}

func (l *TeamLogic) RemoveMember(teamID, userID string) error {
	if err := l.core.Client().RemoveTeamMember(l.ctx, teamID, userID); err != nil {
		return apiError("TeamLogic.RemoveMember.RemoveTeamMember", err)
	}
	return nil
}

func (l *TeamLogic) CreateSpace(teamID string, req types.CreateTeamSpaceRequest) (*types.TeamSpace, error) {
	space, err := l.core.Client().CreateTeamSpace(l.ctx, teamID, req)
	if err != nil {
		return nil, apiError("TeamLogic.CreateSpace.CreateTeamSpace", err)
	}
	return space, nil
}

func (l *TeamLogic) DeleteSpace(teamID, spaceID string) error {
	if err := l.core.Client().DeleteTeamSpace(l.ctx, teamID, spaceID); err != nil {
		return apiError("TeamLogic.DeleteSpace.DeleteTeamSpace", err)
	}
	return nil
}
