package reqapi

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/quka-ai/quka-client/pkg/types"
)

func (c *Client) ListTeams(ctx context.Context) ([]types.Team, error) {
	var list []types.Team
	if err := c.do(ctx, "teams.list", http.MethodGet, endpoint("teams"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.Team{}
	}
	return list, nil
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, "teams.get", http.MethodGet, endpoint("teams", teamID), nil, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) GetTeamBySlug(ctx context.Context, slug string) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, "teams.get_by_slug", http.MethodGet, endpoint("teams", "slug", slug), nil, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) CreateTeam(ctx context.Context, req types.CreateTeamRequest) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, "teams.create", http.MethodPost, endpoint("teams"), nil, req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) UpdateTeam(ctx context.Context, teamID string, req types.UpdateTeamRequest) (*types.Team, error) {
	var team types.Team
	if err := c.do(ctx, "teams.update", http.MethodPut, endpoint("teams", teamID), nil, req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	return c.do(ctx, "teams.delete", http.MethodDelete, endpoint("teams", teamID), nil, nil, nil)
}

// CheckTeamPermission treats any HTTP error status as "not allowed". Only
// transport failures are returned as errors.
func (c *Client) CheckTeamPermission(ctx context.Context, teamID, action string) (bool, error) {
	query := url.Values{}
	query.Set("action", action)

	err := c.do(ctx, "teams.check_permission", http.MethodGet, endpoint("teams", teamID, "check-permission"), query, nil, nil)
	if err == nil {
		return true, nil
	}
	var herr *HTTPError
	if stderrors.As(err, &herr) {
		return false, nil
	}
	return false, err
}

func (c *Client) ListTeamMembers(ctx context.Context, teamID string) ([]types.TeamMember, error) {
	var list []types.TeamMember
	if err := c.do(ctx, "teams.members.list", http.MethodGet, endpoint("teams", teamID, "members"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.TeamMember{}
	}
	return list, nil
}

func (c *Client) UpdateTeamMember(ctx context.Context, teamID, userID string, req types.UpdateTeamMemberRequest) (*types.TeamMember, error) {
	var member types.TeamMember
	if err := c.do(ctx, "teams.members.update", http.MethodPut, endpoint("teams", teamID, "members", userID), nil, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	return c.do(ctx, "teams.members.remove", http.MethodDelete, endpoint("teams", teamID, "members", userID), nil, nil, nil)
}

func (c *Client) ListTeamSpaces(ctx context.Context, teamID string) ([]types.TeamSpace, error) {
	var list []types.TeamSpace
	if err := c.do(ctx, "teams.spaces.list", http.MethodGet, endpoint("teams", teamID, "spaces"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.TeamSpace{}
	}
	return list, nil
}

func (c *Client) CreateTeamSpace(ctx context.Context, teamID string, req types.CreateTeamSpaceRequest) (*types.TeamSpace, error) {
	var space types.TeamSpace
	if err := c.do(ctx, "teams.spaces.create", http.MethodPost, endpoint("teams", teamID, "spaces"), nil, req, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) DeleteTeamSpace(ctx context.Context, teamID, spaceID string) error {
	return c.do(ctx, "teams.spaces.delete", http.MethodDelete, endpoint("teams", teamID, "spaces", spaceID), nil, nil, nil)
}

func (c *Client) CreateTeamInvite(ctx context.Context, teamID string) (*types.TeamInvite, error) {
	var invite types.TeamInvite
	if err := c.do(ctx, "teams.invites.create", http.MethodPost, endpoint("teams", teamID, "invites"), nil, struct{}{}, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}
