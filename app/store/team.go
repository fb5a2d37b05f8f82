package store

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/register"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

const INVITE_TTL = 7 * 24 * time.Hour

// CreateTeam creates a team owned by owner. ownerPermissions are stored on
// the owner's membership.
func (s *Store) CreateTeam(owner types.User, req types.CreateTeamRequest, ownerPermissions []string) (types.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Name == "" || req.Slug == "" {
		return types.Team{}, ErrInvalid
	}
	if _, exist := s.teamBySlug(req.Slug); exist {
		return types.Team{}, ErrExist
	}

	now := s.timestamp()
	team := &types.Team{
		ID:          newID(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		OwnerID:     owner.ID,
		MemberCount: 1,
		CreatedAt:   now,
	}
	s.teams[team.ID] = team
	s.teamOrder = append(s.teamOrder, team.ID)
	s.members[team.ID] = []types.TeamMember{{
		UserID:      owner.ID,
		Username:    owner.Username,
		Avatar:      owner.Avatar,
		Role:        types.TEAM_ROLE_OWNER,
		Permissions: ownerPermissions,
		JoinedAt:    now,
	}}
	return *team, nil
}

// AddTeamMember puts user into the team with role, replacing an existing
// membership.
func (s *Store) AddTeamMember(teamID string, user types.User, role string, permissions []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return ErrNotFound
	}
	members := lo.Reject(s.members[teamID], func(m types.TeamMember, _ int) bool {
		return m.UserID == user.ID
	})
	s.members[teamID] = append(members, types.TeamMember{
		UserID:      user.ID,
		Username:    user.Username,
		Avatar:      user.Avatar,
		Role:        role,
		Permissions: permissions,
		JoinedAt:    s.timestamp(),
	})
	team.MemberCount = len(s.members[teamID])
	return nil
}

func (s *Store) teamBySlug(slug string) (*types.Team, bool) {
	for _, team := range s.teams {
		if team.Slug == slug {
			return team, true
		}
	}
	return nil, false
}

// ListTeams returns the teams userID belongs to, in creation order.
func (s *Store) ListTeams(userID string) []types.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]types.Team, 0)
	for _, id := range s.teamOrder {
		if s.memberRole(id, userID) != "" {
			list = append(list, *s.teams[id])
		}
	}
	return list
}

func (s *Store) GetTeam(id string) (types.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[id]
	if !ok {
		return types.Team{}, ErrNotFound
	}
	return *team, nil
}

func (s *Store) GetTeamBySlug(slug string) (types.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teamBySlug(slug)
	if !ok {
		return types.Team{}, ErrNotFound
	}
	return *team, nil
}

func (s *Store) UpdateTeam(id string, req types.UpdateTeamRequest) (types.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok {
		return types.Team{}, ErrNotFound
	}
	if req.Name != nil {
		if *req.Name == "" {
			return types.Team{}, ErrInvalid
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	return *team, nil
}

func (s *Store) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return ErrNotFound
	}
	delete(s.teams, id)
	delete(s.members, id)
	delete(s.spaces, id)
	delete(s.invites, id)
	s.teamOrder = lo.Without(s.teamOrder, id)
	return nil
}

// TeamRole returns userID's role in the team, "" for non-members.
func (s *Store) TeamRole(teamID, userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memberRole(teamID, userID)
}

func (s *Store) memberRole(teamID, userID string) string {
	m, ok := lo.Find(s.members[teamID], func(m types.TeamMember) bool {
		return m.UserID == userID
	})
	if !ok {
		return ""
	}
	return m.Role
}

func (s *Store) ListTeamMembers(teamID string) ([]types.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.teams[teamID]; !ok {
		return nil, ErrNotFound
	}
	return append([]types.TeamMember{}, s.members[teamID]...), nil
}

// UpdateTeamMember changes the member's role and permissions. The owner's
// membership cannot be changed this way.
func (s *Store) UpdateTeamMember(teamID, userID string, role string, permissions []string) (types.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.members[teamID]
	_, idx, ok := lo.FindIndexOf(members, func(m types.TeamMember) bool {
		return m.UserID == userID
	})
	if !ok {
		return types.TeamMember{}, ErrNotFound
	}
	if members[idx].Role == types.TEAM_ROLE_OWNER || role == types.TEAM_ROLE_OWNER {
		return types.TeamMember{}, ErrInvalid
	}
	if role != "" {
		members[idx].Role = role
	}
	if permissions != nil {
		members[idx].Permissions = permissions
	}
	return members[idx], nil
}

func (s *Store) RemoveTeamMember(teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return ErrNotFound
	}
	role := s.memberRole(teamID, userID)
	switch role {
	case "":
		return ErrNotFound
	case types.TEAM_ROLE_OWNER:
		return ErrInvalid
	}
	s.members[teamID] = lo.Reject(s.members[teamID], func(m types.TeamMember, _ int) bool {
		return m.UserID == userID
	})
	team.MemberCount = len(s.members[teamID])
	return nil
}

func (s *Store) ListTeamSpaces(teamID string) ([]types.TeamSpace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.teams[teamID]; !ok {
		return nil, ErrNotFound
	}
	return append([]types.TeamSpace{}, s.spaces[teamID]...), nil
}

func (s *Store) CreateTeamSpace(teamID string, req types.CreateTeamSpaceRequest) (types.TeamSpace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[teamID]; !ok {
		return types.TeamSpace{}, ErrNotFound
	}
	if req.Name == "" {
		return types.TeamSpace{}, ErrInvalid
	}
	space := types.TeamSpace{
		ID:          newID(),
		TeamID:      teamID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   s.timestamp(),
	}
	s.spaces[teamID] = append(s.spaces[teamID], space)
	return space, nil
}

func (s *Store) DeleteTeamSpace(teamID, spaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spaces := s.spaces[teamID]
	remain := lo.Reject(spaces, func(sp types.TeamSpace, _ int) bool {
		return sp.ID == spaceID
	})
	if len(remain) == len(spaces) {
		return ErrNotFound
	}
	s.spaces[teamID] = remain
	return nil
}

// CreateTeamInvite issues an invite code; siteURL is the prefix of the
// returned join link.
func (s *Store) CreateTeamInvite(teamID, siteURL string) (types.TeamInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[teamID]
	if !ok {
		return types.TeamInvite{}, ErrNotFound
	}
	code := utils.RandomStr(12)
	invite := types.TeamInvite{
		Code:      code,
		URL:       fmt.Sprintf("%s/teams/%s/join?code=%s", siteURL, team.Slug, code),
		ExpiresAt: s.now().Add(INVITE_TTL).UTC().Format(time.RFC3339),
	}
	s.invites[teamID] = append(s.invites[teamID], invite)
	return invite, nil
}

func init() {
	register.RegisterFunc[*Seeder](SeedKey{}, func(seed *Seeder) {
		team, err := seed.Store.CreateTeam(seed.Demo, types.CreateTeamRequest{
			Name:        "QukaAI",
			Slug:        DEMO_TEAM,
			Description: "Demo team",
		}, seed.Permissions(types.TEAM_ROLE_OWNER))
		if err != nil {
			return
		}
		seed.Store.AddTeamMember(team.ID, seed.Viewer, types.TEAM_ROLE_VIEWER, seed.Permissions(types.TEAM_ROLE_VIEWER))
		seed.Store.CreateTeamSpace(team.ID, types.CreateTeamSpaceRequest{Name: "General"})
	})
}
