package types

// team roles, highest first
const (
	TEAM_ROLE_OWNER  = "owner"
	TEAM_ROLE_ADMIN  = "admin"
	TEAM_ROLE_MEMBER = "member"
	TEAM_ROLE_VIEWER = "viewer"
)

// actions accepted by the permission check endpoint
const (
	TEAM_ACTION_VIEW          = "view"
	TEAM_ACTION_EDIT          = "edit"
	TEAM_ACTION_MANAGE        = "manage"
	TEAM_ACTION_MANAGE_MEMBER = "manage_member"
	TEAM_ACTION_DELETE        = "delete"
)

type Team struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
	MemberCount int    `json:"memberCount"`
	CreatedAt   string `json:"createdAt"`
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type TeamMember struct {
	UserID      string   `json:"userId" validate:"required"`
	Username    string   `json:"username"`
	Avatar      string   `json:"avatar"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	JoinedAt    string   `json:"joinedAt"`
}

type UpdateTeamMemberRequest struct {
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type TeamSpace struct {
	ID          string `json:"id" validate:"required"`
	TeamID      string `json:"teamId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type CreateTeamSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TeamInvite struct {
	Code      string `json:"code" validate:"required"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}
