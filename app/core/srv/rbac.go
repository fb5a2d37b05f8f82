package srv

import (
	"net/http"

	"github.com/mikespook/gorbac/v2"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/types"
)

func SetupRBACSrv() *RBACSrv {
	rbac := gorbac.New()

	pView := gorbac.NewStdPermission(types.TEAM_ACTION_VIEW)
	pEdit := gorbac.NewStdPermission(types.TEAM_ACTION_EDIT)
	pManageMember := gorbac.NewStdPermission(types.TEAM_ACTION_MANAGE_MEMBER)
	pManage := gorbac.NewStdPermission(types.TEAM_ACTION_MANAGE)
	pDelete := gorbac.NewStdPermission(types.TEAM_ACTION_DELETE)

	roleViewer := gorbac.NewStdRole(types.TEAM_ROLE_VIEWER)
	roleViewer.Assign(pView)

	roleMember := gorbac.NewStdRole(types.TEAM_ROLE_MEMBER)
	roleMember.Assign(pEdit)

	roleAdmin := gorbac.NewStdRole(types.TEAM_ROLE_ADMIN)
	roleAdmin.Assign(pManageMember)
	roleAdmin.Assign(pManage)

	roleOwner := gorbac.NewStdRole(types.TEAM_ROLE_OWNER)
	roleOwner.Assign(pDelete)

	rbac.Add(roleViewer)
	rbac.Add(roleMember)
	rbac.Add(roleAdmin)
	rbac.Add(roleOwner)

	// each role inherits everything the role below it may do
	rbac.SetParent(types.TEAM_ROLE_MEMBER, types.TEAM_ROLE_VIEWER)
	rbac.SetParent(types.TEAM_ROLE_ADMIN, types.TEAM_ROLE_MEMBER)
	rbac.SetParent(types.TEAM_ROLE_OWNER, types.TEAM_ROLE_ADMIN)

	return &RBACSrv{
		rbac: rbac,
	}
}

type RBACSrv struct {
	rbac *gorbac.RBAC
}

func (a *RBACSrv) CheckPermission(roleID, permissionID string) bool {
	return a.rbac.IsGranted(roleID, gorbac.NewStdPermission(permissionID), nil)
}

// Permissions lists the actions roleID may perform, in a fixed order.
func (a *RBACSrv) Permissions(roleID string) []string {
	var list []string
	for _, action := range []string{
		types.TEAM_ACTION_VIEW,
		types.TEAM_ACTION_EDIT,
		types.TEAM_ACTION_MANAGE_MEMBER,
		types.TEAM_ACTION_MANAGE,
		types.TEAM_ACTION_DELETE,
	} {
		if a.CheckPermission(roleID, action) {
			list = append(list, action)
		}
	}
	return list
}

func IsTeamRole(role string) bool {
	switch role {
	case types.TEAM_ROLE_OWNER, types.TEAM_ROLE_ADMIN, types.TEAM_ROLE_MEMBER, types.TEAM_ROLE_VIEWER:
		return true
	}
	return false
}

type RoleUser interface {
	GetRole() string
	GetUser() string
}

func (a *RBACSrv) Check(user RoleUser, permissionID string) *errors.CustomizedError {
	if user == nil || user.GetRole() == "" {
		return errors.New("RBACSrv.Check.NoRole", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	if !a.CheckPermission(user.GetRole(), permissionID) {
		return errors.New("RBACSrv.Check", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	return nil
}
