package access

import "github.com/wolfeidau/hrconsole/internal/session"

// View paths. PathLogin doubles as the landing page, matching the backend's
// routing contract.
const (
	PathLogin                = "/"
	PathHome                 = "/home"
	PathAdminDashboard       = "/admin-dashboard"
	PathManagerDashboard     = "/manager-dashboard"
	PathEmployeeDashboard    = "/employee-dashboard"
	PathResponsableDashboard = "/responsable-dashboard"
	PathProfile              = "/profile"
	PathDocuments            = "/documents"
	PathTimesheet            = "/timesheet"
)

// Route declares a navigable view. An empty AllowedRoles list permits any
// authenticated role; Public routes skip authentication entirely.
type Route struct {
	Path         string
	Public       bool
	AllowedRoles []session.Role
}

// homePaths maps each role to its dashboard. Every enumerated role has
// exactly one home; an unknown role has none and falls back to the login
// view.
var homePaths = map[session.Role]string{
	session.RoleAdmin:       PathAdminDashboard,
	session.RoleManager:     PathManagerDashboard,
	session.RoleEmploye:     PathEmployeeDashboard,
	session.RoleResponsable: PathResponsableDashboard,
}

// HomePath returns the dashboard a role lands on after login. Unrecognized
// roles map to the login view.
func HomePath(r session.Role) string {
	if path, ok := homePaths[r]; ok {
		return path
	}
	return PathLogin
}

// DefaultRoutes is the application route table: one dashboard per role plus
// the shared authenticated views.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Public: true},
		{Path: PathHome},
		{Path: PathAdminDashboard, AllowedRoles: []session.Role{session.RoleAdmin}},
		{Path: PathManagerDashboard, AllowedRoles: []session.Role{session.RoleManager}},
		{Path: PathEmployeeDashboard, AllowedRoles: []session.Role{session.RoleEmploye}},
		{Path: PathResponsableDashboard, AllowedRoles: []session.Role{session.RoleResponsable}},
		{Path: PathProfile},
		{Path: PathDocuments},
		{Path: PathTimesheet},
	}
}
