package client

import (
	"strings"
)

// Redirect targets
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is the outcome of a route check
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard admits user when logged in and, for a non-empty allow-list, holding
// one of the allowed roles.
func Guard(user *User, allowed ...Role) Decision {
	if user == nil {
		return Decision{Redirect: LoginPath}
	}
	if len(allowed) == 0 {
		return Decision{Allow: true}
	}
	for _, role := range allowed {
		if user.Role == role {
			return Decision{Allow: true}
		}
	}
	return Decision{Redirect: HomePath}
}

// Route is a protected page pattern. Segments starting with ':' match any
// value.
type Route struct {
	Pattern string
	// Roles empty means any logged-in user
	Roles []Role
}

// RouteTable lists protected pages; paths not listed are public
type RouteTable []Route

// DefaultRoutes mirrors the web app's protected pages
var DefaultRoutes = RouteTable{
	{Pattern: "/admin/dashboard", Roles: []Role{RoleAdmin}},
	{Pattern: "/admin/:tab", Roles: []Role{RoleAdmin}},
	{Pattern: "/dashboard", Roles: []Role{RoleClubAdmin}},
	{Pattern: "/club/:id/create-event", Roles: []Role{RoleClubAdmin}},
	{Pattern: "/club/:id/members", Roles: []Role{RoleClubAdmin}},
	{Pattern: "/events/edit/:id", Roles: []Role{RoleAdmin, RoleClubAdmin}},
	{Pattern: "/discover"},
	{Pattern: "/profile"},
	{Pattern: "/profile/:userId"},
	{Pattern: "/create-club-request"},
}

// Check applies the guard of the first route matching path.
func (t RouteTable) Check(path string, user *User) Decision {
	for _, r := range t {
		if matchPattern(r.Pattern, path) {
			return Guard(user, r.Roles...)
		}
	}
	return Decision{Allow: true}
}

func matchPattern(pattern, path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
