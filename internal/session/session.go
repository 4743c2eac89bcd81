package session

// Role is the authorization role carried by an authenticated session.
// The backend enumerates exactly four roles; anything else is treated as
// tampered data and terminates the session.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleManager     Role = "MANAGER"
	RoleResponsable Role = "RESPONSABLE"
	RoleEmploye     Role = "EMPLOYE"
)

// Roles returns the enumerated roles in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleResponsable, RoleEmploye}
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleResponsable, RoleEmploye:
		return true
	default:
		return false
	}
}

// Session is the client-held record of the authenticated user. The access
// token is persisted separately from the identity fields, so it carries no
// JSON tag and never appears in the serialized session value.
type Session struct {
	UserID   int    `json:"id"`
	Name     string `json:"nom"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	PhotoURL string `json:"photo_url,omitempty"`

	Token string `json:"-"`
}

// Complete reports whether every required field is populated. A session
// that fails this check must never be saved or treated as authenticated.
func (s Session) Complete() bool {
	return s.UserID != 0 &&
		s.Name != "" &&
		s.Email != "" &&
		s.Role != "" &&
		s.Token != ""
}
