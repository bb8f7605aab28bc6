package entity

import "strings"

// Role is the caller's access role. Raw claim strings are turned into a Role
// once, at the request boundary, with ParseRole.
type Role string

const (
	RoleNone     Role = ""
	RoleAdmin    Role = "admin"
	RoleNurse    Role = "nurse"
	RoleResident Role = "resident"
	RoleFamily   Role = "family"
)

// Roles lists every known role, in display order.
var Roles = []Role{RoleAdmin, RoleNurse, RoleResident, RoleFamily}

var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"nurse":         RoleNurse,
	"careprovider":  RoleNurse,
	"care_provider": RoleNurse,
	"care-provider": RoleNurse,
	"caregiver":     RoleNurse,
	"staff":         RoleNurse,
	"teacher":       RoleNurse,
	"resident":      RoleResident,
	"family":        RoleFamily,
}

// ParseRole maps a raw role claim onto a known role. Anything unrecognised,
// including the empty string, becomes RoleNone.
func ParseRole(raw string) Role {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return r
	}
	return RoleNone
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// Identity is the authenticated caller for a single request.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
