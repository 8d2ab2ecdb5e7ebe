package user

import "strings"

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

func (p Principal) Authenticated() bool {
	return strings.TrimSpace(p.UserID) != ""
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
