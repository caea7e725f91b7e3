package auth

import "tourneyslots/internal/domain"

type staticAuthorizer struct {
	admins map[string]struct{}
}

// NewStaticAuthorizer builds an Authorizer from a fixed list of admin user
// IDs, typically loaded from configuration at startup.
func NewStaticAuthorizer(adminIDs []string) domain.Authorizer {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &staticAuthorizer{admins: admins}
}

func (a *staticAuthorizer) IsAdmin(userID string) bool {
	_, ok := a.admins[userID]
	return ok
}
