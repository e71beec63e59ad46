// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the "role" field of a user profile and the "rol" token claim.
//
// The client only distinguishes admin from everyone else. The backend ranks
// roles so that a route open to students is also open to moderators.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// roleRank orders the known roles. Unknown roles rank zero.
var roleRank = map[UserRole]int{
	RoleStudent:   1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Known reports whether r is one of the roles above.
func (r UserRole) Known() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above target. An unknown role never does.
func (r UserRole) AtLeast(target UserRole) bool {
	rank := roleRank[r]
	return rank > 0 && rank >= roleRank[target]
}
