package model

import (
	"fmt"
	"strings"
)

// Role is a user's standing on a board. Only RoleViewer and RoleEditor are
// ever persisted on a membership row; RoleOwner is implied by Board.OwnerID.
type Role string

const (
	RoleViewer Role = "viewer" // read-only
	RoleEditor Role = "editor" // content mutation
	RoleOwner  Role = "owner"  // board administration and membership
)

var roleRanks = map[Role]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleOwner:  2,
}

// Rank orders roles Viewer < Editor < Owner. Unknown roles rank below Viewer.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Assignable reports whether the role may be stored on a membership row.
func (r Role) Assignable() bool {
	return r == RoleViewer || r == RoleEditor
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
