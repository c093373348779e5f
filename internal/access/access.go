// Package access decides whether a user may act on a board.
package access

import (
	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Decision is the outcome of an access check.
type Decision struct {
	HasAccess bool
	IsOwner   bool
}

// Check decides whether userID holds at least the required role on board.
//
// membership is the requester's membership row on the board, or nil when the
// requester has none. The board owner satisfies every role. A membership row
// can satisfy Viewer or Editor but never Owner.
func Check(board *model.Board, membership *model.Member, userID uuid.UUID, required model.Role) Decision {
	if board == nil {
		return Decision{}
	}
	if board.OwnerID == userID {
		return Decision{HasAccess: true, IsOwner: true}
	}
	if membership == nil || membership.BoardID != board.ID || membership.UserID != userID {
		return Decision{}
	}
	// Owner-required actions bypass membership entirely.
	if required == model.RoleOwner || !required.Valid() {
		return Decision{}
	}
	return Decision{HasAccess: membership.Role.Rank() >= required.Rank()}
}
