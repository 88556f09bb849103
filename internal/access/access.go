// Package access resolves who may see and mutate which data partition.
// Every request that reads or writes habit/goal records goes through
// Resolve; mutation handlers must additionally check CanMutate.
package access

import (
	"errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOwner           Role = "owner"
	RoleReadOnly        Role = "read_only"
	RoleUnauthenticated Role = "unauthenticated"
)

// ErrAccessDenied is returned when a mutation is attempted under a
// non-owner scope. The record must be left untouched.
var ErrAccessDenied = errors.New("access denied")

// Scope is the resolved permission level for a single request. TargetID is
// the data partition being viewed; for owners it equals ViewerID.
type Scope struct {
	ViewerID uuid.UUID `json:"viewerId"`
	TargetID uuid.UUID `json:"targetId"`
	Role     Role      `json:"role"`
}

// Resolve determines the viewing role from the authenticated viewer and the
// optional share target. uuid.Nil means absent on both sides.
//
//   - no viewer, no target: unauthenticated, nothing may be read
//   - no target: the viewer browses their own data as owner
//   - target equals viewer: owner
//   - anything else (including anonymous viewers of a share link): read-only
//     over the target's partition
func Resolve(viewerID, targetID uuid.UUID) Scope {
	if viewerID == uuid.Nil && targetID == uuid.Nil {
		return Scope{Role: RoleUnauthenticated}
	}
	if targetID == uuid.Nil || targetID == viewerID {
		return Scope{ViewerID: viewerID, TargetID: viewerID, Role: RoleOwner}
	}
	return Scope{ViewerID: viewerID, TargetID: targetID, Role: RoleReadOnly}
}

// CanRead reports whether the scope may load the target partition at all.
func (s Scope) CanRead() bool {
	return s.Role != RoleUnauthenticated
}

// CanMutate reports whether the scope may create, toggle, or delete records
// in the target partition.
func (s Scope) CanMutate() bool {
	return s.Role == RoleOwner
}
