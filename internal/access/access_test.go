package access

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolve(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	cases := []struct {
		name       string
		viewerID   uuid.UUID
		targetID   uuid.UUID
		wantRole   Role
		wantTarget uuid.UUID
	}{
		{"owner of own data", userA, uuid.Nil, RoleOwner, userA},
		{"owner via own share link", userA, userA, RoleOwner, userA},
		{"visitor of another user", userA, userB, RoleReadOnly, userB},
		{"anonymous visitor of share link", uuid.Nil, userB, RoleReadOnly, userB},
		{"no viewer no target", uuid.Nil, uuid.Nil, RoleUnauthenticated, uuid.Nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope := Resolve(tc.viewerID, tc.targetID)
			if scope.Role != tc.wantRole {
				t.Errorf("Role = %q, want %q", scope.Role, tc.wantRole)
			}
			if scope.TargetID != tc.wantTarget {
				t.Errorf("TargetID = %v, want %v", scope.TargetID, tc.wantTarget)
			}
		})
	}
}

func TestScopePermissions(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	owner := Resolve(userA, userA)
	if !owner.CanRead() || !owner.CanMutate() {
		t.Error("owner should read and mutate")
	}

	readOnly := Resolve(userA, userB)
	if !readOnly.CanRead() {
		t.Error("read-only viewer should read")
	}
	if readOnly.CanMutate() {
		t.Error("read-only viewer must not mutate")
	}

	unauthenticated := Resolve(uuid.Nil, uuid.Nil)
	if unauthenticated.CanRead() || unauthenticated.CanMutate() {
		t.Error("unauthenticated scope must not read or mutate")
	}
}
