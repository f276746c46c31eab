package domain

import "testing"

func TestRoleLevelOrdering(t *testing.T) {
	if !(RoleLevel(RoleEmployee) < RoleLevel(RoleCoordinator) && RoleLevel(RoleCoordinator) < RoleLevel(RoleAdmin)) {
		t.Fatalf("role hierarchy out of order")
	}
	if RoleLevel("intern") != RoleLevel(RoleEmployee) {
		t.Fatalf("unknown roles fall back to employee level")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleEmployee, RoleCoordinator, RoleAdmin} {
		if !ValidRole(r) {
			t.Fatalf("%s should be valid", r)
		}
	}
	if ValidRole("employee") {
		t.Fatalf("roles are case sensitive")
	}
}

func TestCanReview(t *testing.T) {
	if CanReview(RoleEmployee) {
		t.Fatalf("employees cannot review")
	}
	if !CanReview(RoleCoordinator) || !CanReview(RoleAdmin) {
		t.Fatalf("reviewers should be allowed")
	}
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}
	if got := u.DisplayName(); got != "Jane Doe" {
		t.Fatalf("got %q", got)
	}
	u = &User{Username: "jdoe", FirstName: "Jane"}
	if got := u.DisplayName(); got != "Jane" {
		t.Fatalf("got %q", got)
	}
	u = &User{Username: "jdoe"}
	if got := u.DisplayName(); got != "jdoe" {
		t.Fatalf("got %q", got)
	}
}
