package domain

import (
	"errors"
	"testing"
)

func TestNextStatus_Approvals(t *testing.T) {
	cases := []struct {
		current Status
		want    Status
	}{
		{StatusSubmitted, StatusCoordinatorApproved},
		{StatusCoordinatorApproved, StatusCommitteeApproved},
		{StatusCommitteeApproved, StatusAwarded},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.current, ActionApprove)
		if err != nil {
			t.Fatalf("approve from %s: %v", tc.current, err)
		}
		if got != tc.want {
			t.Fatalf("approve from %s: got %s, want %s", tc.current, got, tc.want)
		}
	}
}

func TestNextStatus_Rejections(t *testing.T) {
	cases := []struct {
		current Status
		want    Status
	}{
		{StatusSubmitted, StatusCoordinatorRejected},
		{StatusCoordinatorApproved, StatusCommitteeRejected},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.current, ActionReject)
		if err != nil {
			t.Fatalf("reject from %s: %v", tc.current, err)
		}
		if got != tc.want {
			t.Fatalf("reject from %s: got %s, want %s", tc.current, got, tc.want)
		}
	}
}

func TestNextStatus_Undo(t *testing.T) {
	cases := []struct {
		current Status
		want    Status
	}{
		{StatusAwarded, StatusCommitteeApproved},
		{StatusCommitteeApproved, StatusCoordinatorApproved},
		{StatusCoordinatorApproved, StatusSubmitted},
		{StatusCoordinatorRejected, StatusSubmitted},
		{StatusCommitteeRejected, StatusCoordinatorApproved},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.current, ActionUndo)
		if err != nil {
			t.Fatalf("undo from %s: %v", tc.current, err)
		}
		if got != tc.want {
			t.Fatalf("undo from %s: got %s, want %s", tc.current, got, tc.want)
		}
	}
}

func TestNextStatus_InvalidTransitions(t *testing.T) {
	cases := []struct {
		current Status
		action  ReviewAction
	}{
		{StatusAwarded, ActionApprove},
		{StatusCoordinatorRejected, ActionApprove},
		{StatusCommitteeRejected, ActionReject},
		{StatusAwarded, ActionReject},
		{StatusCoordinatorRejected, ActionReject},
		{StatusSubmitted, ActionUndo},
	}
	for _, tc := range cases {
		if _, err := NextStatus(tc.current, tc.action); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s from %s: expected ErrInvalidTransition, got %v", tc.action, tc.current, err)
		}
	}
}

func TestNextStatus_UnknownAction(t *testing.T) {
	if _, err := NextStatus(StatusSubmitted, "PROMOTE"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !StatusCoordinatorRejected.Rejected() || !StatusCommitteeRejected.Rejected() {
		t.Fatalf("rejection states must report Rejected")
	}
	if StatusSubmitted.Rejected() || StatusAwarded.Rejected() {
		t.Fatalf("non-rejection states must not report Rejected")
	}
	if StatusSubmitted.Approved() {
		t.Fatalf("submitted is not approved")
	}
	if !StatusCoordinatorApproved.Approved() || !StatusAwarded.Approved() {
		t.Fatalf("approval states must report Approved")
	}
	if !StatusCommitteeRejected.PassedCoordinator() {
		t.Fatalf("committee rejection implies a coordinator approval happened")
	}
	if StatusCoordinatorRejected.PassedCoordinator() {
		t.Fatalf("coordinator rejection never passed the coordinator")
	}
}

func TestNominationActiveAndLocked(t *testing.T) {
	n := &Nomination{Status: StatusSubmitted}
	if !n.Active() {
		t.Fatalf("submitted nomination must be active")
	}
	if n.Locked() {
		t.Fatalf("submitted nomination must still be editable")
	}

	n.Status = StatusCoordinatorApproved
	if !n.Active() || !n.Locked() {
		t.Fatalf("approved nomination must be active and locked")
	}

	n.Status = StatusCoordinatorRejected
	if n.Active() {
		t.Fatalf("rejected nomination must not block a new submission")
	}
	if !n.Locked() {
		t.Fatalf("rejected nomination must stay locked")
	}
}

func TestActiveStatuses(t *testing.T) {
	active := ActiveStatuses()
	if len(active) != 4 {
		t.Fatalf("expected 4 active statuses, got %d", len(active))
	}
	for _, s := range active {
		if s.Rejected() {
			t.Fatalf("%s must not appear in the active set", s)
		}
	}
}
