package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type memNotificationRepo struct {
	rows []*domain.Notification
	err  error
}

func (r *memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, n)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range r.rows {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type memEmailQueue struct {
	emails []ports.Email
}

func (q *memEmailQueue) Enqueue(email ports.Email) {
	q.emails = append(q.emails, email)
}

func TestDispatcher_Notify(t *testing.T) {
	repo := &memNotificationRepo{}
	queue := &memEmailQueue{}
	d := NewDispatcher(repo, queue, zerolog.Nop())

	user := &domain.User{ID: "u1", Username: "alice", FirstName: "Alice", Email: "alice@example.com"}
	if err := d.Notify(context.Background(), user, "Nomination Confirmed", "Thanks!", domain.NotifNomination); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(repo.rows))
	}
	row := repo.rows[0]
	if row.UserID != "u1" || row.Title != "Nomination Confirmed" || row.Type != domain.NotifNomination {
		t.Fatalf("unexpected notification row: %+v", row)
	}
	if row.IsRead {
		t.Fatalf("new notifications start unread")
	}

	if len(queue.emails) != 1 {
		t.Fatalf("expected one queued email, got %d", len(queue.emails))
	}
	email := queue.emails[0]
	if email.To != "alice@example.com" || email.ToName != "Alice" || email.Subject != "Nomination Confirmed" {
		t.Fatalf("unexpected email: %+v", email)
	}
}

func TestDispatcher_Notify_NoEmailAddress(t *testing.T) {
	repo := &memNotificationRepo{}
	queue := &memEmailQueue{}
	d := NewDispatcher(repo, queue, zerolog.Nop())

	user := &domain.User{ID: "u1", Username: "alice"}
	if err := d.Notify(context.Background(), user, "Hello", "msg", domain.NotifInfo); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("in-app notification must still be recorded")
	}
	if len(queue.emails) != 0 {
		t.Fatalf("no email should be queued without an address")
	}
}

func TestDispatcher_Notify_DefaultTitle(t *testing.T) {
	repo := &memNotificationRepo{}
	d := NewDispatcher(repo, &memEmailQueue{}, zerolog.Nop())

	user := &domain.User{ID: "u1", Username: "alice"}
	if err := d.Notify(context.Background(), user, "", "msg", domain.NotifInfo); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if repo.rows[0].Title != "Notification" {
		t.Fatalf("expected default title, got %q", repo.rows[0].Title)
	}
}

func TestDispatcher_Notify_StoreFailure(t *testing.T) {
	repo := &memNotificationRepo{err: errors.New("write failed")}
	queue := &memEmailQueue{}
	d := NewDispatcher(repo, queue, zerolog.Nop())

	user := &domain.User{ID: "u1", Email: "alice@example.com"}
	if err := d.Notify(context.Background(), user, "t", "m", domain.NotifInfo); err == nil {
		t.Fatalf("expected an error when the notification row cannot be written")
	}
	if len(queue.emails) != 0 {
		t.Fatalf("no email should be queued when the row write fails")
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := &memNotificationRepo{rows: []*domain.Notification{
		{ID: "note1", UserID: "u1", Title: "Hello"},
	}}
	svc := NewNotificationService(repo)

	if err := svc.MarkRead(context.Background(), "note1", "u2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("marking another user's notification must fail, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), "note1", "u1"); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if !repo.rows[0].IsRead {
		t.Fatalf("notification not flipped to read")
	}

	list, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one notification, got %d", len(list))
	}
}
