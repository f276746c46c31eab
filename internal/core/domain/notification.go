package domain

import "time"

// Notification types used by the dispatcher.
const (
	NotifInfo       = "INFO"
	NotifNomination = "NOMINATION"
)

// Notification is an in-app message owned by exactly one user.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Message   string    `json:"message" bson:"message"`
	Type      string    `json:"type" bson:"type"`
	IsRead    bool      `json:"is_read" bson:"is_read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
