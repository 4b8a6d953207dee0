package models

import "time"

// Notification is an in-app message appended under a user. Records are never
// updated after creation by this service.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	TxRef     string    `bson:"txRef" json:"txRef"`
	Amount    float64   `bson:"amount,omitempty" json:"amount,omitempty"`
	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
