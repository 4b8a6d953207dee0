package models

import "time"

// Transaction is a payment event keyed by (userId, txRef). At most one record
// exists per pair; repeated webhook deliveries for the same reference update
// it in place.
type Transaction struct {
	UserID   string    `bson:"userId" json:"userId"`
	TxRef    string    `bson:"txRef" json:"txRef"`
	Status   string    `bson:"status,omitempty" json:"status,omitempty"`
	Amount   float64   `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency string    `bson:"currency,omitempty" json:"currency,omitempty"`
	Date     time.Time `bson:"date" json:"date"`
}

// TransactionUpdate carries the fields supplied by one webhook delivery.
// Nil fields are absent from the payload and must leave stored values
// untouched on merge.
type TransactionUpdate struct {
	Status   *string
	Amount   *float64
	Currency *string
}
