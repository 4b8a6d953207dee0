package transactionRepo

import (
	"context"

	"kingscogent/models"
)

// TransactionRepository defines persistence for transaction records keyed by
// (userId, txRef).
type TransactionRepository interface {
	// Upsert merges the supplied fields into the record for (userID, txRef),
	// creating it if absent. The date field is always stamped to processing
	// time; fields absent from upd keep their stored values.
	Upsert(ctx context.Context, userID, txRef string, upd models.TransactionUpdate) (*models.Transaction, error)
	// GetByRef retrieves a transaction by its composite key.
	GetByRef(ctx context.Context, userID, txRef string) (*models.Transaction, error)
}
