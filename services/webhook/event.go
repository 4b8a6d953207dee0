package webhook

import (
	"strings"

	"kingscogent/models"
)

// ValidateEvent checks the fields every delivery must carry: a transaction
// reference and an identity hint (uid or customer email). Amount, currency and
// status are provider-defined and pass through as supplied.
func ValidateEvent(ev *models.WebhookEvent) error {
	if strings.TrimSpace(ev.Data.TxRef) == "" {
		return NewValidationError("Invalid transaction reference (tx_ref)")
	}
	if strings.TrimSpace(ev.Data.Customer.UID) == "" && strings.TrimSpace(ev.Data.Customer.Email) == "" {
		return NewValidationError("Invalid customer identity (uid or email)")
	}
	return nil
}

// updateFromData lifts the supplied fields of one delivery into a merge
// update. Empty strings count as absent so they cannot blank stored values.
func updateFromData(data models.WebhookData) models.TransactionUpdate {
	var upd models.TransactionUpdate
	if s := strings.TrimSpace(data.Status); s != "" {
		upd.Status = &s
	}
	if data.Amount != nil {
		upd.Amount = data.Amount
	}
	if c := strings.TrimSpace(data.Currency); c != "" {
		upd.Currency = &c
	}
	return upd
}
