package models

// WebhookEvent is the Flutterwave callback envelope. Only the fields this
// service consumes are declared; everything else in the payload is ignored.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData carries the transaction fields of a webhook delivery. Amount is
// a pointer so a delivery that omits it can be told apart from a zero amount.
type WebhookData struct {
	TxRef    string          `json:"tx_ref"`
	Status   string          `json:"status"`
	Amount   *float64        `json:"amount"`
	Currency string          `json:"currency"`
	Customer WebhookCustomer `json:"customer"`
}

// WebhookCustomer identifies the paying user, either directly by uid or by
// the email on file with the payment provider.
type WebhookCustomer struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
