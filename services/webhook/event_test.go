package webhook

import (
	"testing"

	"kingscogent/models"
)

func TestValidateEvent(t *testing.T) {
	cases := []struct {
		name    string
		txRef   string
		uid     string
		email   string
		wantErr string
	}{
		{"valid uid", "TX1", "uid1", "", ""},
		{"valid email", "TX1", "", "a@b.com", ""},
		{"missing tx_ref", "", "uid1", "", "Invalid transaction reference (tx_ref)"},
		{"whitespace tx_ref", "   ", "uid1", "", "Invalid transaction reference (tx_ref)"},
		{"missing identity", "TX1", "", "", "Invalid customer identity (uid or email)"},
		{"whitespace identity", "TX1", " ", "  ", "Invalid customer identity (uid or email)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := &models.WebhookEvent{
				Data: models.WebhookData{
					TxRef:    tc.txRef,
					Customer: models.WebhookCustomer{UID: tc.uid, Email: tc.email},
				},
			}
			err := ValidateEvent(ev)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("got %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateFromDataTreatsEmptyAsAbsent(t *testing.T) {
	amount := 250.0
	upd := updateFromData(models.WebhookData{
		Status:   "",
		Amount:   &amount,
		Currency: "  ",
	})
	if upd.Status != nil {
		t.Error("empty status should be absent")
	}
	if upd.Currency != nil {
		t.Error("blank currency should be absent")
	}
	if upd.Amount == nil || *upd.Amount != 250 {
		t.Errorf("amount = %v, want 250", upd.Amount)
	}
}
