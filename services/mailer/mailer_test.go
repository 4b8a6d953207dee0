package mailer

import (
	"strings"
	"testing"
	"time"

	"kingscogent/services/tasks"
)

func TestRenderReceipt(t *testing.T) {
	p := tasks.EmailReceiptPayload{
		To:       "a@b.com",
		Name:     "Ada",
		TxRef:    "TX1",
		Status:   "successful",
		Amount:   500,
		Currency: "NGN",
		Date:     time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
	}

	body, err := renderReceipt(p)
	if err != nil {
		t.Fatalf("renderReceipt: %v", err)
	}
	for _, want := range []string{"TX1", "successful", "NGN 500.00", "Ada", "02 Jan 2026"} {
		if !strings.Contains(body, want) {
			t.Errorf("receipt body missing %q", want)
		}
	}
}

func TestRenderReceiptWithoutName(t *testing.T) {
	body, err := renderReceipt(tasks.EmailReceiptPayload{TxRef: "TX2", Date: time.Now()})
	if err != nil {
		t.Fatalf("renderReceipt: %v", err)
	}
	if !strings.Contains(body, "Hello there") {
		t.Error("receipt without a name should fall back to a generic greeting")
	}
}
