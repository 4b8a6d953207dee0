package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kingscogent/middleware"
	"kingscogent/models"
	"kingscogent/services/notification"
	"kingscogent/services/webhook"

	"firebase.google.com/go/v4/messaging"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const testSecret = "whsec-test"

type stubUserRepo struct {
	byEmail map[string]*models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.byEmail[email], nil
}

type stubTxRepo struct {
	store map[string]*models.Transaction
	err   error
}

func (s *stubTxRepo) Upsert(ctx context.Context, userID, txRef string, upd models.TransactionUpdate) (*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil {
		s.store = map[string]*models.Transaction{}
	}
	tx, ok := s.store[userID+"/"+txRef]
	if !ok {
		tx = &models.Transaction{UserID: userID, TxRef: txRef}
		s.store[userID+"/"+txRef] = tx
	}
	tx.Date = time.Now().UTC()
	if upd.Status != nil {
		tx.Status = *upd.Status
	}
	if upd.Amount != nil {
		tx.Amount = *upd.Amount
	}
	if upd.Currency != nil {
		tx.Currency = *upd.Currency
	}
	out := *tx
	return &out, nil
}

func (s *stubTxRepo) GetByRef(ctx context.Context, userID, txRef string) (*models.Transaction, error) {
	tx, ok := s.store[userID+"/"+txRef]
	if !ok {
		return nil, errors.New("not found")
	}
	out := *tx
	return &out, nil
}

type stubNotifRepo struct {
	created []models.Notification
}

func (s *stubNotifRepo) Create(ctx context.Context, n models.Notification) (string, error) {
	s.created = append(s.created, n)
	return "notif-1", nil
}

func (s *stubNotifRepo) GetByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.created, nil
}

type stubPush struct{ sent int }

func (s *stubPush) Send(ctx context.Context, message *messaging.Message) (string, error) {
	s.sent++
	return "msg-1", nil
}

type stubQueue struct{ enqueued int }

func (s *stubQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	s.enqueued++
	return &asynq.TaskInfo{}, nil
}

type env struct {
	router *gin.Engine
	users  *stubUserRepo
	txs    *stubTxRepo
	notifs *stubNotifRepo
	push   *stubPush
}

func newEnv() *env {
	gin.SetMode(gin.TestMode)

	users := &stubUserRepo{byEmail: map[string]*models.User{}}
	txs := &stubTxRepo{}
	notifs := &stubNotifRepo{}
	push := &stubPush{}

	svc := &webhook.Service{
		Users:        users,
		Transactions: txs,
		Dispatcher: &notification.Dispatcher{
			Notifications: notifs,
			Push:          push,
			Email:         &stubQueue{},
			Logger:        zap.NewNop(),
		},
		Logger: zap.NewNop(),
	}
	h := NewWebhookHandler(svc, zap.NewNop())

	router := gin.New()
	router.POST("/flutterwave-webhook", middleware.VerifySignature(testSecret), h.FlutterwaveWebhookHandler)
	router.POST("/test", h.TestHandler)

	return &env{router: router, users: users, txs: txs, notifs: notifs, push: push}
}

func (e *env) deliver(t *testing.T, signature string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/flutterwave-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("verif-hash", signature)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func webhookBody(t *testing.T, txRef, status string, amount float64, currency, email string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"event": "charge.completed",
		"data": map[string]any{
			"tx_ref":   txRef,
			"status":   status,
			"amount":   amount,
			"currency": currency,
			"customer": map[string]any{"email": email},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestWebhookHappyPath(t *testing.T) {
	e := newEnv()
	e.users.byEmail["a@b.com"] = &models.User{ID: "uid123", Email: "a@b.com"}

	w := e.deliver(t, testSecret, webhookBody(t, "TX1", "successful", 500, "NGN", "a@b.com"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
	}
	if w.Body.String() != "Transaction updated successfully" {
		t.Errorf("body = %q", w.Body.String())
	}

	tx, err := e.txs.GetByRef(context.Background(), "uid123", "TX1")
	if err != nil {
		t.Fatalf("transaction not stored: %v", err)
	}
	if tx.Status != "successful" || tx.Amount != 500 || tx.Currency != "NGN" {
		t.Errorf("stored transaction = %+v", tx)
	}
	if len(e.notifs.created) != 1 {
		t.Errorf("got %d notifications, want 1", len(e.notifs.created))
	}
	if e.push.sent != 0 {
		t.Error("push sent for user without FCM token")
	}
}

func TestWebhookMissingSignature(t *testing.T) {
	e := newEnv()
	e.users.byEmail["a@b.com"] = &models.User{ID: "uid123", Email: "a@b.com"}

	w := e.deliver(t, "", webhookBody(t, "TX1", "successful", 500, "NGN", "a@b.com"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w.Body.String() != "Unauthorized" {
		t.Errorf("body = %q", w.Body.String())
	}
	if len(e.txs.store) != 0 || len(e.notifs.created) != 0 {
		t.Error("writes performed for unauthenticated request")
	}
}

func TestWebhookWrongSignature(t *testing.T) {
	e := newEnv()

	w := e.deliver(t, "nope", webhookBody(t, "TX1", "successful", 500, "NGN", "a@b.com"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestWebhookInvalidTxRef(t *testing.T) {
	e := newEnv()

	w := e.deliver(t, testSecret, webhookBody(t, "", "successful", 500, "NGN", "a@b.com"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["error"] != "Invalid transaction reference (tx_ref)" {
		t.Errorf("error = %q", resp["error"])
	}
	if len(e.txs.store) != 0 {
		t.Error("writes performed for invalid payload")
	}
}

func TestWebhookUnknownUser(t *testing.T) {
	e := newEnv()

	w := e.deliver(t, testSecret, webhookBody(t, "TX1", "successful", 500, "NGN", "nobody@b.com"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["error"] != "User not found" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestWebhookStorageError(t *testing.T) {
	e := newEnv()
	e.users.byEmail["a@b.com"] = &models.User{ID: "uid123", Email: "a@b.com"}
	e.txs.err = errors.New("mongo down")

	w := e.deliver(t, testSecret, webhookBody(t, "TX1", "successful", 500, "NGN", "a@b.com"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if w.Body.String() != "Internal Server Error" {
		t.Errorf("body = %q (internal details must not leak)", w.Body.String())
	}
	if len(e.notifs.created) != 0 {
		t.Error("notification appended after failed write")
	}
}

func TestWebhookMalformedJSON(t *testing.T) {
	e := newEnv()

	w := e.deliver(t, testSecret, []byte("{not json"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookRedelivery(t *testing.T) {
	e := newEnv()
	e.users.byEmail["a@b.com"] = &models.User{ID: "uid123", Email: "a@b.com"}
	body := webhookBody(t, "TX1", "successful", 500, "NGN", "a@b.com")

	first := e.deliver(t, testSecret, body)
	second := e.deliver(t, testSecret, body)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d, want 200, 200", first.Code, second.Code)
	}
	if len(e.txs.store) != 1 {
		t.Errorf("got %d stored transactions, want 1", len(e.txs.store))
	}
}

func TestTestRoute(t *testing.T) {
	e := newEnv()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "This is working" {
		t.Errorf("body = %q", w.Body.String())
	}
}
