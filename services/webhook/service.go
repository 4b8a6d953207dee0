package webhook

import (
	"context"
	"strings"

	transactionRepo "kingscogent/database/repository/transaction"
	userRepo "kingscogent/database/repository/user"
	"kingscogent/models"
	"kingscogent/services/notification"

	"go.uber.org/zap"
)

// Service processes one webhook delivery: validate, resolve the user, record
// the transaction, then fan out notifications. Stages run in sequence; a
// failure in validation or resolution short-circuits with no writes, a
// storage failure aborts before any notification goes out.
type Service struct {
	Users        userRepo.UserRepository
	Transactions transactionRepo.TransactionRepository
	Dispatcher   *notification.Dispatcher
	Logger       *zap.Logger
}

// Process handles a verified webhook event and returns the recorded
// transaction.
func (s *Service) Process(ctx context.Context, ev *models.WebhookEvent) (*models.Transaction, error) {
	if err := ValidateEvent(ev); err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, ev.Data.Customer)
	if err != nil {
		return nil, err
	}

	txRef := strings.TrimSpace(ev.Data.TxRef)
	tx, err := s.Transactions.Upsert(ctx, user.ID, txRef, updateFromData(ev.Data))
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Transaction recorded",
		zap.String("userId", user.ID), zap.String("txRef", txRef), zap.String("status", tx.Status))

	s.Dispatcher.Dispatch(ctx, user, tx)
	return tx, nil
}

// resolveUser maps the payload's identity hint to a user record. A uid wins
// when both hints are present; otherwise the customer email is matched
// exactly, first result in store order.
func (s *Service) resolveUser(ctx context.Context, customer models.WebhookCustomer) (*models.User, error) {
	if uid := strings.TrimSpace(customer.UID); uid != "" {
		user, err := s.Users.GetByID(ctx, uid)
		if err != nil {
			return nil, err
		}
		if user == nil {
			s.Logger.Warn("No user matches customer uid", zap.String("uid", uid))
			return nil, ErrUserNotFound
		}
		return user, nil
	}

	email := strings.TrimSpace(customer.Email)
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.Logger.Warn("No user matches customer email", zap.String("email", email))
		return nil, ErrUserNotFound
	}
	return user, nil
}
