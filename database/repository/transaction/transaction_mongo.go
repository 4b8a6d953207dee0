package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"kingscogent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTransactionRepo implements TransactionRepository using MongoDB.
type MongoTransactionRepo struct {
	coll *mongo.Collection
}

// NewMongoTransactionRepo creates a new instance of TransactionRepository
// using MongoDB.
func NewMongoTransactionRepo(client *mongo.Client) TransactionRepository {
	coll := client.Database("kingscogent").Collection("transactions")
	repo := &MongoTransactionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create transaction indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes enforces at most one transaction per (userId, txRef).
func (r *MongoTransactionRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "txRef", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert merges the supplied fields into the record for (userID, txRef).
// A single UpdateOne with upsert rides on Mongo's per-document atomicity, so
// concurrent deliveries for the same reference cannot interleave partial
// writes.
func (r *MongoTransactionRepo) Upsert(ctx context.Context, userID, txRef string, upd models.TransactionUpdate) (*models.Transaction, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"date": now}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}

	filter := bson.M{"userId": userID, "txRef": txRef}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"userId": userID, "txRef": txRef},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, fmt.Errorf("failed to upsert transaction %s for user %s: %w", txRef, userID, err)
	}

	tx := &models.Transaction{UserID: userID, TxRef: txRef, Date: now}
	if upd.Status != nil {
		tx.Status = *upd.Status
	}
	if upd.Amount != nil {
		tx.Amount = *upd.Amount
	}
	if upd.Currency != nil {
		tx.Currency = *upd.Currency
	}
	return tx, nil
}

// GetByRef retrieves a transaction by its composite key.
func (r *MongoTransactionRepo) GetByRef(ctx context.Context, userID, txRef string) (*models.Transaction, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var tx models.Transaction
	filter := bson.M{"userId": userID, "txRef": txRef}
	if err := r.coll.FindOne(ctx, filter).Decode(&tx); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s for user %s: %w", txRef, userID, err)
	}
	return &tx, nil
}
