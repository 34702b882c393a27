package payments

import (
	"context"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransactionMongoRepository(client *mongo.Client, dbName string) contracts.TransactionRepository {
	return &transactionMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollTransactions),
	}
}

func (r *transactionMongoRepository) CreateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	_, err := r.Collection.InsertOne(ctx, transaction)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return transaction, nil
}

func (r *transactionMongoRepository) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := r.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrTransactionNotFound(err, orderID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}

func (r *transactionMongoRepository) FindByDraftID(ctx context.Context, draftID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	err := r.Collection.FindOne(ctx, bson.M{"draft_id": draftID}, opts).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrTransactionNotFound(err, draftID)
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}

func (r *transactionMongoRepository) UpdateTransaction(ctx context.Context, transaction *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	transaction.UpdatedAt = time.Now()
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": transaction.OrderID}, transaction)
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return nil, exceptions.ErrTransactionNotFound(mongo.ErrNoDocuments, transaction.OrderID)
	}
	return transaction, nil
}
