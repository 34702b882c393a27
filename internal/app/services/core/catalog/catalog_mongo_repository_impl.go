package catalog

import (
	"context"
	"fmt"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type catalogMongoRepository struct {
	Services  *mongo.Collection
	Providers *mongo.Collection
	Slots     *mongo.Collection
}

func NewCatalogMongoRepository(client *mongo.Client, dbName string) contracts.CatalogRepository {
	db := client.Database(dbName)
	return &catalogMongoRepository{
		Services:  db.Collection(constvars.MongoCollServices),
		Providers: db.Collection(constvars.MongoCollProviders),
		Slots:     db.Collection(constvars.MongoCollSlots),
	}
}

func (r *catalogMongoRepository) FindAllServices(ctx context.Context) ([]models.Service, error) {
	cursor, err := r.Services.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	services := make([]models.Service, 0)
	if err := cursor.All(ctx, &services); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return services, nil
}

func (r *catalogMongoRepository) FindServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	var service models.Service
	err := r.Services.FindOne(ctx, bson.M{"_id": serviceID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrCatalogNotFound(err, fmt.Sprintf("service/%s", serviceID))
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &service, nil
}

func (r *catalogMongoRepository) FindProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	var provider models.Provider
	err := r.Providers.FindOne(ctx, bson.M{"_id": providerID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrCatalogNotFound(err, fmt.Sprintf("provider/%s", providerID))
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &provider, nil
}

func (r *catalogMongoRepository) FindProvidersByServiceID(ctx context.Context, serviceID string) ([]models.Provider, error) {
	cursor, err := r.Providers.Find(ctx, bson.M{"service_ids": serviceID}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	providers := make([]models.Provider, 0)
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return providers, nil
}

func (r *catalogMongoRepository) FindSlotByID(ctx context.Context, slotID string) (*models.Slot, error) {
	var slot models.Slot
	err := r.Slots.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, exceptions.ErrCatalogNotFound(err, fmt.Sprintf("slot/%s", slotID))
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &slot, nil
}

func (r *catalogMongoRepository) FindSlotsByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
	}
	cursor, err := r.Slots.Find(ctx, filter, options.Find().SetSort(bson.M{"time": 1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	slots := make([]models.Slot, 0)
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return slots, nil
}

func (r *catalogMongoRepository) MarkSlotBooked(ctx context.Context, slotID string) error {
	return r.setSlotAvailability(ctx, slotID, false)
}

func (r *catalogMongoRepository) MarkSlotAvailable(ctx context.Context, slotID string) error {
	return r.setSlotAvailability(ctx, slotID, true)
}

func (r *catalogMongoRepository) setSlotAvailability(ctx context.Context, slotID string, available bool) error {
	result, err := r.Slots.UpdateOne(ctx,
		bson.M{"_id": slotID},
		bson.M{"$set": bson.M{"is_available": available}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrCatalogNotFound(mongo.ErrNoDocuments, fmt.Sprintf("slot/%s", slotID))
	}
	return nil
}
