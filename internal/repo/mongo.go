package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bistro/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	colUsers    = "users"
	colMenu     = "menu"
	colCarts    = "carts"
	colPayments = "payments"
)

type MongoRepo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoRepo(client *mongo.Client, dbName string) *MongoRepo {
	return &MongoRepo{Client: client, DB: client.Database(dbName)}
}

func (r *MongoRepo) users() *mongo.Collection    { return r.DB.Collection(colUsers) }
func (r *MongoRepo) menu() *mongo.Collection     { return r.DB.Collection(colMenu) }
func (r *MongoRepo) carts() *mongo.Collection    { return r.DB.Collection(colCarts) }
func (r *MongoRepo) payments() *mongo.Collection { return r.DB.Collection(colPayments) }

// Migrate creates the indexes the store relies on for uniqueness and ordering.
func (r *MongoRepo) Migrate(ctx context.Context) error {
	indexes := []struct {
		col   *mongo.Collection
		model mongo.IndexModel
	}{
		{r.users(), mongo.IndexModel{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetName("users_uid").SetUnique(true),
		}},
		{r.menu(), mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("menu_category"),
		}},
		{r.carts(), mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "menuId", Value: 1}},
			Options: options.Index().SetName("carts_user_menu").SetUnique(true),
		}},
		{r.payments(), mongo.IndexModel{
			Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("payments_uid_created"),
		}},
	}
	for _, ix := range indexes {
		if _, err := ix.col.Indexes().CreateOne(ctx, ix.model); err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("create index on %s: %w", ix.col.Name(), err)
		}
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx, readpref.Primary())
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", s, ErrInvalidID)
	}
	return id, nil
}

func isIndexExistsError(err error) bool {
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "IndexOptionsConflict")
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (*T, error) {
	var doc T
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	out := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		id := oid.Hex()
		out.UpsertedID = &id
	}
	return out
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return models.Inserted(oid.Hex())
	}
	return &models.InsertResult{Acknowledged: true}
}

// decimalOf converts a stored price of any legacy type to decimal inside a pipeline.
func decimalOf(field string) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: field},
		{Key: "to", Value: "decimal"},
		{Key: "onError", Value: 0},
		{Key: "onNull", Value: 0},
	}}}
}

func objectIDOf(field string) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: field},
		{Key: "to", Value: "objectId"},
		{Key: "onError", Value: nil},
		{Key: "onNull", Value: nil},
	}}}
}
