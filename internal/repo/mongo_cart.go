package repo

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectCart joins the user's cart entries with the menu collection. The menu
// reference is stored as a hex string, so it is converted before the lookup.
func (r *MongoRepo) ProjectCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$addFields", Value: bson.D{{Key: "menuOID", Value: objectIDOf("$menuId")}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colMenu},
			{Key: "localField", Value: "menuOID"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "item"},
		}}},
		{{Key: "$unwind", Value: "$item"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "quantity", Value: 1},
			{Key: "name", Value: "$item.name"},
			{Key: "image", Value: "$item.image"},
			{Key: "price", Value: "$item.price"},
		}}},
	}

	cur, err := r.carts().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []cartLineDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, len(docs))
	for i, d := range docs {
		lines[i] = models.CartLine{
			ID:       d.ID.Hex(),
			Quantity: d.Quantity,
			Name:     d.Name,
			Image:    d.Image,
			Price:    d.Price.Decimal,
		}
	}
	return lines, nil
}

func (r *MongoRepo) CountCart(ctx context.Context, userID string) (int64, error) {
	return r.carts().CountDocuments(ctx, bson.M{"userId": userID})
}

// AddToCart relies on the unique (userId, menuId) index so concurrent first adds
// cannot produce two entries.
func (r *MongoRepo) AddToCart(ctx context.Context, userID, menuID string) (*models.UpdateResult, error) {
	if _, err := parseObjectID(menuID); err != nil {
		return nil, err
	}
	res, err := r.carts().UpdateOne(ctx,
		bson.M{"userId": userID, "menuId": menuID},
		bson.M{"$inc": bson.M{"quantity": 1}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *MongoRepo) DeleteCartEntry(ctx context.Context, id, userID string) (*models.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.carts().DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
