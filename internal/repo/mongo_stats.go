package repo

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepo) Summary(ctx context.Context) (*models.Summary, error) {
	var s models.Summary
	var err error
	if s.Users, err = r.users().EstimatedDocumentCount(ctx); err != nil {
		return nil, err
	}
	if s.MenuItems, err = r.menu().EstimatedDocumentCount(ctx); err != nil {
		return nil, err
	}
	if s.Orders, err = r.payments().EstimatedDocumentCount(ctx); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: decimalOf("$price")}}},
		}}},
	}
	cur, err := r.payments().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var totals []struct {
		Revenue flexPrice `bson:"revenue"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return nil, err
	}
	s.Revenue = decimal.Zero
	if len(totals) > 0 {
		s.Revenue = totals[0].Revenue.Decimal
	}
	return &s, nil
}

// OrderStats pairs menuItemIds[i] with quantities[i] by unwinding with the array
// index. Payments whose arrays differ in length and ids that no longer resolve
// are left out.
func (r *MongoRepo) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	sizeOf := func(field string) bson.D {
		return bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{field, bson.A{}}}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$eq", Value: bson.A{sizeOf("$menuItemIds"), sizeOf("$quantities")}},
		}}}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$menuItemIds"},
			{Key: "includeArrayIndex", Value: "idx"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "menuOID", Value: objectIDOf("$menuItemIds")},
			{Key: "quantity", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$quantities", "$idx"}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colMenu},
			{Key: "localField", Value: "menuOID"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "item"},
		}}},
		{{Key: "$unwind", Value: "$item"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$item.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$quantity", decimalOf("$item.price")}},
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "revenue", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}

	cur, err := r.payments().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []categoryStatDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.CategoryStat, len(docs))
	for i, d := range docs {
		out[i] = models.CategoryStat{Category: d.Category, Quantity: d.Quantity, Revenue: d.Revenue.Decimal}
	}
	return out, nil
}
