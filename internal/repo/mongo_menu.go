package repo

import (
	"context"
	"regexp"

	"github.com/Skotchmaster/bistro/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *MongoRepo) ListMenu(ctx context.Context, category string) ([]models.MenuItem, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(category), Options: "i"}
	}
	cur, err := r.menu().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []menuDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]models.MenuItem, len(docs))
	for i, d := range docs {
		items[i] = d.toModel()
	}
	return items, nil
}

func (r *MongoRepo) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	doc, err := findOne[menuDoc](ctx, r.menu(), bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}

func (r *MongoRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.InsertResult, error) {
	doc := menuDoc{
		Name:     item.Name,
		Recipe:   item.Recipe,
		Image:    item.Image,
		Category: item.Category,
		Price:    flexPrice{item.Price},
	}
	res, err := r.menu().InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	out := insertResult(res)
	if out.InsertedID != nil {
		item.ID = *out.InsertedID
	}
	return out, nil
}

func (r *MongoRepo) UpdateMenuItem(ctx context.Context, id string, patch models.MenuPatch) (*models.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Recipe != nil {
		set["recipe"] = *patch.Recipe
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = flexPrice{*patch.Price}
	}
	if len(set) == 0 {
		n, err := r.menu().CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		return &models.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	res, err := r.menu().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *MongoRepo) DeleteMenuItem(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.menu().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
