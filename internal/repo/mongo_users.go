package repo

import (
	"context"

	"github.com/Skotchmaster/bistro/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepo) CreateUser(ctx context.Context, u *models.User) (*models.InsertResult, error) {
	doc := userDoc{UID: u.UID, Name: u.Name, Email: u.Email, PhotoURL: u.PhotoURL, Role: u.Role}
	res, err := r.users().UpdateOne(ctx,
		bson.M{"uid": u.UID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	if res.UpsertedCount == 0 {
		return nil, ErrAlreadyExists
	}
	ins := updateResult(res)
	if ins.UpsertedID != nil {
		u.ID = *ins.UpsertedID
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: ins.UpsertedID}, nil
}

func (r *MongoRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := r.users().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "uid", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]models.User, len(docs))
	for i, d := range docs {
		users[i] = d.toModel()
	}
	return users, nil
}

func (r *MongoRepo) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	doc, err := findOne[userDoc](ctx, r.users(), bson.M{"uid": uid})
	if err != nil {
		return nil, err
	}
	u := doc.toModel()
	return &u, nil
}

func (r *MongoRepo) PromoteUser(ctx context.Context, id string) (*models.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.users().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

func (r *MongoRepo) DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
