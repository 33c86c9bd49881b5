package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/bistro/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePayment needs a replica set: the cart cleanup and the insert share a transaction.
func (r *MongoRepo) CreatePayment(ctx context.Context, p *models.Payment) (*models.PaymentResult, error) {
	cartIDs := make([]primitive.ObjectID, 0, len(p.CartIDs))
	for _, s := range p.CartIDs {
		oid, err := parseObjectID(s)
		if err != nil {
			return nil, err
		}
		cartIDs = append(cartIDs, oid)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	doc := paymentDoc{
		UID:           p.UID,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Price:         flexPrice{p.Price},
		MenuItemIDs:   nonNil(p.MenuItemIDs),
		Quantities:    nonNil(p.Quantities),
		CartIDs:       nonNil(p.CartIDs),
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}

	sess, err := r.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var deleted int64
		if len(cartIDs) > 0 {
			del, err := r.carts().DeleteMany(sc, bson.M{"_id": bson.M{"$in": cartIDs}, "userId": p.UID})
			if err != nil {
				return nil, err
			}
			deleted = del.DeletedCount
		}
		ins, err := r.payments().InsertOne(sc, doc)
		if err != nil {
			return nil, err
		}
		return &models.PaymentResult{
			PaymentResult: *insertResult(ins),
			DeleteResult:  models.DeleteResult{Acknowledged: true, DeletedCount: deleted},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	res := out.(*models.PaymentResult)
	if res.PaymentResult.InsertedID != nil {
		p.ID = *res.PaymentResult.InsertedID
	}
	return res, nil
}

func (r *MongoRepo) ListPayments(ctx context.Context, uid string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.payments().Find(ctx, bson.M{"uid": uid}, opts)
	if err != nil {
		return nil, err
	}
	var docs []paymentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	payments := make([]models.Payment, len(docs))
	for i, d := range docs {
		payments[i] = d.toModel()
	}
	return payments, nil
}
