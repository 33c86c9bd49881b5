package repo

import (
	"fmt"
	"time"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// flexPrice is written as Decimal128 and read from any numeric or numeric-string
// value, since older documents carry prices as strings or doubles.
type flexPrice struct {
	decimal.Decimal
}

func (p flexPrice) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(p.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

func (p *flexPrice) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		p.Decimal = decimal.Zero
	case bson.TypeDouble:
		p.Decimal = decimal.NewFromFloat(rv.Double())
	case bson.TypeInt32:
		p.Decimal = decimal.NewFromInt32(rv.Int32())
	case bson.TypeInt64:
		p.Decimal = decimal.NewFromInt(rv.Int64())
	case bson.TypeDecimal128:
		d, err := decimal.NewFromString(rv.Decimal128().String())
		if err != nil {
			return err
		}
		p.Decimal = d
	case bson.TypeString:
		d, err := decimal.NewFromString(rv.StringValue())
		if err != nil {
			return fmt.Errorf("price %q: %w", rv.StringValue(), err)
		}
		p.Decimal = d
	default:
		return fmt.Errorf("price: unsupported bson type %s", t)
	}
	return nil
}

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UID      string             `bson:"uid"`
	Name     string             `bson:"name,omitempty"`
	Email    string             `bson:"email,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty"`
	Role     string             `bson:"role,omitempty"`
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:       d.ID.Hex(),
		UID:      d.UID,
		Name:     d.Name,
		Email:    d.Email,
		PhotoURL: d.PhotoURL,
		Role:     d.Role,
	}
}

type menuDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Recipe   string             `bson:"recipe,omitempty"`
	Image    string             `bson:"image,omitempty"`
	Category string             `bson:"category"`
	Price    flexPrice          `bson:"price"`
}

func (d menuDoc) toModel() models.MenuItem {
	return models.MenuItem{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Recipe:   d.Recipe,
		Image:    d.Image,
		Category: d.Category,
		Price:    d.Price.Decimal,
	}
}

// cartLineDoc is the shape produced by the cart projection pipeline.
type cartLineDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Quantity int                `bson:"quantity"`
	Name     string             `bson:"name"`
	Image    string             `bson:"image"`
	Price    flexPrice          `bson:"price"`
}

type paymentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UID           string             `bson:"uid"`
	Email         string             `bson:"email,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty"`
	Price         flexPrice          `bson:"price"`
	MenuItemIDs   []string           `bson:"menuItemIds"`
	Quantities    []int              `bson:"quantities"`
	CartIDs       []string           `bson:"cartIds"`
	Status        string             `bson:"status,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d paymentDoc) toModel() models.Payment {
	return models.Payment{
		ID:            d.ID.Hex(),
		UID:           d.UID,
		Email:         d.Email,
		TransactionID: d.TransactionID,
		Price:         d.Price.Decimal,
		MenuItemIDs:   nonNil(d.MenuItemIDs),
		Quantities:    nonNil(d.Quantities),
		CartIDs:       nonNil(d.CartIDs),
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
}

type categoryStatDoc struct {
	Category string    `bson:"category"`
	Quantity int64     `bson:"quantity"`
	Revenue  flexPrice `bson:"revenue"`
}
