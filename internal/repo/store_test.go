package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/repo/repotest"
)

type backend struct {
	name      string
	open      func(t testing.TB) repo.Store
	missingID func() string
}

var backends = []backend{
	{
		name:      "gorm",
		open:      func(t testing.TB) repo.Store { return repotest.NewGorm(t) },
		missingID: uuid.NewString,
	},
	{
		name:      "mongo",
		open:      func(t testing.TB) repo.Store { return repotest.NewMongo(t) },
		missingID: func() string { return primitive.NewObjectID().Hex() },
	},
}

func forEachStore(t *testing.T, fn func(t *testing.T, s repo.Store, b backend)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t), b)
		})
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func addMenu(t *testing.T, s repo.Store, name, category, price string) string {
	t.Helper()
	item := models.MenuItem{Name: name, Category: category, Image: name + ".png", Price: decimal.RequireFromString(price)}
	res, err := s.CreateMenuItem(context.Background(), &item)
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	require.NotNil(t, res.InsertedID)
	require.Equal(t, item.ID, *res.InsertedID)
	return item.ID
}

func TestUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, b backend) {
		ctx := context.Background()

		u := models.User{UID: "firebase-1", Name: "Ann", Email: "ann@example.com"}
		res, err := s.CreateUser(ctx, &u)
		require.NoError(t, err)
		require.NotNil(t, res.InsertedID)

		_, err = s.CreateUser(ctx, &models.User{UID: "firebase-1", Name: "Other"})
		require.ErrorIs(t, err, repo.ErrAlreadyExists)

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Ann", users[0].Name)

		got, err := s.GetUserByUID(ctx, "firebase-1")
		require.NoError(t, err)
		assert.False(t, got.IsAdmin())

		_, err = s.GetUserByUID(ctx, "nobody")
		require.ErrorIs(t, err, repo.ErrNotFound)

		up, err := s.PromoteUser(ctx, got.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, up.MatchedCount)
		assert.EqualValues(t, 1, up.ModifiedCount)

		up, err = s.PromoteUser(ctx, got.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, up.MatchedCount)
		assert.EqualValues(t, 0, up.ModifiedCount)

		got, err = s.GetUserByUID(ctx, "firebase-1")
		require.NoError(t, err)
		assert.True(t, got.IsAdmin())

		up, err = s.PromoteUser(ctx, b.missingID())
		require.NoError(t, err)
		assert.EqualValues(t, 0, up.MatchedCount)

		_, err = s.PromoteUser(ctx, "not-an-id")
		require.ErrorIs(t, err, repo.ErrInvalidID)

		del, err := s.DeleteUser(ctx, got.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, del.DeletedCount)

		del, err = s.DeleteUser(ctx, got.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, del.DeletedCount)
	})
}

func TestMenuCategoryFilter(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		addMenu(t, s, "Caesar", "salad", "8.50")
		addMenu(t, s, "Brownie", "Dessert", "5")
		addMenu(t, s, "Tiramisu", "dessert", "6")
		addMenu(t, s, "Borscht", "soup", "4")

		all, err := s.ListMenu(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 4)

		desserts, err := s.ListMenu(ctx, "DESSERT")
		require.NoError(t, err)
		require.Len(t, desserts, 2)
		for _, it := range desserts {
			assert.Contains(t, []string{"Brownie", "Tiramisu"}, it.Name)
		}

		partial, err := s.ListMenu(ctx, "ala")
		require.NoError(t, err)
		require.Len(t, partial, 1)
		assert.Equal(t, "Caesar", partial[0].Name)

		wild, err := s.ListMenu(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, wild)
	})
}

func TestMenuUpdateAndDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, b backend) {
		ctx := context.Background()
		id := addMenu(t, s, "Soup", "soup", "4")

		price := decimal.RequireFromString("4.75")
		name := "Tomato soup"
		res, err := s.UpdateMenuItem(ctx, id, models.MenuPatch{Name: &name, Price: &price})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 1, res.ModifiedCount)

		item, err := s.GetMenuItem(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Tomato soup", item.Name)
		assert.Equal(t, "soup", item.Category)
		requireDecimal(t, "4.75", item.Price)

		res, err = s.UpdateMenuItem(ctx, b.missingID(), models.MenuPatch{Name: &name})
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)

		_, err = s.GetMenuItem(ctx, b.missingID())
		require.ErrorIs(t, err, repo.ErrNotFound)
		_, err = s.GetMenuItem(ctx, "nope")
		require.ErrorIs(t, err, repo.ErrInvalidID)

		del, err := s.DeleteMenuItem(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 1, del.DeletedCount)
		_, err = s.GetMenuItem(ctx, id)
		require.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestCartDoubleAddIncrements(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		menuID := addMenu(t, s, "Brownie", "dessert", "5")

		first, err := s.AddToCart(ctx, "u1", menuID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, first.UpsertedCount)
		require.NotNil(t, first.UpsertedID)

		second, err := s.AddToCart(ctx, "u1", menuID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, second.MatchedCount)
		assert.EqualValues(t, 1, second.ModifiedCount)
		assert.EqualValues(t, 0, second.UpsertedCount)

		lines, err := s.ProjectCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, *first.UpsertedID, lines[0].ID)
		assert.Equal(t, "Brownie", lines[0].Name)
		assert.Equal(t, "Brownie.png", lines[0].Image)
		requireDecimal(t, "5", lines[0].Price)

		n, err := s.CountCart(ctx, "u1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, err = s.AddToCart(ctx, "u1", "bogus")
		require.ErrorIs(t, err, repo.ErrInvalidID)
	})
}

func TestCartProjection(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, b backend) {
		ctx := context.Background()

		empty, err := s.ProjectCart(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, empty)

		keep := addMenu(t, s, "Caesar", "salad", "8.5")
		gone := addMenu(t, s, "Brownie", "dessert", "5")
		_, err = s.AddToCart(ctx, "u1", keep)
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, "u1", gone)
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, "u1", b.missingID())
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, "u2", keep)
		require.NoError(t, err)

		_, err = s.DeleteMenuItem(ctx, gone)
		require.NoError(t, err)

		lines, err := s.ProjectCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "Caesar", lines[0].Name)
		assert.Equal(t, 1, lines[0].Quantity)
		requireDecimal(t, "8.5", lines[0].Price)

		n, err := s.CountCart(ctx, "u1")
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})
}

func TestCartDeleteIsScopedToOwner(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		menuID := addMenu(t, s, "Caesar", "salad", "8")
		res, err := s.AddToCart(ctx, "u1", menuID)
		require.NoError(t, err)
		entryID := *res.UpsertedID

		del, err := s.DeleteCartEntry(ctx, entryID, "u2")
		require.NoError(t, err)
		assert.EqualValues(t, 0, del.DeletedCount)

		del, err = s.DeleteCartEntry(ctx, entryID, "u1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, del.DeletedCount)
	})
}

func TestPaymentWithEmptyCartIDs(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		menuID := addMenu(t, s, "Caesar", "salad", "8")

		p := models.Payment{
			UID:         "u1",
			Price:       decimal.NewFromInt(8),
			MenuItemIDs: []string{menuID},
			Quantities:  []int{1},
			CartIDs:     []string{},
			Status:      "pending",
		}
		res, err := s.CreatePayment(ctx, &p)
		require.NoError(t, err)
		assert.True(t, res.PaymentResult.Acknowledged)
		require.NotNil(t, res.PaymentResult.InsertedID)
		assert.EqualValues(t, 0, res.DeleteResult.DeletedCount)

		history, err := s.ListPayments(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, *res.PaymentResult.InsertedID, history[0].ID)
		assert.Equal(t, []string{menuID}, history[0].MenuItemIDs)
		assert.Equal(t, []int{1}, history[0].Quantities)
		assert.Empty(t, history[0].CartIDs)
	})
}

func TestPaymentClearsOnlyOwnedCartEntries(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		a := addMenu(t, s, "Caesar", "salad", "8")
		b := addMenu(t, s, "Brownie", "dessert", "5")

		e1, err := s.AddToCart(ctx, "u1", a)
		require.NoError(t, err)
		e2, err := s.AddToCart(ctx, "u1", b)
		require.NoError(t, err)
		foreign, err := s.AddToCart(ctx, "u2", a)
		require.NoError(t, err)

		p := models.Payment{
			UID:         "u1",
			Price:       decimal.NewFromInt(13),
			MenuItemIDs: []string{a, b},
			Quantities:  []int{1, 1},
			CartIDs:     []string{*e1.UpsertedID, *e2.UpsertedID, *foreign.UpsertedID},
		}
		res, err := s.CreatePayment(ctx, &p)
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.DeleteResult.DeletedCount)

		n, err := s.CountCart(ctx, "u1")
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
		n, err = s.CountCart(ctx, "u2")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		_, err = s.CreatePayment(ctx, &models.Payment{UID: "u1", CartIDs: []string{"junk"}})
		require.ErrorIs(t, err, repo.ErrInvalidID)
	})
}

func TestListPaymentsNewestFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		for i, tx := range []string{"tx-old", "tx-new"} {
			p := models.Payment{
				UID:           "u1",
				TransactionID: tx,
				Price:         decimal.NewFromInt(1),
				MenuItemIDs:   []string{},
				Quantities:    []int{},
				CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			}
			_, err := s.CreatePayment(ctx, &p)
			require.NoError(t, err)
		}
		other := models.Payment{UID: "u2", TransactionID: "tx-other", Price: decimal.NewFromInt(1)}
		_, err := s.CreatePayment(ctx, &other)
		require.NoError(t, err)

		history, err := s.ListPayments(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "tx-new", history[0].TransactionID)
		assert.Equal(t, "tx-old", history[1].TransactionID)
		assert.True(t, history[0].CreatedAt.Equal(base.Add(time.Minute)))
	})
}

func TestStatsOnEmptyStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()

		sum, err := s.Summary(ctx)
		require.NoError(t, err)
		assert.Zero(t, sum.Users)
		assert.Zero(t, sum.MenuItems)
		assert.Zero(t, sum.Orders)
		requireDecimal(t, "0", sum.Revenue)

		rows, err := s.OrderStats(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestOrderStatsByCategory(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, b backend) {
		ctx := context.Background()
		dessert := addMenu(t, s, "Brownie", "Dessert", "5")
		salad := addMenu(t, s, "Caesar", "Salad", "8.5")
		addMenu(t, s, "Borscht", "Soup", "4")
		_, err := s.CreateUser(ctx, &models.User{UID: "u1"})
		require.NoError(t, err)

		payments := []models.Payment{
			{UID: "u1", Price: decimal.NewFromInt(10), MenuItemIDs: []string{dessert}, Quantities: []int{2}},
			{UID: "u1", Price: decimal.RequireFromString("18.5"), MenuItemIDs: []string{dessert, salad, b.missingID()}, Quantities: []int{2, 1, 7}},
		}
		for i := range payments {
			_, err := s.CreatePayment(ctx, &payments[i])
			require.NoError(t, err)
		}

		rows, err := s.OrderStats(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Dessert", rows[0].Category)
		assert.EqualValues(t, 4, rows[0].Quantity)
		requireDecimal(t, "20", rows[0].Revenue)

		assert.Equal(t, "Salad", rows[1].Category)
		assert.EqualValues(t, 1, rows[1].Quantity)
		requireDecimal(t, "8.5", rows[1].Revenue)

		sum, err := s.Summary(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, sum.Users)
		assert.EqualValues(t, 3, sum.MenuItems)
		assert.EqualValues(t, 2, sum.Orders)
		requireDecimal(t, "28.5", sum.Revenue)
	})
}

func TestSummaryRevenueIsExact(t *testing.T) {
	forEachStore(t, func(t *testing.T, s repo.Store, _ backend) {
		ctx := context.Background()
		for _, price := range []string{"0.10", "0.20"} {
			p := models.Payment{UID: "u1", Price: decimal.RequireFromString(price)}
			_, err := s.CreatePayment(ctx, &p)
			require.NoError(t, err)
		}

		sum, err := s.Summary(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, sum.Orders)
		assert.Equal(t, "0.3", sum.Revenue.String())
	})
}
